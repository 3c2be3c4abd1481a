package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/para-athletics/athlete-monitor/internal/cache"
	"github.com/para-athletics/athlete-monitor/internal/models"
	"github.com/para-athletics/athlete-monitor/internal/repositories"
)

type readingService struct {
	repo   repositories.Repository
	cache  *cache.CacheManager
	logger *slog.Logger
}

func NewReadingService(repo repositories.Repository, cacheManager *cache.CacheManager, logger *slog.Logger) ReadingService {
	return &readingService{
		repo:   repo,
		cache:  cacheManager,
		logger: logger,
	}
}

// Import parses an uploaded sensor export and stores its rows. The format is
// chosen by file extension: .xlsx goes through excelize, .csv through the
// csv reader. Rows with unparseable numeric cells are skipped and counted,
// never imported half-filled.
func (s *readingService) Import(ctx context.Context, username, filename string, file io.Reader) (*ImportResult, error) {
	var (
		table [][]string
		err   error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		table, err = parseWorkbook(file)
	case ".csv":
		table, err = parseCSV(file)
	default:
		return nil, fmt.Errorf("unsupported file type %q: expected .xlsx or .csv", filepath.Ext(filename))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse upload: %w", err)
	}

	readings, warnings, err := rowsToReadings(username, table)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Reading().CreateBatch(ctx, readings); err != nil {
		return nil, fmt.Errorf("failed to store readings: %w", err)
	}

	if err := s.cache.InvalidateAthlete(ctx, username); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache", "username", username, "error", err)
	}

	s.logger.Info("workbook imported",
		"username", username,
		"imported", len(readings),
		"skipped", len(warnings),
	)

	return &ImportResult{
		Imported: len(readings),
		Skipped:  len(warnings),
		Warnings: warnings,
	}, nil
}

func (s *readingService) List(ctx context.Context, username string, page, size int) (*ReadingListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}

	filters := repositories.ReadingFilters{
		Username: username,
		Limit:    size,
		Offset:   (page - 1) * size,
	}

	readings, total, err := s.repo.Reading().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list readings: %w", err)
	}

	return &ReadingListResponse{
		Readings: readings,
		Total:    total,
		Page:     page,
		Size:     size,
	}, nil
}

func (s *readingService) Latest(ctx context.Context, username string) (*models.SessionReading, error) {
	return s.repo.Reading().Latest(ctx, username)
}
