package sqlite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/para-athletics/athlete-monitor/internal/models"
	"github.com/para-athletics/athlete-monitor/internal/repositories"
)

type readingRepository struct {
	db *gorm.DB
}

func NewReadingSQLite(db *gorm.DB) repositories.ReadingRepository {
	return &readingRepository{db: db}
}

// CreateBatch inserts a workbook's rows in a single transaction so a failed
// import never leaves a partial upload behind.
func (r *readingRepository) CreateBatch(ctx context.Context, readings []*models.SessionReading) error {
	if len(readings) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(readings, 100).Error; err != nil {
		return fmt.Errorf("failed to insert readings: %w", err)
	}
	return nil
}

func (r *readingRepository) List(ctx context.Context, filters repositories.ReadingFilters) ([]*models.SessionReading, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SessionReading{})

	if filters.Username != "" {
		query = query.Where("username = ?", filters.Username)
	}
	if filters.DateFrom != nil {
		query = query.Where("recorded_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("recorded_at <= ?", *filters.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count readings: %w", err)
	}

	query = query.Order(buildReadingOrder(filters))
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var readings []*models.SessionReading
	if err := query.Find(&readings).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list readings: %w", err)
	}

	return readings, total, nil
}

func (r *readingRepository) Latest(ctx context.Context, username string) (*models.SessionReading, error) {
	var reading models.SessionReading
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Order("recorded_at DESC").
		First(&reading).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest reading: %w", err)
	}
	return &reading, nil
}

func buildReadingOrder(filters repositories.ReadingFilters) string {
	column := "recorded_at"
	if filters.SortBy == "created_at" {
		column = "created_at"
	}
	direction := "DESC"
	if filters.SortOrder == "asc" {
		direction = "ASC"
	}
	return column + " " + direction
}
