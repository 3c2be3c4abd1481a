package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/para-athletics/athlete-monitor/internal/cache"
	"github.com/para-athletics/athlete-monitor/internal/models"
	"github.com/para-athletics/athlete-monitor/internal/repositories"
)

// ===== RESPONSE DTOs =====

type DashboardSummary struct {
	AvgHeartRate      int     `json:"avg_heart_rate"`
	FatigueLevel      int     `json:"fatigue_level"`
	FatigueProgress   float64 `json:"fatigue_progress"`
	HydrationPercent  int     `json:"hydration_percent"`
	HydrationProgress float64 `json:"hydration_progress"`
	HighFatigue       bool    `json:"high_fatigue"`

	// HasReadings is false when the summary shows placeholder values
	// because the athlete has no imported sessions yet.
	HasReadings bool       `json:"has_readings"`
	LastSession *time.Time `json:"last_session,omitempty"`
}

type WeekdayFatigueResponse struct {
	Day          string  `json:"day"`
	AverageLevel float64 `json:"average_level"`
	Sessions     int64   `json:"sessions"`
}

type TrendResponse struct {
	WindowDays      int     `json:"window_days"`
	Sessions        int64   `json:"sessions"`
	AvgHeartRate    float64 `json:"avg_heart_rate"`
	AvgFatigue      float64 `json:"avg_fatigue"`
	AvgHydration    float64 `json:"avg_hydration"`
	HeartRateChange float64 `json:"heart_rate_change"`
	FatigueChange   float64 `json:"fatigue_change"`
	HydrationChange float64 `json:"hydration_change"`
}

// Placeholder summary values shown before any session has been imported.
const (
	defaultAvgHeartRate = 118
	defaultFatigueLevel = 1
	defaultHydrationPct = 72
)

// ===== SERVICE IMPLEMENTATION =====

type dashboardService struct {
	repo   repositories.Repository
	cache  *cache.CacheManager
	logger *slog.Logger
}

func NewDashboardService(repo repositories.Repository, cacheManager *cache.CacheManager, logger *slog.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		cache:  cacheManager,
		logger: logger,
	}
}

func (s *dashboardService) GetSummary(ctx context.Context, username string) (*DashboardSummary, error) {
	cacheKey := username + ":summary"
	var cached DashboardSummary
	if err := s.cache.Dashboard.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	latest, err := s.repo.Reading().Latest(ctx, username)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to load latest reading: %w", err)
	}

	summary := summarizeReading(latest)

	if err := s.cache.Dashboard.Set(ctx, cacheKey, summary, cache.DashboardCacheConfig.TTL); err != nil {
		s.logger.Warn("failed to cache dashboard summary", "username", username, "error", err)
	}

	return summary, nil
}

// summarizeReading derives the summary-strip metrics from the most recent
// session, falling back to the placeholder values when none exists.
func summarizeReading(latest *models.SessionReading) *DashboardSummary {
	if latest == nil {
		return &DashboardSummary{
			AvgHeartRate:      defaultAvgHeartRate,
			FatigueLevel:      defaultFatigueLevel,
			FatigueProgress:   progress(defaultFatigueLevel, models.FatigueMax),
			HydrationPercent:  defaultHydrationPct,
			HydrationProgress: progress(defaultHydrationPct, 100),
			HighFatigue:       defaultFatigueLevel >= models.FatigueWarnThreshold,
			HasReadings:       false,
		}
	}

	fatigue := defaultFatigueLevel
	if latest.FatigueLevel != nil {
		fatigue = *latest.FatigueLevel
	}

	hydration := HydrationPercent(latest.PreWeight, latest.PostWeight)
	recorded := latest.RecordedAt

	return &DashboardSummary{
		AvgHeartRate:      int(latest.AvgHeartRate),
		FatigueLevel:      fatigue,
		FatigueProgress:   progress(float64(fatigue), models.FatigueMax),
		HydrationPercent:  hydration,
		HydrationProgress: progress(float64(hydration), 100),
		HighFatigue:       fatigue >= models.FatigueWarnThreshold,
		HasReadings:       true,
		LastSession:       &recorded,
	}
}

// HydrationPercent computes post-to-pre session weight retention as a
// percentage. The max(1, pre) guard keeps a zero or missing pre-session
// weight from dividing by zero, matching the dashboard it replaces.
func HydrationPercent(preWeight, postWeight float64) int {
	denom := preWeight
	if denom < 1 {
		denom = 1
	}
	return int(100 * postWeight / denom)
}

// progress scales a value to [0,1] for the frontend's progress bars.
func progress(value, scale float64) float64 {
	if scale <= 0 {
		return 0
	}
	p := value / scale
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func (s *dashboardService) GetFatigueWeek(ctx context.Context, username string) ([]WeekdayFatigueResponse, error) {
	cacheKey := username + ":fatigue-week"
	var cached []WeekdayFatigueResponse
	if err := s.cache.Dashboard.Get(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	}

	since := time.Now().AddDate(0, 0, -7)
	rows, err := s.repo.Dashboard().FatigueByWeekday(ctx, username, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly fatigue: %w", err)
	}

	byWeekday := make(map[time.Weekday]repositories.WeekdayFatigue, len(rows))
	for _, row := range rows {
		byWeekday[row.Weekday] = row
	}

	// Monday-first, every day present even with no sessions.
	response := make([]WeekdayFatigueResponse, 0, 7)
	for i := 0; i < 7; i++ {
		day := time.Weekday((int(time.Monday) + i) % 7)
		row := byWeekday[day]
		response = append(response, WeekdayFatigueResponse{
			Day:          day.String()[:3],
			AverageLevel: roundFloat(row.AverageLevel, 1),
			Sessions:     row.Sessions,
		})
	}

	if err := s.cache.Dashboard.Set(ctx, cacheKey, response, cache.DashboardCacheConfig.TTL); err != nil {
		s.logger.Warn("failed to cache weekly fatigue", "username", username, "error", err)
	}

	return response, nil
}

func (s *dashboardService) GetTrends(ctx context.Context, username string, windowDays int) (*TrendResponse, error) {
	if windowDays <= 0 || windowDays > 365 {
		windowDays = 7
	}

	cacheKey := fmt.Sprintf("%s:trends:%d", username, windowDays)
	var cached TrendResponse
	if err := s.cache.Dashboard.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	now := time.Now()
	windowStart := now.AddDate(0, 0, -windowDays)
	previousStart := now.AddDate(0, 0, -2*windowDays)

	current, err := s.repo.Dashboard().WindowStats(ctx, username, windowStart, now)
	if err != nil {
		return nil, fmt.Errorf("failed to get current window stats: %w", err)
	}

	previous, err := s.repo.Dashboard().WindowStats(ctx, username, previousStart, windowStart)
	if err != nil {
		return nil, fmt.Errorf("failed to get previous window stats: %w", err)
	}

	response := &TrendResponse{
		WindowDays:      windowDays,
		Sessions:        current.Sessions,
		AvgHeartRate:    roundFloat(current.AvgHeartRate, 1),
		AvgFatigue:      roundFloat(current.AvgFatigue, 1),
		AvgHydration:    roundFloat(current.AvgHydration, 1),
		HeartRateChange: roundFloat(percentChange(previous.AvgHeartRate, current.AvgHeartRate), 1),
		FatigueChange:   roundFloat(percentChange(previous.AvgFatigue, current.AvgFatigue), 1),
		HydrationChange: roundFloat(percentChange(previous.AvgHydration, current.AvgHydration), 1),
	}

	if err := s.cache.Dashboard.Set(ctx, cacheKey, response, cache.DashboardCacheConfig.TTL); err != nil {
		s.logger.Warn("failed to cache trends", "username", username, "error", err)
	}

	return response, nil
}

// ===== HELPER FUNCTIONS =====

func percentChange(previous, current float64) float64 {
	if previous == 0 {
		return 0
	}
	return 100 * (current - previous) / previous
}

func roundFloat(val float64, precision int) float64 {
	ratio := 1.0
	for i := 0; i < precision; i++ {
		ratio *= 10
	}
	if val < 0 {
		return float64(int(val*ratio-0.5)) / ratio
	}
	return float64(int(val*ratio+0.5)) / ratio
}
