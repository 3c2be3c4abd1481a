package sqlite

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/para-athletics/athlete-monitor/internal/models"
	"github.com/para-athletics/athlete-monitor/internal/repositories"
)

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardSQLite(db *gorm.DB) repositories.DashboardRepository {
	return &dashboardRepository{db: db}
}

// FatigueByWeekday aggregates recorded fatigue levels per weekday since the
// given time. Rows without a recorded level are left out of the average.
func (r *dashboardRepository) FatigueByWeekday(ctx context.Context, username string, since time.Time) ([]repositories.WeekdayFatigue, error) {
	type row struct {
		Weekday      int
		AverageLevel float64
		Sessions     int64
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.SessionReading{}).
		Select("CAST(strftime('%w', recorded_at) AS INTEGER) AS weekday, AVG(fatigue_level) AS average_level, COUNT(*) AS sessions").
		Where("username = ? AND recorded_at >= ? AND fatigue_level IS NOT NULL", username, since).
		Group("weekday").
		Order("weekday ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate fatigue by weekday: %w", err)
	}

	result := make([]repositories.WeekdayFatigue, len(rows))
	for i, rr := range rows {
		result[i] = repositories.WeekdayFatigue{
			Weekday:      time.Weekday(rr.Weekday),
			AverageLevel: rr.AverageLevel,
			Sessions:     rr.Sessions,
		}
	}
	return result, nil
}

// WindowStats aggregates the metrics the dashboard compares across two
// adjacent windows. Hydration uses the same guard against a zero pre-session
// weight the metric derivation does.
func (r *dashboardRepository) WindowStats(ctx context.Context, username string, from, to time.Time) (*repositories.WindowStats, error) {
	var stats repositories.WindowStats
	err := r.db.WithContext(ctx).
		Model(&models.SessionReading{}).
		Select(`COUNT(*) AS sessions,
			COALESCE(AVG(avg_heart_rate), 0) AS avg_heart_rate,
			COALESCE(AVG(fatigue_level), 0) AS avg_fatigue,
			COALESCE(AVG(100.0 * post_weight / MAX(1.0, pre_weight)), 0) AS avg_hydration,
			COALESCE(SUM(duration_min), 0) AS total_duration`).
		Where("username = ? AND recorded_at >= ? AND recorded_at < ?", username, from, to).
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate window stats: %w", err)
	}
	return &stats, nil
}
