package repositories

import (
	"context"
	"time"

	"github.com/para-athletics/athlete-monitor/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type UserFilters struct {
	Role   *models.UserRole `json:"role"`
	Query  string           `json:"query"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

type ReadingFilters struct {
	Username  string     `json:"username"`
	DateFrom  *time.Time `json:"date_from"`
	DateTo    *time.Time `json:"date_to"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
	SortBy    string     `json:"sort_by"`    // "recorded_at", "created_at"
	SortOrder string     `json:"sort_order"` // "asc", "desc"
}

// ===== SHARED STATISTICS STRUCTS =====

type WeekdayFatigue struct {
	Weekday      time.Weekday `json:"weekday"`
	AverageLevel float64      `json:"average_level"`
	Sessions     int64        `json:"sessions"`
}

type WindowStats struct {
	Sessions      int64   `json:"sessions"`
	AvgHeartRate  float64 `json:"avg_heart_rate"`
	AvgFatigue    float64 `json:"avg_fatigue"`
	AvgHydration  float64 `json:"avg_hydration"`
	TotalDuration float64 `json:"total_duration"`
}

// ===== REPOSITORY INTERFACES =====

// UserRepository is the credential store. Create enforces username
// uniqueness at the storage layer and returns ErrUsernameTaken when the
// username already exists; any other failure is a storage error.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByCredentials(ctx context.Context, username, passwordHash string) (*models.User, error)
	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)
	Count(ctx context.Context) (int64, error)
}

type ReadingRepository interface {
	CreateBatch(ctx context.Context, readings []*models.SessionReading) error
	List(ctx context.Context, filters ReadingFilters) ([]*models.SessionReading, int64, error)
	Latest(ctx context.Context, username string) (*models.SessionReading, error)
}

type DashboardRepository interface {
	FatigueByWeekday(ctx context.Context, username string, since time.Time) ([]WeekdayFatigue, error)
	WindowStats(ctx context.Context, username string, from, to time.Time) (*WindowStats, error)
}

// Repository aggregates all sub-repositories.
type Repository interface {
	User() UserRepository
	Reading() ReadingRepository
	Dashboard() DashboardRepository

	WithTransaction(ctx context.Context, fn func(Repository) error) error
	Ping(ctx context.Context) error
	Close() error
}

// RepositoryManager handles repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
