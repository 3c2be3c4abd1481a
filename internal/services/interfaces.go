package services

import (
	"context"
	"io"
	"time"

	"github.com/para-athletics/athlete-monitor/internal/models"
	"github.com/para-athletics/athlete-monitor/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use request types from the validator package
type RegisterRequest = validator.RegisterRequest
type LoginRequest = validator.LoginRequest
type PredictRequest = validator.PredictRequest

type LoginResponse struct {
	Token     string          `json:"token"`
	Username  string          `json:"username"`
	Role      models.UserRole `json:"role"`
	ExpiresAt time.Time       `json:"expires_at"`
}

type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings,omitempty"`
}

type ReadingListResponse struct {
	Readings []*models.SessionReading `json:"readings"`
	Total    int64                    `json:"total"`
	Page     int                      `json:"page"`
	Size     int                      `json:"size"`
}

type PredictResponse struct {
	FatigueLevel int  `json:"fatigue_level"`
	HighFatigue  bool `json:"high_fatigue"`
}

// ===== SERVICE INTERFACES =====

// AuthService is the credential store's service surface.
//
// Register reports a duplicate username as (false, nil): uniqueness
// violations are an expected outcome, not a server failure. Any non-nil
// error is a storage or validation failure.
//
// Authenticate returns (nil, nil) on a credential miss. The nil identity is
// the only signal; unknown usernames and wrong passwords are
// indistinguishable to the caller.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (bool, error)
	Authenticate(ctx context.Context, req LoginRequest) (*models.Identity, error)
}

// ReadingService ingests and serves sensor readings.
type ReadingService interface {
	// Import parses an uploaded workbook (.xlsx or .csv by filename) and
	// stores its rows for the given athlete.
	Import(ctx context.Context, username, filename string, file io.Reader) (*ImportResult, error)
	List(ctx context.Context, username string, page, size int) (*ReadingListResponse, error)
	Latest(ctx context.Context, username string) (*models.SessionReading, error)
}

// DashboardService derives the biometric views rendered by the frontend.
type DashboardService interface {
	GetSummary(ctx context.Context, username string) (*DashboardSummary, error)
	GetFatigueWeek(ctx context.Context, username string) ([]WeekdayFatigueResponse, error)
	GetTrends(ctx context.Context, username string, windowDays int) (*TrendResponse, error)
}

// PredictionService evaluates the external fatigue model.
type PredictionService interface {
	Predict(ctx context.Context, req PredictRequest) (*PredictResponse, error)
}

// ServiceManager provides access to all services.
type ServiceManager interface {
	Auth() AuthService
	Reading() ReadingService
	Dashboard() DashboardService
	Prediction() PredictionService

	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
	HealthCheck(ctx context.Context) error
}
