package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/para-athletics/athlete-monitor/internal/cache"
	"github.com/para-athletics/athlete-monitor/internal/predictor"
	"github.com/para-athletics/athlete-monitor/internal/repositories"
	"github.com/para-athletics/athlete-monitor/internal/validator"
)

// serviceManager implements ServiceManager.
type serviceManager struct {
	repo      repositories.Repository
	cache     *cache.CacheManager
	model     predictor.Model
	logger    *slog.Logger
	validator *validator.Validator

	authService       AuthService
	readingService    ReadingService
	dashboardService  DashboardService
	predictionService PredictionService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a service manager with all dependencies.
func NewServiceManager(
	repo repositories.Repository,
	cacheManager *cache.CacheManager,
	model predictor.Model,
	logger *slog.Logger,
	v *validator.Validator,
) ServiceManager {
	return &serviceManager{
		repo:      repo,
		cache:     cacheManager,
		model:     model,
		logger:    logger,
		validator: v,
	}
}

// Initialize builds all services. Idempotent.
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if sm.repo == nil {
		return fmt.Errorf("repository is required")
	}
	if sm.model == nil {
		return fmt.Errorf("fatigue model is required")
	}

	sm.authService = NewAuthService(sm.repo, sm.logger, sm.validator)
	sm.readingService = NewReadingService(sm.repo, sm.cache, sm.logger)
	sm.dashboardService = NewDashboardService(sm.repo, sm.cache, sm.logger)
	sm.predictionService = NewPredictionService(sm.model, sm.logger, sm.validator)

	sm.initialized = true
	sm.logger.Info("services initialized")
	return nil
}

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.authService
}

func (sm *serviceManager) Reading() ReadingService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.readingService
}

func (sm *serviceManager) Dashboard() DashboardService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.dashboardService
}

func (sm *serviceManager) Prediction() PredictionService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.predictionService
}

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized || sm.shutdown {
		return fmt.Errorf("services not available")
	}
	return sm.repo.Ping(ctx)
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}
	sm.shutdown = true
	sm.logger.Info("services shut down")
	return nil
}
