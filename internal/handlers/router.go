package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/para-athletics/athlete-monitor/internal/models"
	"github.com/para-athletics/athlete-monitor/internal/repositories"
	"github.com/para-athletics/athlete-monitor/internal/services"
	"github.com/para-athletics/athlete-monitor/internal/utils"
)

type HandlerManager struct {
	authHandler      *AuthHandler
	readingHandler   *ReadingHandler
	dashboardHandler *DashboardHandler
	predictHandler   *PredictHandler
	userHandler      *UserHandler
	authMiddleware   *TokenAuthMiddleware
}

type HandlerConfig struct {
	JWTSecret   string
	SessionTTL  time.Duration
	MaxUploadMB int64
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	cfg HandlerConfig,
	userRepo repositories.UserRepository,
) *HandlerManager {
	authMiddleware := NewTokenAuthMiddleware(cfg.JWTSecret, cfg.SessionTTL)

	return &HandlerManager{
		authHandler:      NewAuthHandler(serviceManager.Auth(), authMiddleware, logger),
		readingHandler:   NewReadingHandler(serviceManager.Reading(), cfg.MaxUploadMB, logger),
		dashboardHandler: NewDashboardHandler(serviceManager.Dashboard(), logger),
		predictHandler:   NewPredictHandler(serviceManager.Prediction(), logger),
		userHandler:      NewUserHandler(userRepo, logger),
		authMiddleware:   authMiddleware,
	}
}

// SetupRoutes sets up all API routes.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		// Account creation and login are the only unauthenticated routes.
		auth := v1.Group("/auth")
		{
			auth.POST("/register", hm.authHandler.Register)
			auth.POST("/login", hm.authHandler.Login)
			auth.POST("/logout", hm.authMiddleware.AuthMiddleware(), hm.authHandler.Logout)
			auth.GET("/me", hm.authMiddleware.AuthMiddleware(), hm.authHandler.Me)
		}

		authed := v1.Group("")
		authed.Use(hm.authMiddleware.AuthMiddleware())
		{
			readings := authed.Group("/readings")
			{
				readings.POST("/import", hm.readingHandler.Import)
				readings.GET("", hm.readingHandler.List)
				readings.GET("/latest", hm.readingHandler.Latest)
			}

			dashboard := authed.Group("/dashboard")
			{
				dashboard.GET("/summary", hm.dashboardHandler.GetSummary)
				dashboard.GET("/fatigue-week", hm.dashboardHandler.GetFatigueWeek)
				dashboard.GET("/trends", hm.dashboardHandler.GetTrends)
			}

			authed.POST("/predict", hm.predictHandler.Predict)

			// Roster view - coaches only
			authed.GET("/athletes",
				hm.authMiddleware.RequireRoleMiddleware(models.RoleCoach),
				hm.userHandler.ListAthletes)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "athlete-monitor",
		})
	})
}
