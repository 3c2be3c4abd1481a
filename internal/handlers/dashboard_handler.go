package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/para-athletics/athlete-monitor/internal/models"
	"github.com/para-athletics/athlete-monitor/internal/services"
	"github.com/para-athletics/athlete-monitor/internal/utils"
)

type DashboardHandler struct {
	BaseHandler
	service services.DashboardService
}

func NewDashboardHandler(service services.DashboardService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// GetSummary returns the dashboard summary strip
// @Summary Dashboard summary
// @Description Latest heart rate, fatigue and hydration metrics for the athlete
// @Tags dashboard
// @Produce json
// @Param athlete query string false "Athlete username (coach only)"
// @Success 200 {object} services.DashboardSummary
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	username, ok := h.resolveAthlete(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Getting dashboard summary", "username", username)

	summary, err := h.service.GetSummary(c.Request.Context(), username)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetFatigueWeek returns fatigue per weekday
// @Summary Weekly fatigue
// @Description Average recorded fatigue level per weekday over the last 7 days
// @Tags dashboard
// @Produce json
// @Param athlete query string false "Athlete username (coach only)"
// @Success 200 {array} services.WeekdayFatigueResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /dashboard/fatigue-week [get]
func (h *DashboardHandler) GetFatigueWeek(c *gin.Context) {
	username, ok := h.resolveAthlete(c)
	if !ok {
		return
	}

	response, err := h.service.GetFatigueWeek(c.Request.Context(), username)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetTrends returns windowed metric trends
// @Summary Metric trends
// @Description Average metrics for the current window compared against the previous one
// @Tags dashboard
// @Produce json
// @Param window query int false "Window in days (default: 7)"
// @Param athlete query string false "Athlete username (coach only)"
// @Success 200 {object} services.TrendResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /dashboard/trends [get]
func (h *DashboardHandler) GetTrends(c *gin.Context) {
	username, ok := h.resolveAthlete(c)
	if !ok {
		return
	}

	window, err := strconv.Atoi(c.DefaultQuery("window", "7"))
	if err != nil || window < 1 {
		window = 7
	}

	response, err := h.service.GetTrends(c.Request.Context(), username, window)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *DashboardHandler) resolveAthlete(c *gin.Context) (string, bool) {
	session := SessionFromContext(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "authentication required"})
		return "", false
	}

	requested := c.Query("athlete")
	if requested == "" || requested == session.Username {
		return session.Username, true
	}
	if session.Role != models.RoleCoach {
		c.JSON(http.StatusForbidden, ErrorResponse{Message: "insufficient permissions"})
		return "", false
	}
	return requested, true
}
