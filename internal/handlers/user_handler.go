package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/para-athletics/athlete-monitor/internal/models"
	"github.com/para-athletics/athlete-monitor/internal/repositories"
	"github.com/para-athletics/athlete-monitor/internal/utils"
)

type UserHandler struct {
	BaseHandler
	userRepo repositories.UserRepository
}

func NewUserHandler(userRepo repositories.UserRepository, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		userRepo:    userRepo,
	}
}

// ListAthletes lists athlete accounts
// @Summary List athletes
// @Description Paginated listing of athlete accounts, for the coach's roster view
// @Tags athletes
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10, max: 100)"
// @Param q query string false "Search query (username or full name)"
// @Success 200 {object} map[string]interface{} "Athlete list response"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /athletes [get]
func (h *UserHandler) ListAthletes(c *gin.Context) {
	h.LogRequest(c, "Listing athletes")

	filters := h.parseUserFilters(c)
	role := models.RoleAthlete
	filters.Role = &role

	users, total, err := h.userRepo.List(c.Request.Context(), filters)
	if err != nil {
		h.LogError(c, err, "Failed to list athletes")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "failed to list athletes",
		})
		return
	}

	page := (filters.Offset / max(filters.Limit, 1)) + 1

	c.JSON(http.StatusOK, gin.H{
		"athletes": users,
		"total":    total,
		"page":     page,
		"size":     filters.Limit,
	})
}

func (h *UserHandler) parseUserFilters(c *gin.Context) repositories.UserFilters {
	page := 1
	size := 10

	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	if sizeStr := c.Query("size"); sizeStr != "" {
		if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 100 {
			size = s
		}
	}

	return repositories.UserFilters{
		Limit:  size,
		Offset: (page - 1) * size,
		Query:  c.Query("q"),
	}
}
