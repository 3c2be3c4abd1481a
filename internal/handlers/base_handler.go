package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/para-athletics/athlete-monitor/internal/repositories"
	"github.com/para-athletics/athlete-monitor/internal/utils"
	"github.com/para-athletics/athlete-monitor/internal/validator"
)

// ErrorResponse is the uniform error body returned by all handlers.
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// BaseHandler carries the logging helpers shared by all handlers.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	args = append(args, "method", c.Request.Method, "path", c.Request.URL.Path)
	h.logger.Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	args = append(args, "error", err, "path", c.Request.URL.Path)
	h.logger.Error(msg, args...)
}

// handleServiceError maps service-layer failures to HTTP responses.
// Validation failures carry field details; everything else is a generic
// message so storage internals never reach the client.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "validation failed",
			Details: validationErrs,
		})
		return
	}

	if errors.Is(err, repositories.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "not found",
		})
		return
	}

	h.LogError(c, err, "request failed")
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Message: "internal server error",
	})
}
