package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/para-athletics/athlete-monitor/internal/models"
	"github.com/para-athletics/athlete-monitor/internal/repositories"
	"github.com/para-athletics/athlete-monitor/internal/services"
	"github.com/para-athletics/athlete-monitor/internal/utils"
)

type ReadingHandler struct {
	BaseHandler
	service     services.ReadingService
	maxUploadMB int64
}

func NewReadingHandler(service services.ReadingService, maxUploadMB int64, logger utils.Logger) *ReadingHandler {
	return &ReadingHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		maxUploadMB: maxUploadMB,
	}
}

// Import uploads a sensor workbook
// @Summary Import sensor readings
// @Description Upload an .xlsx or .csv export of session readings
// @Tags readings
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Workbook file"
// @Success 200 {object} services.ImportResult
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /readings/import [post]
func (h *ReadingHandler) Import(c *gin.Context) {
	session := SessionFromContext(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "authentication required"})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadMB<<20)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "file upload is required"})
		return
	}

	h.LogRequest(c, "Importing readings", "username", session.Username, "filename", fileHeader.Filename)

	file, err := fileHeader.Open()
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	defer file.Close()

	result, err := h.service.Import(c.Request.Context(), session.Username, fileHeader.Filename, file)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "import failed", Details: err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// List returns the athlete's readings
// @Summary List readings
// @Description Paginated session readings for an athlete, newest first
// @Tags readings
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 20, max: 100)"
// @Param athlete query string false "Athlete username (coach only)"
// @Success 200 {object} services.ReadingListResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /readings [get]
func (h *ReadingHandler) List(c *gin.Context) {
	session := SessionFromContext(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "authentication required"})
		return
	}

	username, ok := h.resolveAthlete(c, session)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	response, err := h.service.List(c.Request.Context(), username, page, size)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Latest returns the most recent reading
// @Summary Latest reading
// @Description The athlete's most recent session reading
// @Tags readings
// @Produce json
// @Param athlete query string false "Athlete username (coach only)"
// @Success 200 {object} models.SessionReading
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "No readings"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /readings/latest [get]
func (h *ReadingHandler) Latest(c *gin.Context) {
	session := SessionFromContext(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "authentication required"})
		return
	}

	username, ok := h.resolveAthlete(c, session)
	if !ok {
		return
	}

	reading, err := h.service.Latest(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Message: "no readings recorded"})
			return
		}
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reading)
}

// resolveAthlete picks which athlete's data to serve: callers see their own
// data, coaches may name any athlete with the ?athlete parameter.
func (h *ReadingHandler) resolveAthlete(c *gin.Context, session *Session) (string, bool) {
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
