package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/para-athletics/athlete-monitor/internal/services"
	"github.com/para-athletics/athlete-monitor/internal/utils"
)

type PredictHandler struct {
	BaseHandler
	service services.PredictionService
}

func NewPredictHandler(service services.PredictionService, logger utils.Logger) *PredictHandler {
	return &PredictHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Predict evaluates the fatigue model
// @Summary Predict fatigue level
// @Description Run the trained model on one row of physiological inputs
// @Tags predict
// @Accept json
// @Produce json
// @Success 200 {object} services.PredictResponse
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /predict [post]
func (h *PredictHandler) Predict(c *gin.Context) {
	var req services.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	h.LogRequest(c, "Predicting fatigue")

	response, err := h.service.Predict(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
