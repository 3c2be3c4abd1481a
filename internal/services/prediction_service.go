package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/para-athletics/athlete-monitor/internal/models"
	"github.com/para-athletics/athlete-monitor/internal/predictor"
	"github.com/para-athletics/athlete-monitor/internal/validator"
)

type predictionService struct {
	model     predictor.Model
	logger    *slog.Logger
	validator *validator.Validator
}

func NewPredictionService(model predictor.Model, logger *slog.Logger, v *validator.Validator) PredictionService {
	return &predictionService{
		model:     model,
		logger:    logger,
		validator: v,
	}
}

// Predict runs the external model on one row of physiological inputs. The
// model is a black box here; this service only validates the inputs, shapes
// the vector and applies the warning threshold to the label that comes back.
func (s *predictionService) Predict(ctx context.Context, req PredictRequest) (*PredictResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	vector := req.Vector()
	if len(vector) != s.model.FeatureCount() {
		return nil, fmt.Errorf("model expects %d features, request has %d", s.model.FeatureCount(), len(vector))
	}

	level, err := s.model.Predict(vector)
	if err != nil {
		return nil, fmt.Errorf("prediction failed: %w", err)
	}

	s.logger.Debug("fatigue predicted", "level", level)

	return &PredictResponse{
		FatigueLevel: level,
		HighFatigue:  level >= models.FatigueWarnThreshold,
	}, nil
}
