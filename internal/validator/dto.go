package validator

import (
	"github.com/para-athletics/athlete-monitor/internal/models"
)

// RegisterRequest carries an account-creation form submission. Username and
// full name are treated as opaque: no trimming, no case folding, matching
// the store's exact-match contract. The password may be any string, empty
// included; the length caps mirror the column sizes.
type RegisterRequest struct {
	Username string          `json:"username" validate:"required,max=255"`
	FullName string          `json:"full_name" validate:"required,max=100"`
	Password string          `json:"password"`
	Role     models.UserRole `json:"role" validate:"required,user_role"`
}

// LoginRequest carries a login form submission. No format validation: any
// string pair is a legitimate credential attempt.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// PredictRequest carries the quick-predictor form: one row of physiological
// inputs in the model's fixed feature order.
type PredictRequest struct {
	DurationMin  float64 `json:"duration_min" validate:"min=0"`
	Distance     float64 `json:"distance" validate:"min=0"`
	AvgHeartRate float64 `json:"avg_heart_rate" validate:"min=0"`
	HRV          float64 `json:"hrv" validate:"min=0"`
	SpO2         float64 `json:"spo2" validate:"min=0,max=100"`
	SkinTemp     float64 `json:"skin_temp" validate:"min=0"`
	SweatRate    float64 `json:"sweat_rate" validate:"min=0"`
	PreWeight    float64 `json:"pre_weight" validate:"min=0"`
	PostWeight   float64 `json:"post_weight" validate:"min=0"`
}

// Vector returns the request as the model's input vector, in the feature
// order the artifact was trained with.
func (r PredictRequest) Vector() []float64 {
	return []float64{
		r.DurationMin,
		r.Distance,
		r.AvgHeartRate,
		r.HRV,
		r.SpO2,
		r.SkinTemp,
		r.SweatRate,
		r.PreWeight,
		r.PostWeight,
	}
}
