package models

import (
	"time"

	"gorm.io/datatypes"
)

// SessionReading is one row of sensor data for a single training session,
// as imported from an uploaded workbook.
type SessionReading struct {
	ID       uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Username string `json:"username" gorm:"index;not null;size:255"`

	DurationMin  float64 `json:"duration_min" gorm:"not null"`
	Distance     float64 `json:"distance" gorm:"not null"`
	AvgHeartRate float64 `json:"avg_heart_rate" gorm:"not null"`
	HRV          float64 `json:"hrv"`
	SpO2         float64 `json:"spo2"`
	SkinTemp     float64 `json:"skin_temp"`
	SweatRate    float64 `json:"sweat_rate"`
	PreWeight    float64 `json:"pre_weight"`
	PostWeight   float64 `json:"post_weight"`

	// FatigueLevel is the level recorded by the sensor export, when present.
	// Predicted levels are never written back to this column.
	FatigueLevel *int `json:"fatigue_level,omitempty"`

	// Extras keeps workbook columns we do not map, so an export with vendor
	// specific fields survives a round trip.
	Extras datatypes.JSON `json:"extras,omitempty"`

	RecordedAt time.Time `json:"recorded_at" gorm:"index"`
	CreatedAt  time.Time `json:"created_at"`
}

func (SessionReading) TableName() string {
	return "session_readings"
}

// Fatigue level bounds used across the dashboard and the predictor.
const (
	FatigueMin = 0
	FatigueMax = 3

	// FatigueWarnThreshold marks the level at which the dashboard raises a
	// high-fatigue warning.
	FatigueWarnThreshold = 2
)
