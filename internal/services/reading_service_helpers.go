package services

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"

	"github.com/para-athletics/athlete-monitor/internal/models"
)

// parseWorkbook reads the first sheet of an xlsx upload into rows of cells.
func parseWorkbook(file io.Reader) ([][]string, error) {
	wb, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func parseCSV(file io.Reader) ([][]string, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return rows, nil
}

// Column names accepted for each mapped field. Sensor exports have drifted
// across firmware versions, so each field accepts its historical spellings.
var columnAliases = map[string][]string{
	"duration_min":   {"duration_min", "duration", "session_duration"},
	"distance":       {"distance", "distance_reps", "reps"},
	"avg_heart_rate": {"avg_heart_rate", "avg_hr", "heart_rate"},
	"hrv":            {"hrv"},
	"spo2":           {"spo2", "sp_o2"},
	"skin_temp":      {"skin_temp", "skin_temperature", "temp"},
	"sweat_rate":     {"sweat_rate"},
	"pre_weight":     {"pre_weight", "pre_session_weight"},
	"post_weight":    {"post_weight", "post_session_weight"},
	"fatigue_level":  {"fatigue_level", "fatigue"},
	"recorded_at":    {"recorded_at", "date", "session_date"},
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "_")
	h = strings.ReplaceAll(h, "-", "_")
	return h
}

// mapHeader resolves each column index to a canonical field name, or "" for
// columns kept as extras.
func mapHeader(header []string) []string {
	canonical := make(map[string]string)
	for field, aliases := range columnAliases {
		for _, alias := range aliases {
			canonical[alias] = field
		}
	}

	mapped := make([]string, len(header))
	for i, h := range header {
		mapped[i] = canonical[normalizeHeader(h)]
	}
	return mapped
}

// Timestamp layouts seen in sensor exports.
var recordedAtLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

func parseRecordedAt(value string) (time.Time, error) {
	for _, layout := range recordedAtLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(value)); err == nil {
			return t, nil
		}
	}
	// excelize serial dates come through as day counts since 1899-12-30
	if serial, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil && serial > 0 {
		epoch := time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
		return epoch.Add(time.Duration(serial * 24 * float64(time.Hour))), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

// rowsToReadings converts a parsed table into readings. The first row must
// be a header. A row that fails to parse is reported as a warning and
// skipped; it never aborts the import.
func rowsToReadings(username string, table [][]string) ([]*models.SessionReading, []string, error) {
	if len(table) == 0 {
		return nil, nil, fmt.Errorf("upload is empty")
	}

	fields := mapHeader(table[0])
	header := table[0]

	mappedAny := false
	for _, f := range fields {
		if f != "" {
			mappedAny = true
			break
		}
	}
	if !mappedAny {
		return nil, nil, fmt.Errorf("no recognized columns in header")
	}

	var (
		readings []*models.SessionReading
		warnings []string
	)

	for rowNum, row := range table[1:] {
		reading, err := rowToReading(username, fields, header, row)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("row %d: %v", rowNum+2, err))
			continue
		}
		readings = append(readings, reading)
	}

	return readings, warnings, nil
}

func rowToReading(username string, fields, header, row []string) (*models.SessionReading, error) {
	reading := &models.SessionReading{
		Username:   username,
		RecordedAt: time.Now().UTC(),
	}
	extras := map[string]string{}

	for i, cell := range row {
		if i >= len(fields) {
			break
		}
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}

		field := fields[i]
		if field == "" {
			extras[normalizeHeader(header[i])] = cell
			continue
		}

		switch field {
		case "recorded_at":
			t, err := parseRecordedAt(cell)
			if err != nil {
				return nil, err
			}
			reading.RecordedAt = t
		case "fatigue_level":
			level, err := strconv.Atoi(cell)
			if err != nil {
				return nil, fmt.Errorf("invalid fatigue_level %q", cell)
			}
			reading.FatigueLevel = &level
		default:
			value, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid %s %q", field, cell)
			}
			setNumericField(reading, field, value)
		}
	}

	if len(extras) > 0 {
		data, err := json.Marshal(extras)
		if err != nil {
			return nil, fmt.Errorf("failed to encode extra columns: %w", err)
		}
		reading.Extras = datatypes.JSON(data)
	}

	return reading, nil
}

func setNumericField(reading *models.SessionReading, field string, value float64) {
	switch field {
	case "duration_min":
		reading.DurationMin = value
	case "distance":
		reading.Distance = value
	case "avg_heart_rate":
		reading.AvgHeartRate = value
	case "hrv":
		reading.HRV = value
	case "spo2":
		reading.SpO2 = value
	case "skin_temp":
		reading.SkinTemp = value
	case "sweat_rate":
		reading.SweatRate = value
	case "pre_weight":
		reading.PreWeight = value
	case "post_weight":
		reading.PostWeight = value
	}
}
