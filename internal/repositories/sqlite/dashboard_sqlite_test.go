package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/para-athletics/athlete-monitor/internal/models"
	"github.com/para-athletics/athlete-monitor/internal/repositories"
)

func seedReadings(t *testing.T, repo repositories.Repository, readings []*models.SessionReading) {
	t.Helper()
	if err := repo.Reading().CreateBatch(context.Background(), readings); err != nil {
		t.Fatalf("failed to seed readings: %v", err)
	}
}

func levelPtr(level int) *int { return &level }

func TestFatigueByWeekday(t *testing.T) {
	db := openTestDB(t)
	repo := NewSQLiteRepository(RepositoryConfig{DB: db})
	ctx := context.Background()

	monday := time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)
	wednesday := time.Date(2026, 8, 26, 8, 0, 0, 0, time.UTC)

	seedReadings(t, repo, []*models.SessionReading{
		{Username: "maria", FatigueLevel: levelPtr(1), RecordedAt: monday},
		{Username: "maria", FatigueLevel: levelPtr(3), RecordedAt: monday.Add(2 * time.Hour)},
		{Username: "maria", FatigueLevel: levelPtr(2), RecordedAt: wednesday},
		// No recorded level: excluded from the averages.
		{Username: "maria", RecordedAt: wednesday.Add(time.Hour)},
		// Another athlete on the same days.
		{Username: "tomas", FatigueLevel: levelPtr(3), RecordedAt: monday},
	})

	since := monday.AddDate(0, 0, -1)
	result, err := repo.Dashboard().FatigueByWeekday(ctx, "maria", since)
	if err != nil {
		t.Fatalf("FatigueByWeekday error: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("got %d weekday rows, want 2: %+v", len(result), result)
	}

	if result[0].Weekday != time.Monday || result[0].AverageLevel != 2 || result[0].Sessions != 2 {
		t.Fatalf("monday row = %+v", result[0])
	}
	if result[1].Weekday != time.Wednesday || result[1].AverageLevel != 2 || result[1].Sessions != 1 {
		t.Fatalf("wednesday row = %+v", result[1])
	}
}

func TestFatigueByWeekdayRespectsSince(t *testing.T) {
	db := openTestDB(t)
	repo := NewSQLiteRepository(RepositoryConfig{DB: db})
	ctx := context.Background()

	old := time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC)
	seedReadings(t, repo, []*models.SessionReading{
		{Username: "maria", FatigueLevel: levelPtr(3), RecordedAt: old},
	})

	result, err := repo.Dashboard().FatigueByWeekday(ctx, "maria", old.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("FatigueByWeekday error: %v", err)
	}
	if len(result) != 0 {
		t.Fatalf("expected no rows for stale readings, got %+v", result)
	}
}

func TestWindowStats(t *testing.T) {
	db := openTestDB(t)
	repo := NewSQLiteRepository(RepositoryConfig{DB: db})
	ctx := context.Background()

	base := time.Date(2026, 8, 20, 8, 0, 0, 0, time.UTC)
	seedReadings(t, repo, []*models.SessionReading{
		{
			Username:     "maria",
			DurationMin:  40,
			AvgHeartRate: 120,
			PreWeight:    70,
			PostWeight:   70,
			FatigueLevel: levelPtr(1),
			RecordedAt:   base,
		},
		{
			Username:     "maria",
			DurationMin:  60,
			AvgHeartRate: 140,
			PreWeight:    50,
			PostWeight:   49,
			FatigueLevel: levelPtr(3),
			RecordedAt:   base.AddDate(0, 0, 1),
		},
		// Outside the window.
		{Username: "maria", AvgHeartRate: 200, RecordedAt: base.AddDate(0, 0, 10)},
	})

	stats, err := repo.Dashboard().WindowStats(ctx, "maria", base.AddDate(0, 0, -1), base.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("WindowStats error: %v", err)
	}

	if stats.Sessions != 2 {
		t.Fatalf("sessions = %d, want 2", stats.Sessions)
	}
	if stats.AvgHeartRate != 130 {
		t.Fatalf("avg heart rate = %v, want 130", stats.AvgHeartRate)
	}
	if stats.AvgFatigue != 2 {
		t.Fatalf("avg fatigue = %v, want 2", stats.AvgFatigue)
	}
	// (100 + 98) / 2
	if stats.AvgHydration != 99 {
		t.Fatalf("avg hydration = %v, want 99", stats.AvgHydration)
	}
	if stats.TotalDuration != 100 {
		t.Fatalf("total duration = %v, want 100", stats.TotalDuration)
	}
}

func TestWindowStatsEmptyWindow(t *testing.T) {
	db := openTestDB(t)
	repo := NewSQLiteRepository(RepositoryConfig{DB: db})

	stats, err := repo.Dashboard().WindowStats(context.Background(), "maria",
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("WindowStats error: %v", err)
	}
	if stats.Sessions != 0 || stats.AvgHeartRate != 0 || stats.AvgHydration != 0 {
		t.Fatalf("expected zeroed stats, got %+v", stats)
	}
}
