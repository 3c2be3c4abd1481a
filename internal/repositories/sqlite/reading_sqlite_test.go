package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/para-athletics/athlete-monitor/internal/models"
	"github.com/para-athletics/athlete-monitor/internal/repositories"
)

func TestReadingListAndLatest(t *testing.T) {
	db := openTestDB(t)
	repo := NewReadingSQLite(db)
	ctx := context.Background()

	base := time.Date(2026, 8, 20, 8, 0, 0, 0, time.UTC)
	batch := []*models.SessionReading{
		{Username: "maria", AvgHeartRate: 120, RecordedAt: base},
		{Username: "maria", AvgHeartRate: 130, RecordedAt: base.AddDate(0, 0, 1)},
		{Username: "maria", AvgHeartRate: 140, RecordedAt: base.AddDate(0, 0, 2)},
		{Username: "tomas", AvgHeartRate: 110, RecordedAt: base.AddDate(0, 0, 3)},
	}
	if err := repo.CreateBatch(ctx, batch); err != nil {
		t.Fatalf("CreateBatch error: %v", err)
	}

	readings, total, err := repo.List(ctx, repositories.ReadingFilters{Username: "maria"})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if total != 3 || len(readings) != 3 {
		t.Fatalf("total = %d, len = %d, want 3/3", total, len(readings))
	}
	// Default order is most recent first.
	if readings[0].AvgHeartRate != 140 {
		t.Fatalf("first reading = %+v", readings[0])
	}

	paged, total, err := repo.List(ctx, repositories.ReadingFilters{Username: "maria", Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if total != 3 || len(paged) != 1 {
		t.Fatalf("paged total = %d, len = %d, want 3/1", total, len(paged))
	}

	from := base.AddDate(0, 0, 1)
	ranged, _, err := repo.List(ctx, repositories.ReadingFilters{Username: "maria", DateFrom: &from, SortOrder: "asc"})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(ranged) != 2 || ranged[0].AvgHeartRate != 130 {
		t.Fatalf("ranged = %+v", ranged)
	}

	latest, err := repo.Latest(ctx, "maria")
	if err != nil {
		t.Fatalf("Latest error: %v", err)
	}
	if latest.AvgHeartRate != 140 {
		t.Fatalf("latest = %+v", latest)
	}
}

func TestLatestNotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewReadingSQLite(db)

	if _, err := repo.Latest(context.Background(), "nobody"); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateBatchEmpty(t *testing.T) {
	db := openTestDB(t)
	repo := NewReadingSQLite(db)

	if err := repo.CreateBatch(context.Background(), nil); err != nil {
		t.Fatalf("empty batch must be a no-op, got %v", err)
	}
}
