package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*CacheManager, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCacheManager(client), mr
}

func TestCacheRoundTrip(t *testing.T) {
	cm, mr := newTestCache(t)
	ctx := context.Background()

	value := map[string]int{"avg_heart_rate": 128}
	if err := cm.Dashboard.Set(ctx, "maria:summary", value, time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if !mr.Exists("dashboard:maria:summary") {
		t.Fatal("expected prefixed key in redis")
	}

	var got map[string]int
	if err := cm.Dashboard.Get(ctx, "maria:summary", &got); err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got["avg_heart_rate"] != 128 {
		t.Fatalf("got %v", got)
	}
}

func TestCacheMiss(t *testing.T) {
	cm, _ := newTestCache(t)

	var got map[string]int
	err := cm.Dashboard.Get(context.Background(), "nobody:summary", &got)
	if !errors.Is(err, ErrCacheNotFound) {
		t.Fatalf("err = %v, want ErrCacheNotFound", err)
	}
}

func TestCacheExpiry(t *testing.T) {
	cm, mr := newTestCache(t)
	ctx := context.Background()

	if err := cm.Reading.Set(ctx, "maria:latest", 1, time.Minute); err != nil {
		t.Fatal(err)
	}
	mr.FastForward(2 * time.Minute)

	var got int
	if err := cm.Reading.Get(ctx, "maria:latest", &got); !errors.Is(err, ErrCacheNotFound) {
		t.Fatalf("err = %v, want ErrCacheNotFound after expiry", err)
	}
}

func TestInvalidateAthlete(t *testing.T) {
	cm, mr := newTestCache(t)
	ctx := context.Background()

	for _, key := range []string{"maria:summary", "maria:trends"} {
		if err := cm.Dashboard.Set(ctx, key, 1, time.Minute); err != nil {
			t.Fatal(err)
		}
	}
	if err := cm.Reading.Set(ctx, "maria:latest", 1, time.Minute); err != nil {
		t.Fatal(err)
	}
	if err := cm.Dashboard.Set(ctx, "tomas:summary", 1, time.Minute); err != nil {
		t.Fatal(err)
	}

	if err := cm.InvalidateAthlete(ctx, "maria"); err != nil {
		t.Fatalf("InvalidateAthlete error: %v", err)
	}

	for _, key := range []string{"dashboard:maria:summary", "dashboard:maria:trends", "reading:maria:latest"} {
		if mr.Exists(key) {
			t.Fatalf("key %s survived invalidation", key)
		}
	}
	if !mr.Exists("dashboard:tomas:summary") {
		t.Fatal("other athlete's cache must survive")
	}
}

func TestDelete(t *testing.T) {
	cm, mr := newTestCache(t)
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		if err := cm.Dashboard.Set(ctx, key, 1, time.Minute); err != nil {
			t.Fatal(err)
		}
	}

	if err := cm.Dashboard.Delete(ctx, "a", "b"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if mr.Exists("dashboard:a") || mr.Exists("dashboard:b") {
		t.Fatal("deleted keys still present")
	}
	if !mr.Exists("dashboard:c") {
		t.Fatal("untouched key missing")
	}
}

func TestNilClientDegradesGracefully(t *testing.T) {
	cm := NewCacheManager(nil)
	ctx := context.Background()

	if err := cm.Dashboard.Set(ctx, "k", 1, time.Minute); err != nil {
		t.Fatalf("Set with nil client: %v", err)
	}

	var got int
	if err := cm.Dashboard.Get(ctx, "k", &got); !errors.Is(err, ErrCacheNotAvailable) {
		t.Fatalf("Get err = %v, want ErrCacheNotAvailable", err)
	}

	if err := cm.InvalidateAthlete(ctx, "maria"); err != nil {
		t.Fatalf("InvalidateAthlete with nil client: %v", err)
	}
	if err := cm.HealthCheck(ctx); !errors.Is(err, ErrCacheNotAvailable) {
		t.Fatalf("HealthCheck err = %v, want ErrCacheNotAvailable", err)
	}
}
