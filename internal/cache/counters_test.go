package cache

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"
)

func TestFailOpenWithoutRedis(t *testing.T) {
	s := New("", "", 0)
	if s.Available() {
		t.Fatal("expected store without client")
	}

	ctx := context.Background()
	key := DailyKey(1, time.Now())

	// every operation must be a silent no-op
	s.IncrField(ctx, key, "messages", 1, time.Hour)
	s.SetField(ctx, key, "messages", 5, time.Hour)
	if got := s.GetField(ctx, key, "messages"); got != 0 {
		t.Fatalf("expected 0 from unavailable store, got %d", got)
	}
	if m := s.GetAllFields(ctx, key); len(m) != 0 {
		t.Fatalf("expected empty map, got %v", m)
	}
}

func TestKeyFormats(t *testing.T) {
	day := time.Date(2025, 3, 5, 14, 0, 0, 0, time.UTC)
	if got := DailyKey(42, day); got != "stats:daily:42:2025-03-05" {
		t.Fatalf("daily key = %s", got)
	}
	year, week := day.ISOWeek()
	want := "stats:weekly:42:" + strconv.Itoa(year) + "-W" + strconv.Itoa(week)
	if got := WeeklyKey(42, day); got != want {
		t.Fatalf("weekly key = %s, want %s", got, want)
	}
}

// Integration-style test: runs only if REDIS_ADDR env is set.
func TestCounterStoreIntegration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping integration test")
	}

	s := New(addr, os.Getenv("REDIS_PASSWORD"), 0)
	if !s.Available() {
		t.Fatal("expected connection to test redis")
	}

	ctx := context.Background()
	key := DailyKey(999999, time.Now())

	s.IncrField(ctx, key, "messages", 1, time.Minute)
	s.IncrField(ctx, key, "messages", 2, time.Minute)
	if got := s.GetField(ctx, key, "messages"); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}

	s.SetField(ctx, key, "reactions", 7, time.Minute)
	all := s.GetAllFields(ctx, key)
	if all["messages"] != 3 || all["reactions"] != 7 {
		t.Fatalf("unexpected fields: %v", all)
	}
}
