package ratelimit

import (
	"context"
	"testing"
	"time"
)

func testStore(limit int, window time.Duration) (*MemoryStore, *time.Time) {
	s := NewMemoryStore(limit, window)
	now := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	s.lastPrune = now
	s.now = func() time.Time { return now }
	return s, &now
}

func TestMemoryStoreLimitsWithinWindow(t *testing.T) {
	s, _ := testStore(2, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := s.Allow(ctx, "student@example.com")
		if err != nil || !ok {
			t.Fatalf("request %d: ok=%v err=%v, want allowed", i+1, ok, err)
		}
	}
	if ok, _ := s.Allow(ctx, "student@example.com"); ok {
		t.Fatal("third request within window allowed, want denied")
	}

	// Another key has its own counter.
	if ok, _ := s.Allow(ctx, "other@example.com"); !ok {
		t.Fatal("unrelated key denied")
	}
}

func TestMemoryStoreWindowSlides(t *testing.T) {
	s, now := testStore(1, time.Minute)
	ctx := context.Background()

	if ok, _ := s.Allow(ctx, "k"); !ok {
		t.Fatal("first request denied")
	}
	if ok, _ := s.Allow(ctx, "k"); ok {
		t.Fatal("second request allowed within window")
	}

	*now = now.Add(61 * time.Second)
	if ok, _ := s.Allow(ctx, "k"); !ok {
		t.Fatal("request denied after window elapsed")
	}
}

func TestMemoryStorePrunesStaleKeys(t *testing.T) {
	s, now := testStore(5, time.Minute)
	ctx := context.Background()

	_, _ = s.Allow(ctx, "stale")
	*now = now.Add(2 * time.Hour)
	_, _ = s.Allow(ctx, "fresh")

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.hits["stale"]; ok {
		t.Error("stale key survived prune")
	}
	if _, ok := s.hits["fresh"]; !ok {
		t.Error("fresh key missing")
	}
}
