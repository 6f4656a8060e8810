package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a sliding-window counter held in process memory: one
// timestamp list per key, filtered against the window on every call. A
// periodic full prune drops keys that have gone quiet so the map stays
// bounded.
type MemoryStore struct {
	limit      int
	window     time.Duration
	pruneEvery time.Duration

	mu        sync.Mutex
	hits      map[string][]time.Time
	lastPrune time.Time

	now func() time.Time // overridable in tests
}

// NewMemoryStore allows limit requests per window per key. Stale keys
// are pruned hourly.
func NewMemoryStore(limit int, window time.Duration) *MemoryStore {
	return &MemoryStore{
		limit:      limit,
		window:     window,
		pruneEvery: time.Hour,
		hits:       make(map[string][]time.Time),
		lastPrune:  time.Now(),
		now:        time.Now,
	}
}

func (s *MemoryStore) Allow(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	cutoff := now.Add(-s.window)

	if now.Sub(s.lastPrune) > s.pruneEvery {
		for k, ts := range s.hits {
			if len(ts) == 0 || ts[len(ts)-1].Before(cutoff) {
				delete(s.hits, k)
			}
		}
		s.lastPrune = now
	}

	recent := s.hits[key][:0:0]
	for _, t := range s.hits[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= s.limit {
		s.hits[key] = recent
		return false, nil
	}

	s.hits[key] = append(recent, now)
	return true, nil
}
