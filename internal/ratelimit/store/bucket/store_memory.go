package bucket

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/Ibramnsh/backend-sidokepung/internal/ratelimit/models"
)

// InMemoryBucketStore is a process-local sliding window limiter. Windows
// left empty are dropped by a sweep that runs at most once per window length.
type InMemoryBucketStore struct {
	mu        sync.Mutex
	buckets   map[string]*slidingWindow
	now       func() time.Time
	lastSweep time.Time
}

type slidingWindow struct {
	timestamps []time.Time
	window     time.Duration
}

func NewInMemoryBucketStore() *InMemoryBucketStore {
	return &InMemoryBucketStore{
		buckets: make(map[string]*slidingWindow),
		now:     time.Now,
	}
}

// Allow records one hit for key when fewer than limit hits fall inside window.
func (s *InMemoryBucketStore) Allow(_ context.Context, key string, limit int, window time.Duration) (*models.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= window {
		s.sweep(now)
	}
	sw := s.buckets[key]
	if sw == nil {
		sw = &slidingWindow{window: window}
		s.buckets[key] = sw
	}
	sw.cleanup(now)

	if len(sw.timestamps) < limit {
		sw.timestamps = append(sw.timestamps, now)
		return &models.Result{
			Allowed:   true,
			Limit:     limit,
			Remaining: limit - len(sw.timestamps),
			ResetAt:   sw.timestamps[0].Add(window),
		}, nil
	}

	resetAt := sw.timestamps[0].Add(window)
	return &models.Result{
		Allowed:    false,
		Limit:      limit,
		Remaining:  0,
		ResetAt:    resetAt,
		RetryAfter: retryAfter(resetAt.Sub(now)),
	}, nil
}

// Reset clears the window for key.
func (s *InMemoryBucketStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buckets, key)
	return nil
}

func (s *InMemoryBucketStore) sweep(now time.Time) {
	for key, sw := range s.buckets {
		sw.cleanup(now)
		if len(sw.timestamps) == 0 {
			delete(s.buckets, key)
		}
	}
	s.lastSweep = now
}

// cleanup drops timestamps that fell out of the window.
func (sw *slidingWindow) cleanup(now time.Time) {
	cutoff := now.Add(-sw.window)
	i := 0
	for ; i < len(sw.timestamps); i++ {
		if sw.timestamps[i].After(cutoff) {
			break
		}
	}
	sw.timestamps = sw.timestamps[i:]
}

func retryAfter(d time.Duration) int {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}
