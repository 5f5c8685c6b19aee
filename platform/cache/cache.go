// Package cache provides single-slot TTL caches for values that are
// expensive to rebuild, such as the CRM access token and the full lead
// snapshot. Each slot holds one value with a wall-clock expiry and can be
// force-refreshed, which drops the entry and rebuilds it.
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Loader produces a fresh value for a slot.
type Loader[T any] func(ctx context.Context) (T, error)

// Store is a single-slot TTL cache. Implementations: the in-memory Slot and
// the Redis-backed RedisSlot.
type Store[T any] interface {
	// GetOrRefresh returns the cached value, loading a fresh one when the
	// entry is absent, expired, or force is set. Concurrent refreshes of the
	// same slot collapse into a single loader call.
	GetOrRefresh(ctx context.Context, ttl time.Duration, force bool, load Loader[T]) (T, error)

	// Remaining reports the time until the current entry expires.
	// The second return is false when the slot is empty or expired.
	Remaining(ctx context.Context) (time.Duration, bool)

	// Invalidate drops the current entry.
	Invalidate(ctx context.Context) error
}

// Slot is the in-memory Store implementation.
type Slot[T any] struct {
	mu        sync.Mutex
	group     singleflight.Group
	value     T
	expiresAt time.Time
	now       func() time.Time
}

// NewSlot creates an empty in-memory slot.
func NewSlot[T any]() *Slot[T] {
	return &Slot[T]{now: time.Now}
}

// GetOrRefresh implements Store.
func (s *Slot[T]) GetOrRefresh(ctx context.Context, ttl time.Duration, force bool, load Loader[T]) (T, error) {
	if force {
		_ = s.Invalidate(ctx)
	} else if value, ok := s.peek(); ok {
		return value, nil
	}

	result, err, _ := s.group.Do("slot", func() (interface{}, error) {
		// Re-check under the flight: another caller may have refreshed while
		// this one was queued.
		if value, ok := s.peek(); ok {
			return value, nil
		}

		value, err := load(ctx)
		if err != nil {
			var zero T
			return zero, err
		}

		s.mu.Lock()
		s.value = value
		s.expiresAt = s.now().Add(ttl)
		s.mu.Unlock()

		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return result.(T), nil
}

// Remaining implements Store.
func (s *Slot[T]) Remaining(_ context.Context) (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.expiresAt.IsZero() {
		return 0, false
	}
	remaining := s.expiresAt.Sub(s.now())
	if remaining <= 0 {
		return 0, false
	}
	return remaining, true
}

// Invalidate implements Store.
func (s *Slot[T]) Invalidate(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	s.value = zero
	s.expiresAt = time.Time{}
	return nil
}

func (s *Slot[T]) peek() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.expiresAt.IsZero() || !s.now().Before(s.expiresAt) {
		var zero T
		return zero, false
	}
	return s.value, true
}

var _ Store[int] = (*Slot[int])(nil)
