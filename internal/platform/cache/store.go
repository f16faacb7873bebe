package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry[V any] struct {
	value     V
	version   string
	expiresAt time.Time
	storedAt  time.Time
}

// Store is an in-process cache whose entries are stamped with a version. A lookup with a
// different version misses, so callers invalidate by changing the stamp instead of deleting.
type Store[V any] struct {
	mu         sync.RWMutex
	entries    map[string]entry[V]
	ttl        time.Duration
	maxEntries int
	flight     singleflight.Group
	now        func() time.Time
}

type Option func(*options)

type options struct {
	maxEntries int
	now        func() time.Time
}

// WithMaxEntries bounds the store; the oldest entry is evicted on overflow.
func WithMaxEntries(n int) Option {
	return func(o *options) { o.maxEntries = n }
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func NewStore[V any](ttl time.Duration, opts ...Option) *Store[V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	return &Store[V]{
		entries:    make(map[string]entry[V]),
		ttl:        ttl,
		maxEntries: o.maxEntries,
		now:        o.now,
	}
}

func (s *Store[V]) Get(_ context.Context, key, version string) (V, bool) {
	var zero V
	if key == "" {
		return zero, false
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if e.version != version || s.expired(e) {
		s.mu.Lock()
		if cur, ok := s.entries[key]; ok && cur.storedAt.Equal(e.storedAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return zero, false
	}

	return e.value, true
}

func (s *Store[V]) Set(_ context.Context, key, version string, value V) {
	if key == "" {
		return
	}

	now := s.now()
	expiresAt := time.Time{}
	if s.ttl > 0 {
		expiresAt = now.Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[key] = entry[V]{value: value, version: version, expiresAt: expiresAt, storedAt: now}
	if s.maxEntries > 0 && len(s.entries) > s.maxEntries {
		s.evictLocked()
	}
	s.mu.Unlock()
}

func (s *Store[V]) Delete(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// GetOrLoad returns the cached value for (key, version) or runs loader once per key across
// concurrent callers. Loader errors are not cached. A caller whose ctx ends first returns
// ctx.Err() while the shared load keeps running for the others.
func (s *Store[V]) GetOrLoad(ctx context.Context, key, version string, loader func(context.Context) (V, error)) (V, error) {
	var zero V
	if loader == nil {
		return zero, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key, version); ok {
		return value, nil
	}

	// The load outlives any single caller so joined callers are not failed by the
	// first caller's cancellation.
	shared := context.WithoutCancel(ctx)
	ch := s.flight.DoChan(key+"@"+version, func() (any, error) {
		if cached, ok := s.Get(shared, key, version); ok {
			return cached, nil
		}

		loaded, loadErr := loader(shared)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Set(shared, key, version, loaded)
		return loaded, nil
	})

	var v any
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		v = res.Val
	}

	return v.(V), nil
}

func (s *Store[V]) expired(e entry[V]) bool {
	return s.ttl > 0 && !e.expiresAt.After(s.now())
}

func (s *Store[V]) evictLocked() {
	var (
		oldestKey string
		oldestAt  time.Time
	)
	for key, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, key)
			continue
		}
		if oldestKey == "" || e.storedAt.Before(oldestAt) {
			oldestKey, oldestAt = key, e.storedAt
		}
	}
	if len(s.entries) > s.maxEntries && oldestKey != "" {
		delete(s.entries, oldestKey)
	}
}
