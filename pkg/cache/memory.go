package cache

import (
	"context"
	"fmt"
	"time"

	ristretto "github.com/dgraph-io/ristretto/v2"
)

const (
	// TinyLFU admission counters, ~10x the expected number of live entries.
	DefaultMemoryCacheNumCounters = 100_000
	// With a per-item cost of 1, caps the cache at this many entries.
	DefaultMemoryCacheMaxEntries = 10_000
	memoryCacheBufferItems       = 64
	memoryCacheItemCost          = 1
)

// MemoryCache implements Cache interface with an in-process TinyLFU cache.
// It is useful for single-instance deployments where a shared Redis store is
// not warranted but recalculating digit blocks on every request is wasteful.
type MemoryCache struct {
	cache *ristretto.Cache[string, string]
	ttl   time.Duration
}

// Defines the function signature for MemoryCache options.
type MemoryCacheOption func(*memoryCacheSettings)

type memoryCacheSettings struct {
	numCounters int64
	maxEntries  int64
	ttl         time.Duration
}

// Return a new Cache implementation backed by an in-process cache.
func NewMemoryCache(options ...MemoryCacheOption) (*MemoryCache, error) {
	settings := &memoryCacheSettings{
		numCounters: DefaultMemoryCacheNumCounters,
		maxEntries:  DefaultMemoryCacheMaxEntries,
	}
	for _, option := range options {
		option(settings)
	}
	cache, err := ristretto.NewCache(&ristretto.Config[string, string]{
		NumCounters: settings.numCounters,
		MaxCost:     settings.maxEntries,
		BufferItems: memoryCacheBufferItems,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory cache: %w", err)
	}
	return &MemoryCache{
		cache: cache,
		ttl:   settings.ttl,
	}, nil
}

// Set the maximum number of entries retained by the in-memory cache.
func WithMaxEntries(maxEntries int64) MemoryCacheOption {
	return func(s *memoryCacheSettings) {
		s.maxEntries = maxEntries
		s.numCounters = maxEntries * 10
	}
}

// Set an expiry duration for values written to the in-memory cache; values
// never expire if unset.
func WithMemoryTTL(ttl time.Duration) MemoryCacheOption {
	return func(s *memoryCacheSettings) {
		s.ttl = ttl
	}
}

// Returns the string value stored under key, if present, or an empty string.
func (m *MemoryCache) GetValue(_ context.Context, key string) (string, error) {
	value, ok := m.cache.Get(key)
	if !ok {
		return "", nil
	}
	return value, nil
}

// Store the string key:value pair in the in-memory cache. Admission is
// flushed before returning so a subsequent GetValue observes the entry.
func (m *MemoryCache) SetValue(_ context.Context, key string, value string) error {
	if m.ttl > 0 {
		m.cache.SetWithTTL(key, value, memoryCacheItemCost, m.ttl)
	} else {
		m.cache.Set(key, value, memoryCacheItemCost)
	}
	m.cache.Wait()
	return nil
}
