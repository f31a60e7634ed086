package cache_test

import (
	"context"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/memes/pihex/pkg/cache"
)

const (
	testCacheLoopLimit = 10
)

// The NoopCache should do nothing useful. This test confirms that values can
// appear to be added successfully, but an attempt to recall the value will
// result in an empty string.
func TestNoopCache(t *testing.T) {
	ctx := context.Background()
	testCache := cache.NewNoopCache()
	if testCache == nil {
		t.Error("Noop cache is nil")
	}
	for i := uint64(0); i < testCacheLoopLimit; i++ {
		expected := ""
		key := strconv.FormatUint(i, 16)
		actual, err := testCache.GetValue(ctx, key)
		if err != nil {
			t.Errorf("GetValue returned an error: %v", err)
		}
		if actual != expected {
			t.Errorf("Key %s: Expected %q received %q", key, expected, actual)
		}
		if err = testCache.SetValue(ctx, key, "2"); err != nil {
			t.Errorf("Key %s: SetValue returned an error: %v", key, err)
		}
		actual, err = testCache.GetValue(ctx, key)
		if err != nil {
			t.Errorf("GetValue returned an error: %v", err)
		}
		if actual != expected {
			t.Errorf("Key %s: Expected %q received %q", key, expected, actual)
		}
	}
}

// The RedisCache will use a Redis-like in-memory instance to cache values. The
// test should confirm that a value can be added to the cache and recalled
// successfully.
func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	mock := miniredis.RunT(t)
	testCache := cache.NewRedisCache(ctx, mock.Addr())
	if testCache == nil {
		t.Error("Redis cache is nil")
	}
	for i := uint64(0); i < testCacheLoopLimit; i++ {
		expected := ""
		key := strconv.FormatUint(i, 16)
		actual, err := testCache.GetValue(ctx, key)
		if err != nil {
			t.Errorf("GetValue returned an error: %v", err)
		}
		if actual != expected {
			t.Errorf("Key %s: Expected %q received %q", key, expected, actual)
		}
		expected = fmt.Sprintf("%08x", i)
		if err = testCache.SetValue(ctx, key, expected); err != nil {
			t.Errorf("Key %s: SetValue returned an error: %v", key, err)
		}
		actual, err = testCache.GetValue(ctx, key)
		if err != nil {
			t.Errorf("GetValue returned an error: %v", err)
		}
		if actual != expected {
			t.Errorf("Key %s: Expected %q received %q", key, expected, actual)
		}
	}
}

// A RedisCache constructed with a TTL should set an expiry on every entry.
func TestRedisCache_TTL(t *testing.T) {
	ctx := context.Background()
	mock := miniredis.RunT(t)
	testCache := cache.NewRedisCache(ctx, mock.Addr(), cache.WithRedisTTL(time.Minute))
	if err := testCache.SetValue(ctx, "3243f6", "a8885a30"); err != nil {
		t.Errorf("SetValue returned an error: %v", err)
	}
	if ttl := mock.TTL("3243f6"); ttl != time.Minute {
		t.Errorf("Expected TTL of %v, got %v", time.Minute, ttl)
	}
	mock.FastForward(2 * time.Minute)
	actual, err := testCache.GetValue(ctx, "3243f6")
	if err != nil {
		t.Errorf("GetValue returned an error: %v", err)
	}
	if actual != "" {
		t.Errorf("Expected entry to expire, received %q", actual)
	}
}

// The MemoryCache should retain values between calls within the process.
func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	testCache, err := cache.NewMemoryCache()
	if err != nil {
		t.Fatalf("Error creating memory cache: %v", err)
	}
	for i := uint64(0); i < testCacheLoopLimit; i++ {
		expected := ""
		key := strconv.FormatUint(i, 16)
		actual, err := testCache.GetValue(ctx, key)
		if err != nil {
			t.Errorf("GetValue returned an error: %v", err)
		}
		if actual != expected {
			t.Errorf("Key %s: Expected %q received %q", key, expected, actual)
		}
		expected = fmt.Sprintf("%08x", i)
		if err = testCache.SetValue(ctx, key, expected); err != nil {
			t.Errorf("Key %s: SetValue returned an error: %v", key, err)
		}
		actual, err = testCache.GetValue(ctx, key)
		if err != nil {
			t.Errorf("GetValue returned an error: %v", err)
		}
		if actual != expected {
			t.Errorf("Key %s: Expected %q received %q", key, expected, actual)
		}
	}
}
