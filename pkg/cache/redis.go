package cache

import (
	"context"
	"time"

	"github.com/gomodule/redigo/redis"
)

// RedisCache implements Cache interface backed by a Redis store.
type RedisCache struct {
	*redis.Pool
	// Optional expiry applied to entries as they are written; zero means
	// entries do not expire.
	ttl time.Duration
}

// Defines the function signature for RedisCache options.
type RedisCacheOption func(*RedisCache)

// Return a new Cache implementation using Redis.
func NewRedisCache(_ context.Context, endpoint string, options ...RedisCacheOption) *RedisCache {
	cache := &RedisCache{
		Pool: &redis.Pool{
			DialContext: func(ctx context.Context) (redis.Conn, error) {
				return redis.DialContext(ctx, "tcp", endpoint)
			},
		},
	}
	for _, option := range options {
		option(cache)
	}
	return cache
}

// Set the maximum number of idle connections retained in the Redis pool.
func WithMaxIdleConnections(maxIdle int) RedisCacheOption {
	return func(r *RedisCache) {
		r.MaxIdle = maxIdle
	}
}

// Set the maximum number of connections allocated by the Redis pool.
func WithMaxActiveConnections(maxActive int) RedisCacheOption {
	return func(r *RedisCache) {
		r.MaxActive = maxActive
	}
}

// Set an expiry duration for values written to Redis; values never expire if
// unset.
func WithRedisTTL(ttl time.Duration) RedisCacheOption {
	return func(r *RedisCache) {
		r.ttl = ttl
	}
}

// Returns the string value stored in Redis under key, if present, or an empty string.
func (r *RedisCache) GetValue(ctx context.Context, key string) (string, error) {
	conn, err := r.GetContext(ctx)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	value, err := redis.String(conn.Do("GET", key))
	if err == redis.ErrNil {
		// A cache miss is *NOT* an error to propagate
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Store the string key:value pair in Redis.
func (r *RedisCache) SetValue(ctx context.Context, key string, value string) error {
	conn, err := r.GetContext(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if r.ttl > 0 {
		_, err = conn.Do("SET", key, value, "EX", int64(r.ttl/time.Second))
	} else {
		_, err = conn.Do("SET", key, value)
	}
	if err != nil {
		return err
	}
	return nil
}
