// Package cache stores finished forecasts in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sumesh-12/energy-demand-prediction/internal/model"
)

// DefaultTTL bounds how long a cached forecast is served.
const DefaultTTL = 6 * time.Hour

// Redis implements forecast.Cache on a go-redis client.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// Options configures NewRedis.
type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedis connects and pings the server.
func NewRedis(ctx context.Context, opts Options) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return NewRedisWithClient(client, opts.TTL), nil
}

// NewRedisWithClient wraps an existing client. ttl <= 0 uses DefaultTTL.
func NewRedisWithClient(client *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{client: client, ttl: ttl}
}

// Get returns the cached forecast for key. A miss is (zero, false, nil).
func (r *Redis) Get(ctx context.Context, key string) (model.DailyForecast, bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.DailyForecast{}, false, nil
	}
	if err != nil {
		return model.DailyForecast{}, false, err
	}
	var f model.DailyForecast
	if err := json.Unmarshal(data, &f); err != nil {
		return model.DailyForecast{}, false, fmt.Errorf("decode cached forecast %s: %w", key, err)
	}
	return f, true, nil
}

// Set stores f under key with the configured TTL.
func (r *Redis) Set(ctx context.Context, key string, f model.DailyForecast) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, r.ttl).Err()
}

// Close closes the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}
