// Package redis provides a storage.Store backed by Redis via go-redis.
package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/cory-johannsen/damagecalc/internal/config"
)

// Client is the subset of go-redis commands the store issues.
// Both *goredis.Client and *goredis.ClusterClient satisfy it.
type Client interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *goredis.ScanCmd
	Ping(ctx context.Context) *goredis.StatusCmd
	Close() error
}

// NewClient creates a Redis client for a single instance.
//
// Precondition: cfg.Addr must be non-empty.
// Postcondition: Returns a lazily connecting client or a non-nil error.
func NewClient(cfg config.RedisConfig) (Client, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis: addr is required")
	}
	return goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   cfg.MaxRetries,
	}), nil
}
