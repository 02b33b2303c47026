// Package postgres provides a storage.Store on PostgreSQL using pgx v5.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/damagecalc/internal/config"
)

// Pool owns the connection pool shared by every namespace's Store.
type Pool struct {
	pool *pgxpool.Pool
}

// NewPool connects to the database described by cfg and verifies it answers.
//
// Precondition: cfg passes config validation for the postgres backend.
// Postcondition: Returns a reachable Pool or a non-nil error; no connections
// are left open on error.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database dsn: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("opening pool for %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	return &Pool{pool: pool}, nil
}

// Store returns a key/value Store scoped to namespace on this pool.
func (p *Pool) Store(namespace string) *Store {
	return NewStore(p.pool, namespace)
}

// Health pings the database, giving up after timeout.
func (p *Pool) Health(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return p.pool.Ping(ctx)
}

// Close releases every connection. The Pool and its Stores are unusable afterwards.
func (p *Pool) Close() {
	p.pool.Close()
}

// DB exposes the raw pool for tests and migrations.
func (p *Pool) DB() *pgxpool.Pool {
	return p.pool
}
