package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/damagecalc/internal/storage"
)

// Store is a storage.Store persisting entries in the kv_entries table,
// partitioned by namespace.
type Store struct {
	db        *pgxpool.Pool
	namespace string
}

// NewStore creates a Store scoped to namespace.
//
// Precondition: db must be a valid, open connection pool with the kv_entries
// migration applied; namespace must be non-empty.
func NewStore(db *pgxpool.Pool, namespace string) *Store {
	return &Store{db: db, namespace: namespace}
}

// Set inserts or replaces the value stored under key.
//
// Postcondition: updated_at reflects the time of the write.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return storage.ErrEmptyKey
	}
	if value == nil {
		value = []byte{}
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO kv_entries (namespace, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (namespace, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		s.namespace, key, value,
	)
	if err != nil {
		return fmt.Errorf("storing %q: %w", key, err)
	}
	return nil
}

// Get returns the value stored under key.
//
// Postcondition: Returns storage.ErrNotFound if the key has no entry.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, storage.ErrEmptyKey
	}
	var value []byte
	err := s.db.QueryRow(ctx,
		`SELECT value FROM kv_entries WHERE namespace = $1 AND key = $2`,
		s.namespace, key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", storage.ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", key, err)
	}
	return value, nil
}

// Remove deletes key. Removing an absent key is not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	if key == "" {
		return storage.ErrEmptyKey
	}
	if _, err := s.db.Exec(ctx,
		`DELETE FROM kv_entries WHERE namespace = $1 AND key = $2`,
		s.namespace, key,
	); err != nil {
		return fmt.Errorf("removing %q: %w", key, err)
	}
	return nil
}

// Clear deletes every entry in this store's namespace.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.Exec(ctx,
		`DELETE FROM kv_entries WHERE namespace = $1`, s.namespace,
	); err != nil {
		return fmt.Errorf("clearing namespace %q: %w", s.namespace, err)
	}
	return nil
}
