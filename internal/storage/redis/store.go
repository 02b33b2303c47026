package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/cory-johannsen/damagecalc/internal/storage"
)

// scanBatch is the COUNT hint passed to SCAN while clearing a namespace.
const scanBatch = 100

// Store is a storage.Store keeping every entry under "<namespace>:<key>".
type Store struct {
	client    Client
	namespace string
}

// NewStore returns a Store scoped to namespace.
//
// Precondition: client must be non-nil; namespace must be non-empty.
func NewStore(client Client, namespace string) *Store {
	return &Store{client: client, namespace: namespace}
}

func (s *Store) key(key string) string {
	return s.namespace + ":" + key
}

// Set stores value under key with no expiry.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return storage.ErrEmptyKey
	}
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Get returns the bytes stored under key, or storage.ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, storage.ErrEmptyKey
	}
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, fmt.Errorf("%w: %q", storage.ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return data, nil
}

// Remove deletes key. Removing an absent key is not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	if key == "" {
		return storage.ErrEmptyKey
	}
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}

// Clear deletes every key in this store's namespace and nothing else.
//
// Postcondition: keys written concurrently with Clear may survive it.
func (s *Store) Clear(ctx context.Context) error {
	pattern := escapeGlob(s.namespace) + ":*"
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return fmt.Errorf("redis scan %q: %w", pattern, err)
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis del namespace %q: %w", s.namespace, err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// Ping reports whether the server is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

// escapeGlob quotes the characters SCAN MATCH treats as pattern syntax.
func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
