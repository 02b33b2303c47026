// Package storage defines the key/value persistence used to save loadouts and
// monster selections, plus JSON helpers over it.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a key has no stored value.
	ErrNotFound = errors.New("storage: key not found")
	// ErrCorrupt is returned when a stored value cannot be decoded.
	ErrCorrupt = errors.New("storage: stored value is corrupt")
	// ErrEmptyKey is returned for operations on the empty key.
	ErrEmptyKey = errors.New("storage: key must not be empty")
)

// Store is a namespaced key/value store of serialized records.
//
// Implementations MUST be safe for concurrent use.
type Store interface {
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	// Clear deletes every key in the store's namespace.
	Clear(ctx context.Context) error
}

// PutJSON serializes v as JSON and stores it under key.
//
// Postcondition: GetJSON with the same key decodes an equal value.
func PutJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	if err := s.Set(ctx, key, data); err != nil {
		return fmt.Errorf("storing %q: %w", key, err)
	}
	return nil
}

// GetJSON loads the value stored under key and decodes it into a new T.
//
// Postcondition: returns ErrNotFound for absent keys and an error wrapping
// ErrCorrupt when decoding fails; the zero T accompanies every error.
func GetJSON[T any](ctx context.Context, s Store, key string) (T, error) {
	var zero T
	data, err := s.Get(ctx, key)
	if err != nil {
		return zero, err
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return zero, fmt.Errorf("%w: %q: %v", ErrCorrupt, key, err)
	}
	return v, nil
}
