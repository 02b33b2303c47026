// Package storagetest provides a conformance suite every storage.Store backend must pass.
package storagetest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/damagecalc/internal/storage"
)

// Factory returns a fresh, empty Store. Stores created by one call to a
// Factory with the same namespace argument share data.
type Factory func(t *testing.T, namespace string) storage.Store

// Run exercises the Store contract against stores produced by newStore.
//
// Precondition: every call to newStore with a new namespace yields an empty store.
func Run(t *testing.T, newStore Factory) {
	t.Helper()
	ctx := context.Background()

	t.Run("set then get", func(t *testing.T) {
		s := newStore(t, "ns-set")
		require.NoError(t, s.Set(ctx, "loadout", []byte(`{"weapon":null}`)))
		got, err := s.Get(ctx, "loadout")
		require.NoError(t, err)
		assert.Equal(t, `{"weapon":null}`, string(got))
	})

	t.Run("overwrite", func(t *testing.T) {
		s := newStore(t, "ns-overwrite")
		require.NoError(t, s.Set(ctx, "k", []byte("one")))
		require.NoError(t, s.Set(ctx, "k", []byte("two")))
		got, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "two", string(got))
	})

	t.Run("missing key", func(t *testing.T) {
		s := newStore(t, "ns-missing")
		_, err := s.Get(ctx, "nope")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("remove", func(t *testing.T) {
		s := newStore(t, "ns-remove")
		require.NoError(t, s.Set(ctx, "k", []byte("v")))
		require.NoError(t, s.Remove(ctx, "k"))
		_, err := s.Get(ctx, "k")
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.NoError(t, s.Remove(ctx, "k"), "removing an absent key is not an error")
	})

	t.Run("clear is scoped to namespace", func(t *testing.T) {
		local := newStore(t, "local")
		session := newStore(t, "session")
		require.NoError(t, local.Set(ctx, "a", []byte("1")))
		require.NoError(t, local.Set(ctx, "b", []byte("2")))
		require.NoError(t, session.Set(ctx, "a", []byte("s")))

		require.NoError(t, local.Clear(ctx))
		_, err := local.Get(ctx, "a")
		assert.ErrorIs(t, err, storage.ErrNotFound)
		_, err = local.Get(ctx, "b")
		assert.ErrorIs(t, err, storage.ErrNotFound)

		got, err := session.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "s", string(got))
	})

	t.Run("empty key", func(t *testing.T) {
		s := newStore(t, "ns-empty")
		assert.ErrorIs(t, s.Set(ctx, "", []byte("v")), storage.ErrEmptyKey)
		_, err := s.Get(ctx, "")
		assert.ErrorIs(t, err, storage.ErrEmptyKey)
		assert.ErrorIs(t, s.Remove(ctx, ""), storage.ErrEmptyKey)
	})

	t.Run("binary values", func(t *testing.T) {
		s := newStore(t, "ns-binary")
		value := []byte{0, 1, 2, 0xff, '\n'}
		require.NoError(t, s.Set(ctx, "bin", value))
		got, err := s.Get(ctx, "bin")
		require.NoError(t, err)
		assert.Equal(t, value, got)
	})

	t.Run("json helpers", func(t *testing.T) {
		s := newStore(t, "ns-json")
		type record struct {
			Name  string  `json:"name"`
			Value float64 `json:"value"`
		}
		require.NoError(t, storage.PutJSON(ctx, s, "r", record{Name: "ATK +10%", Value: 10}))
		got, err := storage.GetJSON[record](ctx, s, "r")
		require.NoError(t, err)
		assert.Equal(t, record{Name: "ATK +10%", Value: 10}, got)

		require.NoError(t, s.Set(ctx, "broken", []byte("{not json")))
		_, err = storage.GetJSON[record](ctx, s, "broken")
		assert.ErrorIs(t, err, storage.ErrCorrupt)
	})

	t.Run("concurrent writers", func(t *testing.T) {
		s := newStore(t, "ns-concurrent")
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				key := fmt.Sprintf("k%d", i)
				assert.NoError(t, s.Set(ctx, key, []byte(key)))
			}(i)
		}
		wg.Wait()
		for i := 0; i < 16; i++ {
			key := fmt.Sprintf("k%d", i)
			got, err := s.Get(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, key, string(got))
		}
	})
}
