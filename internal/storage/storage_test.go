package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/damagecalc/internal/game/equipment"
	"github.com/cory-johannsen/damagecalc/internal/game/monster"
	"github.com/cory-johannsen/damagecalc/internal/storage"
	"github.com/cory-johannsen/damagecalc/internal/storage/storagetest"
)

func TestMemory_Conformance(t *testing.T) {
	shared := storage.NewMemory()
	storagetest.Run(t, func(t *testing.T, namespace string) storage.Store {
		return shared.Namespace(namespace)
	})
}

func TestMemory_NamespacesAreIsolated(t *testing.T) {
	ctx := context.Background()
	base := storage.NewMemory()
	local := base.Namespace("local")
	session := base.Namespace("session")

	require.NoError(t, local.Set(ctx, "k", []byte("local")))
	require.NoError(t, session.Set(ctx, "k", []byte("session")))

	_, err := base.Get(ctx, "k")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	got, err := base.Namespace("local").Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "local", string(got))

	require.NoError(t, session.Clear(ctx))
	_, err = session.Get(ctx, "k")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	got, err = local.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "local", string(got))
}

func TestMemory_ValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemory()
	value := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", value))
	value[0] = 'x'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
	got[1] = 'y'

	again, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestMemory_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := storage.NewMemory()
	assert.ErrorIs(t, s.Set(ctx, "k", nil), context.Canceled)
	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestJSON_LoadoutRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemory()
	set := equipment.Set{
		Weapon: &equipment.Equipment{
			Name: "Test Weapon", Type: equipment.TypeWeapon, Attack: 100, ElementValue: 20,
			Options: []equipment.Option{{Name: "ATK +10%", Value: 10}},
		},
	}
	require.NoError(t, storage.PutJSON(ctx, s, "loadout", set))
	got, err := storage.GetJSON[equipment.Set](ctx, s, "loadout")
	require.NoError(t, err)
	assert.Equal(t, set, got)
}

func TestJSON_MonsterFailsClosed(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemory()
	require.NoError(t, s.Set(ctx, "monster", []byte(`{"id":"x","name":"X","hp":0}`)))

	got, err := storage.GetJSON[monster.Monster](ctx, s, "monster")
	assert.ErrorIs(t, err, storage.ErrCorrupt)
	assert.Equal(t, monster.Monster{}, got)
}

func TestJSON_LoadoutFailsClosed(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemory()
	for _, body := range []string{
		`{"weapon":{}}`,
		`{"weapon":{"name":"x"}}`,
		`{"bogus":1}`,
	} {
		t.Run(body, func(t *testing.T) {
			require.NoError(t, s.Set(ctx, "loadout", []byte(body)))
			got, err := storage.GetJSON[equipment.Set](ctx, s, "loadout")
			assert.ErrorIs(t, err, storage.ErrCorrupt)
			assert.Equal(t, equipment.Set{}, got)
		})
	}
}

func TestJSON_MissingKey(t *testing.T) {
	_, err := storage.GetJSON[equipment.Set](context.Background(), storage.NewMemory(), "absent")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
