package testutil

import (
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/cory-johannsen/damagecalc/internal/config"
	"github.com/cory-johannsen/damagecalc/internal/storage/redis"
)

// NewRedis starts an in-process Redis server and returns it with a client
// connected to it.
//
// Postcondition: Both are released when the test completes.
func NewRedis(t *testing.T) (*miniredis.Miniredis, redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)

	client, err := redis.NewClient(config.RedisConfig{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("creating redis client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}
