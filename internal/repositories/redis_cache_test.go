package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestRedisCacheRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7.0-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("docker is not available: %v", err)
	}
	defer func() { _ = redisC.Terminate(ctx) }()

	host, err := redisC.Host(ctx)
	require.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})
	defer rdb.Close()
	require.NoError(t, rdb.Ping(ctx).Err())

	repo := NewRedisCacheRepository(rdb, "converter:")

	t.Run("Set and Get value", func(t *testing.T) {
		err := repo.Set(ctx, "all_rates", []byte(`[{"code":"USD"}]`), time.Minute)
		assert.NoError(t, err)

		got, err := repo.Get(ctx, "all_rates")
		assert.NoError(t, err)
		assert.Equal(t, []byte(`[{"code":"USD"}]`), got)

		raw, err := rdb.Get(ctx, "converter:all_rates").Result()
		assert.NoError(t, err)
		assert.Equal(t, `[{"code":"USD"}]`, raw)
	})

	t.Run("Get missing key returns ErrCacheMiss", func(t *testing.T) {
		_, err := repo.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("Cached value expires", func(t *testing.T) {
		err := repo.Set(ctx, "last_update", []byte("2026-10-17T09:00:00Z"), 2*time.Second)
		assert.NoError(t, err)

		time.Sleep(3 * time.Second)

		_, err = repo.Get(ctx, "last_update")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("Delete removes key", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "k", []byte("v"), time.Minute))
		require.NoError(t, repo.Delete(ctx, "k"))

		_, err := repo.Get(ctx, "k")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})
}
