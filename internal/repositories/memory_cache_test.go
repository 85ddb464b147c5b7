package repositories

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestCache() (*MemoryCacheRepository, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)}
	repo := NewMemoryCacheRepository()
	repo.now = clock.Now
	return repo, clock
}

func TestMemoryCacheRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Set and Get value", func(t *testing.T) {
		repo, _ := newTestCache()

		require.NoError(t, repo.Set(ctx, "all_rates", []byte("payload"), time.Hour))

		got, err := repo.Get(ctx, "all_rates")
		require.NoError(t, err)
		assert.Equal(t, []byte("payload"), got)
	})

	t.Run("Get missing key returns ErrCacheMiss", func(t *testing.T) {
		repo, _ := newTestCache()

		_, err := repo.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("Expired value is evicted on read", func(t *testing.T) {
		repo, clock := newTestCache()

		require.NoError(t, repo.Set(ctx, "last_update", []byte("x"), 24*time.Hour))
		clock.Advance(24*time.Hour - time.Second)
		_, err := repo.Get(ctx, "last_update")
		require.NoError(t, err)

		clock.Advance(time.Second)
		_, err = repo.Get(ctx, "last_update")
		assert.ErrorIs(t, err, ErrCacheMiss)
		assert.Equal(t, 0, repo.Len())
	})

	t.Run("Zero ttl never expires", func(t *testing.T) {
		repo, clock := newTestCache()

		require.NoError(t, repo.Set(ctx, "k", []byte("v"), 0))
		clock.Advance(365 * 24 * time.Hour)

		_, err := repo.Get(ctx, "k")
		assert.NoError(t, err)
	})

	t.Run("Set replaces value and ttl", func(t *testing.T) {
		repo, clock := newTestCache()

		require.NoError(t, repo.Set(ctx, "k", []byte("old"), time.Minute))
		clock.Advance(50 * time.Second)
		require.NoError(t, repo.Set(ctx, "k", []byte("new"), time.Minute))
		clock.Advance(50 * time.Second)

		got, err := repo.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("new"), got)
	})

	t.Run("Delete removes key", func(t *testing.T) {
		repo, _ := newTestCache()

		require.NoError(t, repo.Set(ctx, "k", []byte("v"), time.Minute))
		require.NoError(t, repo.Delete(ctx, "k"))

		_, err := repo.Get(ctx, "k")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("DeleteExpired sweeps only expired entries", func(t *testing.T) {
		repo, clock := newTestCache()

		require.NoError(t, repo.Set(ctx, "short", []byte("1"), time.Minute))
		require.NoError(t, repo.Set(ctx, "long", []byte("2"), time.Hour))
		clock.Advance(2 * time.Minute)

		assert.Equal(t, 1, repo.DeleteExpired())
		assert.Equal(t, 1, repo.Len())
	})
}

func TestMemoryCacheRepository_RunJanitor(t *testing.T) {
	repo := NewMemoryCacheRepository()
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, repo.Set(ctx, "k", []byte("v"), time.Millisecond))

	done := make(chan struct{})
	go func() {
		repo.RunJanitor(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return repo.Len() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop after context cancel")
	}
}

func TestMemoryCacheRepository_RunJanitorDisabled(t *testing.T) {
	repo := NewMemoryCacheRepository()

	done := make(chan struct{})
	go func() {
		repo.RunJanitor(context.Background(), 0)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor with zero interval should return immediately")
	}
}
