package repositories

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sbilibin2017/gw-currency-converter/internal/logger"
)

// ErrCacheMiss is returned when a key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

type cacheEntry struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
}

func (e cacheEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryCacheRepository is an in-process key/value store with per-entry expiry.
// Expired entries are dropped lazily on read and by a periodic sweep.
type MemoryCacheRepository struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	now     func() time.Time
}

// NewMemoryCacheRepository creates an empty cache.
func NewMemoryCacheRepository() *MemoryCacheRepository {
	return &MemoryCacheRepository{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the value stored under key.
func (r *MemoryCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	now := r.now()

	r.mu.RLock()
	entry, ok := r.entries[key]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrCacheMiss
	}

	if entry.expired(now) {
		r.mu.Lock()
		if current, ok := r.entries[key]; ok && current.expired(now) {
			delete(r.entries, key)
		}
		r.mu.Unlock()
		return nil, ErrCacheMiss
	}

	return entry.value, nil
}

// Set stores value under key for ttl. A non-positive ttl never expires.
func (r *MemoryCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	entry := cacheEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = r.now().Add(ttl)
	}

	r.mu.Lock()
	r.entries[key] = entry
	r.mu.Unlock()

	return nil
}

// Delete removes key from the cache.
func (r *MemoryCacheRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	delete(r.entries, key)
	r.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (r *MemoryCacheRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// DeleteExpired sweeps every expired entry and returns how many were removed.
func (r *MemoryCacheRepository) DeleteExpired() int {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for key, entry := range r.entries {
		if entry.expired(now) {
			delete(r.entries, key)
			removed++
		}
	}
	return removed
}

// RunJanitor sweeps expired entries every interval until ctx is done.
func (r *MemoryCacheRepository) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := r.DeleteExpired(); removed > 0 {
				logger.Log.Debugw("expired cache entries removed", "count", removed)
			}
		}
	}
}
