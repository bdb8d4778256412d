package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decora/storefront/internal/domain/session"
	"github.com/decora/storefront/internal/domain/shared"
	"github.com/decora/storefront/internal/infrastructure/config"
)

func newTestStore(t *testing.T, ttl time.Duration) (*MemorySessionStore, *time.Time) {
	t.Helper()
	s := NewMemorySessionStore(ttl)
	t.Cleanup(func() { _ = s.Close() })

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	return s, &now
}

// ==================== MemorySessionStore Tests ====================

func TestMemorySessionStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, time.Hour)

	sess := session.New()
	_, err := sess.AddToCart(3, 2, "Natural")
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, 2, got.Cart.Count())

	t.Run("returned session is a copy", func(t *testing.T) {
		_, err := got.AddToCart(4, 1, "Green")
		require.NoError(t, err)

		again, err := store.Get(ctx, sess.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, again.Cart.Count())
	})
}

func TestMemorySessionStore_Unknown(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)

	_, err := store.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestMemorySessionStore_SlidingTTL(t *testing.T) {
	ctx := context.Background()
	store, now := newTestStore(t, time.Hour)

	sess := session.New()
	require.NoError(t, store.Save(ctx, sess))

	*now = now.Add(50 * time.Minute)
	require.NoError(t, store.Save(ctx, sess))

	*now = now.Add(50 * time.Minute)
	_, err := store.Get(ctx, sess.ID)
	require.NoError(t, err, "save should have extended the expiry")

	*now = now.Add(11 * time.Minute)
	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	store.sweep()
	assert.Zero(t, store.Size())
}

func TestMemorySessionStore_Delete(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, time.Hour)

	sess := session.New()
	require.NoError(t, store.Save(ctx, sess))
	require.NoError(t, store.Delete(ctx, sess.ID))

	_, err := store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.NoError(t, store.Ping(ctx))
}

func TestMemorySessionStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Hour)
	defer store.Close()

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess := session.New()
			assert.NoError(t, store.Save(ctx, sess))
			_, err := store.Get(ctx, sess.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, store.Size())
}

// ==================== SessionStoreFactory Tests ====================

func TestSessionStoreFactory(t *testing.T) {
	sessCfg := config.SessionConfig{Store: "memory", TTL: time.Hour}
	// nothing listens on port 1
	redisCfg := config.RedisConfig{Host: "127.0.0.1", Port: 1}

	t.Run("memory", func(t *testing.T) {
		store, err := NewSessionStoreFactory(sessCfg, redisCfg).CreateStore()
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &MemorySessionStore{}, store)
	})

	t.Run("redis unavailable falls back", func(t *testing.T) {
		cfg := sessCfg
		cfg.Store = "redis"
		store, err := NewSessionStoreFactory(cfg, redisCfg).CreateStore()
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &MemorySessionStore{}, store)
	})

	t.Run("redis required", func(t *testing.T) {
		cfg := sessCfg
		cfg.Store = "redis"
		_, err := NewSessionStoreFactory(cfg, redisCfg, WithInMemoryFallback(false)).CreateStore()
		assert.Error(t, err)
	})
}
