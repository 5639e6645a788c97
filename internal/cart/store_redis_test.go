package cart

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, NewRedisStore(client, time.Hour)
}

func TestRedisStore_LoadMissingIsEmpty(t *testing.T) {
	_, store := setupTestRedis(t)

	s, err := store.Load(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, s.Lines)
	assert.True(t, s.Total.IsZero())
}

func TestRedisStore_UpdatePersistsWithTTL(t *testing.T) {
	mr, store := setupTestRedis(t)
	ctx := context.Background()

	_, err := store.Update(ctx, "u1", func(s State) State { return Add(s, item(1, "2.50"), 2) })
	require.NoError(t, err)

	assert.True(t, mr.Exists("cuattro:cart:u1"))
	assert.Equal(t, time.Hour, mr.TTL("cuattro:cart:u1"))

	loaded, err := store.Load(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, loaded.Lines, 1)
	assert.Equal(t, 2, loaded.Lines[0].Quantity)
	assert.True(t, loaded.Total.Equal(decimal.NewFromInt(5)))
}

func TestRedisStore_EmptyCartDeletesKey(t *testing.T) {
	mr, store := setupTestRedis(t)
	ctx := context.Background()

	_, err := store.Update(ctx, "u1", func(s State) State { return Add(s, item(1, "1.00"), 1) })
	require.NoError(t, err)
	_, err = store.Update(ctx, "u1", Clear)
	require.NoError(t, err)

	assert.False(t, mr.Exists("cuattro:cart:u1"))
}

func TestRedisStore_ConcurrentAddsAreNotLost(t *testing.T) {
	_, store := setupTestRedis(t)
	ctx := context.Background()

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Update(ctx, "u1", func(s State) State { return Add(s, item(1, "1.00"), 1) })
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	s, err := store.Load(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, s.Lines, 1)
	assert.Equal(t, workers, s.Lines[0].Quantity)
	assert.True(t, s.Total.Equal(decimal.NewFromInt(workers)))
}
