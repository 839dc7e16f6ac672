package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go-employee/internal/shared/cachekey"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

const ttl = 5 * time.Minute

func TestStore_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("hit", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		store := New(rdb, nil)

		mock.ExpectGet(cachekey.Generation).SetVal("4")
		mock.ExpectGet("totals:4").SetVal("7")

		var got int64
		err := store.Load(ctx, "totals", ttl, &got, func(context.Context) (any, error) {
			t.Fatal("loader must not run on a hit")
			return nil, nil
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(7), got)
	})

	t.Run("miss stores under the current generation", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		store := New(rdb, nil)

		mock.ExpectGet(cachekey.Generation).RedisNil()
		mock.ExpectGet("totals:0").RedisNil()
		mock.ExpectSet("totals:0", []byte("3"), ttl).SetVal("OK")

		var got int64
		err := store.Load(ctx, "totals", ttl, &got, func(context.Context) (any, error) {
			return int64(3), nil
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(3), got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("write during a load is never served stale", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		store := New(rdb, nil)

		// reader misses, a writer commits and invalidates while the reader
		// is still loading, then the reader stores what it read before.
		mock.ExpectGet(cachekey.Generation).SetVal("1")
		mock.ExpectGet("totals:1").RedisNil()
		mock.ExpectIncr(cachekey.Generation).SetVal(2)
		mock.ExpectSet("totals:1", []byte("3"), ttl).SetVal("OK")
		// next reader sees the new generation and reloads.
		mock.ExpectGet(cachekey.Generation).SetVal("2")
		mock.ExpectGet("totals:2").RedisNil()
		mock.ExpectSet("totals:2", []byte("4"), ttl).SetVal("OK")

		var stale int64
		err := store.Load(ctx, "totals", ttl, &stale, func(ctx context.Context) (any, error) {
			assert.NoError(t, store.Invalidate(ctx))
			return int64(3), nil
		})
		assert.NoError(t, err)

		var fresh int64
		err = store.Load(ctx, "totals", ttl, &fresh, func(context.Context) (any, error) {
			return int64(4), nil
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(4), fresh)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unreadable generation bypasses the cache", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		store := New(rdb, nil)

		mock.ExpectGet(cachekey.Generation).SetErr(errors.New("dial tcp: refused"))

		var got int64
		err := store.Load(ctx, "totals", ttl, &got, func(context.Context) (any, error) {
			return int64(2), nil
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(2), got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("loader error", func(t *testing.T) {
		store := New(nil, nil)

		var got int64
		err := store.Load(ctx, "totals", ttl, &got, func(context.Context) (any, error) {
			return nil, errors.New("db down")
		})

		assert.EqualError(t, err, "db down")
	})
}

func TestStore_LoadSurvivesCallerCancellation(t *testing.T) {
	store := New(nil, nil)

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	load := func(ctx context.Context) (any, error) {
		once.Do(func() { close(entered) })
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return int64(5), nil
	}

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		var v int64
		errA <- store.Load(ctxA, "totals", ttl, &v, load)
	}()
	<-entered

	errB := make(chan error, 1)
	var gotB int64
	go func() {
		errB <- store.Load(context.Background(), "totals", ttl, &gotB, load)
	}()

	cancelA()
	close(release)

	assert.NoError(t, <-errA)
	assert.NoError(t, <-errB)
	assert.Equal(t, int64(5), gotB)
}

func TestStore_Invalidate(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectIncr(cachekey.Generation).SetVal(8)

	assert.NoError(t, New(rdb, nil).Invalidate(context.Background()))
	assert.NoError(t, New(nil, nil).Invalidate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
