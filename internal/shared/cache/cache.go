package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"go-employee/internal/shared/cachekey"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Store is a read-through cache over Redis whose entries are scoped by a
// generation counter. Invalidate bumps the counter, so a value loaded before
// a write can only land under a generation no reader asks for anymore.
type Store struct {
	rdb    *redis.Client
	sf     singleflight.Group
	logger *zap.Logger
}

// New returns a Store. With a nil rdb every Load goes to the loader.
func New(rdb *redis.Client, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.L()
	}
	return &Store{rdb: rdb, logger: logger.Named("cache")}
}

// Invalidate makes every value cached so far unreachable.
func (s *Store) Invalidate(ctx context.Context) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Incr(ctx, cachekey.Generation).Err()
}

// Load decodes the cached value of key into dst, or runs load once across
// concurrent callers and caches its result for ttl. load receives a context
// that is not cancelled with the caller's, since other callers may be
// waiting on the same result.
func (s *Store) Load(
	ctx context.Context,
	key string,
	ttl time.Duration,
	dst any,
	load func(ctx context.Context) (any, error),
) error {
	fullKey, cacheable := s.versionedKey(ctx, key)

	if cacheable {
		raw, err := s.rdb.Get(ctx, fullKey).Bytes()
		switch {
		case err == nil:
			if json.Unmarshal(raw, dst) == nil {
				return nil
			}
			s.logger.Warn("discarding unreadable cache entry", zap.String("key", fullKey))
		case !errors.Is(err, redis.Nil):
			s.logger.Warn("cache read failed", zap.String("key", fullKey), zap.Error(err))
		}
	}

	v, err, _ := s.sf.Do(fullKey, func() (interface{}, error) {
		loadCtx := context.WithoutCancel(ctx)

		val, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		if cacheable {
			if err := s.rdb.Set(loadCtx, fullKey, data, ttl).Err(); err != nil {
				s.logger.Warn("cache write failed", zap.String("key", fullKey), zap.Error(err))
			}
		}
		return data, nil
	})
	if err != nil {
		return err
	}

	return json.Unmarshal(v.([]byte), dst)
}

// versionedKey appends the current generation to key. It reports false when
// Redis is absent or the generation cannot be read.
func (s *Store) versionedKey(ctx context.Context, key string) (string, bool) {
	if s.rdb == nil {
		return key, false
	}

	gen, err := s.rdb.Get(ctx, cachekey.Generation).Int64()
	switch {
	case errors.Is(err, redis.Nil):
		gen = 0
	case err != nil:
		s.logger.Warn("cache generation read failed", zap.Error(err))
		return key, false
	}
	return key + ":" + strconv.FormatInt(gen, 10), true
}
