// Package cache keeps encoded maze documents of seeded builds in Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-mazegen/preset"
	"github.com/beka-birhanu/vinom-mazegen/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "mazegen:maze"
	lockSuffix = ":build_lock"
	lockExpiry = 10 * time.Second
)

var _ i.MazeCache = &RedisMazeCache{}

// Key returns the cache key of a seeded build. The preset parameters are part
// of the key so a redefined difficulty never serves documents of the old one.
func Key(cfg preset.Config, seed int64) string {
	cfg = cfg.WithDefaults()
	return fmt.Sprintf("%s:%s:%dx%d:%g:%g:%g:%d", keyPrefix,
		cfg.Name, cfg.Width, cfg.Height, cfg.ExtraOpenRatio, cfg.TrapDensity, cfg.CellSize, seed)
}

// RedisMazeCache stores payloads with a TTL and guards builds with a redsync mutex.
type RedisMazeCache struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

// NewRedisMazeCache initializes a RedisMazeCache with the provided Redis client and TTL.
func NewRedisMazeCache(client *redis.Client, ttlSeconds int) *RedisMazeCache {
	pool := goredis.NewPool(client)
	return &RedisMazeCache{
		client: client,
		locker: redsync.New(pool),
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
}

// Get returns the cached payload for key. A miss is not an error.
func (c *RedisMazeCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

// Set stores payload under key with the cache TTL.
func (c *RedisMazeCache) Set(ctx context.Context, key string, payload []byte) error {
	return c.client.Set(ctx, key, payload, c.ttl).Err()
}

// Lock acquires the build lock for key. The returned func releases it.
func (c *RedisMazeCache) Lock(ctx context.Context, key string) (func(), error) {
	mutex := c.locker.NewMutex(key+lockSuffix, redsync.WithExpiry(lockExpiry))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}
	return func() {
		_, _ = mutex.Unlock()
	}, nil
}
