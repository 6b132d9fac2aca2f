package cachex

import (
	"context"
	"time"

	"github.com/zeromicro/go-zero/core/stores/redis"

	"github.com/zlovtnik/rclabsAPI-sub003/internal/types/errorx"
)

// NewRedisJobCache stores jobs under prefix in rdb, shared by every instance.
func NewRedisJobCache(rdb *redis.Redis, prefix string) JobCache {
	return &redisJobCache{
		rdb:    rdb,
		prefix: prefix,
	}
}

type redisJobCache struct {
	rdb    *redis.Redis
	prefix string
}

func (c *redisJobCache) key(k string) string {
	return c.prefix + ":" + k
}

func (c *redisJobCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.rdb.GetCtx(ctx, c.key(key))
	if err != nil {
		return "", false, redisError("failed to get job from redis", err)
	}
	if val == "" {
		return "", false, nil
	}
	return val, true, nil
}

func (c *redisJobCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	var err error
	if seconds := int(ttl / time.Second); seconds > 0 {
		err = c.rdb.SetexCtx(ctx, c.key(key), value, seconds)
	} else {
		err = c.rdb.SetCtx(ctx, c.key(key), value)
	}
	if err != nil {
		return redisError("failed to store job in redis", err)
	}
	return nil
}

func (c *redisJobCache) Del(ctx context.Context, key string) error {
	if _, err := c.rdb.DelCtx(ctx, c.key(key)); err != nil {
		return redisError("failed to delete job from redis", err)
	}
	return nil
}

func (c *redisJobCache) IsOK(ctx context.Context) bool {
	return c.rdb.PingCtx(ctx)
}

func redisError(msg string, err error) error {
	return errorx.NewSystemError(errorx.CodeDatabaseError, msg, "redis", nil).WithCause(err)
}
