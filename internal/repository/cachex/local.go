package cachex

import (
	"context"
	"time"

	"github.com/zeromicro/go-zero/core/collection"

	"github.com/zlovtnik/rclabsAPI-sub003/internal/types/errorx"
)

const (
	defaultCap    = 10000
	defaultExpire = 24 * time.Hour
	component     = "job cache"
)

// NewLocalJobCache returns an in-process cache holding at most capacity
// entries, each expiring after expire unless set with its own ttl.
func NewLocalJobCache(capacity int, expire time.Duration) (*LocalJobCache, error) {
	if capacity <= 0 {
		capacity = defaultCap
	}
	if expire <= 0 {
		expire = defaultExpire
	}

	c, err := collection.NewCache(expire, collection.WithLimit(capacity), collection.WithName("jobs"))
	if err != nil {
		return nil, errorx.NewSystemError(errorx.CodeConfigurationError, "create local job cache failed", component, nil).WithCause(err)
	}
	return &LocalJobCache{cache: c}, nil
}

type LocalJobCache struct {
	cache *collection.Cache
}

func (c *LocalJobCache) Get(ctx context.Context, key string) (string, bool, error) {
	if err := checkCtx(ctx); err != nil {
		return "", false, err
	}

	v, ok := c.cache.Get(key)
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	return s, ok, nil
}

func (c *LocalJobCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}

	if ttl > 0 {
		c.cache.SetWithExpire(key, value, ttl)
	} else {
		c.cache.Set(key, value)
	}
	return nil
}

func (c *LocalJobCache) Del(ctx context.Context, key string) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}

	c.cache.Del(key)
	return nil
}

func (c *LocalJobCache) IsOK(ctx context.Context) bool {
	return checkCtx(ctx) == nil
}

// checkCtx fails fast on a cancelled or expired context.
func checkCtx(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errorx.NewSystemError(errorx.CodeLockTimeout, "the operation timed out", component, nil).WithCause(err)
	}
	return nil
}
