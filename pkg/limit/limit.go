//go:generate mockgen -source=$GOFILE -destination=./mock/limit_mock.go -package=limit
package limit

import (
	"context"
	"time"

	zlimit "github.com/zeromicro/go-zero/core/limit"
	"github.com/zeromicro/go-zero/core/stores/redis"
)

type Limit interface {
	Allow() bool
	AllowCtx(ctx context.Context) bool
	AllowN(now time.Time, n int) bool
	AllowNCtx(ctx context.Context, now time.Time, n int) bool
}

// NewTokenLimit returns a token bucket shared through store under key.
// rate tokens are added per second up to burst. While store is
// unreachable the bucket falls back to an in-process limiter.
func NewTokenLimit(rate, burst int, store *redis.Redis, key string) Limit {
	return zlimit.NewTokenLimiter(rate, burst, store, key)
}
