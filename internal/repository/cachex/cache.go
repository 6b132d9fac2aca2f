//go:generate mockgen -source=$GOFILE -destination=./mock/cache_mock.go -package=cachex

package cachex

import (
	"context"
	"time"
)

// JobCache stores serialized job records by key.
// Get reports a missing key as ("", false, nil).
type JobCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	IsOK(ctx context.Context) bool
}
