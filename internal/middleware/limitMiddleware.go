package middleware

import (
	"net/http"

	"github.com/zlovtnik/rclabsAPI-sub003/internal/mapper"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/types/errorx"
	"github.com/zlovtnik/rclabsAPI-sub003/pkg/limit"
)

type LimitMiddleware struct {
	limit  limit.Limit
	mapper *mapper.Mapper
}

func NewLimitMiddleware(limit limit.Limit, m *mapper.Mapper) *LimitMiddleware {
	return &LimitMiddleware{limit: limit, mapper: m}
}

func (m *LimitMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.limit.AllowCtx(r.Context()) {
			ex := errorx.NewBusinessError(errorx.CodeRateLimitExceeded, "requests are too frequent", "rate limit", map[string]string{
				"path": r.URL.Path,
			}).WithContext(r.Context())
			m.mapper.WriteError(w, r, ex, "rate limit")
			return
		}

		next(w, r)
	}
}
