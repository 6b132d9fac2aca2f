package middleware

import (
	"net/http"
	"regexp"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/zlovtnik/rclabsAPI-sub003/internal/mapper"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/types/response"
)

// incoming ids are echoed into headers and logs, so only a safe shape is kept
var correlationIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,128}$`)

// CorrelationMiddleware makes every request carry a correlation id: the
// caller's X-Correlation-ID when well formed, a fresh one otherwise.
type CorrelationMiddleware struct{}

func NewCorrelationMiddleware() *CorrelationMiddleware {
	return &CorrelationMiddleware{}
}

func (m *CorrelationMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(response.HeaderCorrelationID)
		if !correlationIDPattern.MatchString(id) {
			id = mapper.GenerateCorrelationID()
		}

		ctx := mapper.WithCorrelationID(r.Context(), id)
		ctx = logx.ContextWithFields(ctx, logx.Field("correlation_id", id))

		w.Header().Set(response.HeaderCorrelationID, id)
		next(w, r.WithContext(ctx))
	}
}
