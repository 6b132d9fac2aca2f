package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/zlovtnik/rclabsAPI-sub003/internal/mapper"
)

// RecoverMiddleware turns a panicking handler into the generic unknown
// error response.
type RecoverMiddleware struct {
	mapper *mapper.Mapper
}

func NewRecoverMiddleware(m *mapper.Mapper) *RecoverMiddleware {
	return &RecoverMiddleware{mapper: m}
}

func (m *RecoverMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				logx.WithContext(r.Context()).Errorw("handler panicked",
					logx.Field("panic", fmt.Sprint(p)),
					logx.Field("path", r.URL.Path),
					logx.Field("stack", string(debug.Stack())))
				m.mapper.MapUnknown(r.Context(), r.Method+" "+r.URL.Path).WriteTo(w)
			}
		}()

		next(w, r)
	}
}
