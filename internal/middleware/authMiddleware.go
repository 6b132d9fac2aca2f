package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/zlovtnik/rclabsAPI-sub003/internal/mapper"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/security/jwtkey"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/types/errorx"
)

const bearerPrefix = "Bearer "

type TokenParser interface {
	Parse(ctx context.Context, raw string) (*jwtkey.Claims, error)
}

// AuthMiddleware requires a valid bearer token and stores its subject
// under errorx.UserIDKey.
type AuthMiddleware struct {
	tokens TokenParser
	mapper *mapper.Mapper
}

func NewAuthMiddleware(tokens TokenParser, m *mapper.Mapper) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, mapper: m}
}

func (m *AuthMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			m.mapper.WriteError(w, r, errorx.New(errorx.CodeUnauthorized, "bearer token required"), "authenticate")
			return
		}

		claims, err := m.tokens.Parse(r.Context(), strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)))
		if err != nil {
			m.mapper.WriteError(w, r, err, "authenticate")
			return
		}

		ctx := context.WithValue(r.Context(), errorx.UserIDKey, claims.Subject)
		next(w, r.WithContext(ctx))
	}
}
