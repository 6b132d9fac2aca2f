package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zlovtnik/rclabsAPI-sub003/internal/config"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/mapper"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/security/jwtkey"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/types/errorx"
)

func TestCorrelationMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"generates when absent", "", false},
		{"keeps well formed id", "abc-123.x_y", true},
		{"replaces header injection", "bad\r\nSet-Cookie: x", false},
		{"replaces oversized id", strings.Repeat("a", 200), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			next := func(w http.ResponseWriter, r *http.Request) {
				seen = mapper.CurrentCorrelationID(r.Context())
			}

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set("X-Correlation-ID", tt.incoming)
			}
			rr := httptest.NewRecorder()

			NewCorrelationMiddleware().Handle(next)(rr, req)

			require.NotEmpty(t, seen)
			assert.Equal(t, seen, rr.Header().Get("X-Correlation-ID"))
			if tt.keep {
				assert.Equal(t, tt.incoming, seen)
			} else {
				assert.NotEqual(t, tt.incoming, seen)
			}
		})
	}
}

func TestRecoverMiddleware(t *testing.T) {
	next := func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", nil)
	req = req.WithContext(mapper.WithCorrelationID(req.Context(), "corr-panic"))
	rr := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		NewRecoverMiddleware(newMapper()).Handle(next)(rr, req)
	})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "An unknown error occurred")
	assert.Contains(t, rr.Body.String(), "corr-panic")
}

func newTokens(t *testing.T) *jwtkey.Manager {
	t.Helper()
	tokens, err := jwtkey.New(config.JWTConf{
		Issuer:    "etlgateway",
		TTL:       time.Hour,
		ActiveKey: "k1",
		Keys:      map[string]string{"k1": strings.Repeat("s", jwtkey.MinSecretLen)},
	})
	require.NoError(t, err)
	return tokens
}

func TestAuthMiddleware(t *testing.T) {
	tokens := newTokens(t)
	valid, _, err := tokens.Issue(context.Background(), "client-1")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{"no header", "", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized, "INVALID_TOKEN"},
		{"valid token", "Bearer " + valid, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var user any
			next := func(w http.ResponseWriter, r *http.Request) {
				user = r.Context().Value(errorx.UserIDKey)
				w.WriteHeader(http.StatusOK)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/1", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			NewAuthMiddleware(tokens, newMapper()).Handle(next)(rr, req)

			assert.Equal(t, tt.status, rr.Code)
			if tt.code != "" {
				assert.Contains(t, rr.Body.String(), `"code":"`+tt.code+`"`)
				assert.Nil(t, user)
			} else {
				assert.Equal(t, "client-1", user)
			}
		})
	}
}
