package jwtkey

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zlovtnik/rclabsAPI-sub003/internal/config"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/types/errorx"
)

var (
	secretA = strings.Repeat("a", MinSecretLen)
	secretB = strings.Repeat("b", MinSecretLen)
)

func newManager(t *testing.T) *Manager {
	t.Helper()
	m, err := New(config.JWTConf{
		Issuer:    "etlgateway",
		TTL:       time.Hour,
		ActiveKey: "k1",
		Keys:      map[string]string{"k1": secretA},
	})
	require.NoError(t, err)
	return m
}

func TestNewValidatesConfig(t *testing.T) {
	tests := []struct {
		name string
		conf config.JWTConf
	}{
		{"missing active key", config.JWTConf{ActiveKey: "k2", Keys: map[string]string{"k1": secretA}}},
		{"short secret", config.JWTConf{ActiveKey: "k1", Keys: map[string]string{"k1": "short"}}},
		{"no keys", config.JWTConf{ActiveKey: "k1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.conf)
			require.Error(t, err)
			assert.True(t, errorx.Is(err, errorx.CodeConfigurationError))
			assert.True(t, errorx.IsSystemError(err))
		})
	}
}

func TestIssueAndParse(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	raw, expires, err := m.Issue(ctx, "client-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	claims, err := m.Parse(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, "client-1", claims.Subject)
	assert.Equal(t, "etlgateway", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestParseFailures(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	_, err := m.Parse(ctx, "")
	assert.True(t, errorx.Is(err, errorx.CodeUnauthorized))

	_, err = m.Parse(ctx, "not.a.token")
	assert.True(t, errorx.Is(err, errorx.CodeInvalidToken))

	// signed with an unknown key
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "etlgateway",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	foreign.Header["kid"] = "k1"
	raw, err := foreign.SignedString([]byte(secretB))
	require.NoError(t, err)
	_, err = m.Parse(ctx, raw)
	assert.True(t, errorx.Is(err, errorx.CodeInvalidToken))

	// alg none is never accepted
	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Issuer: "etlgateway"})
	raw, err = none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.Parse(ctx, raw)
	assert.True(t, errorx.Is(err, errorx.CodeInvalidToken))
}

func TestParseExpired(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	raw, _, err := m.Issue(ctx, "client-1")
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = m.Parse(ctx, raw)
	assert.True(t, errorx.Is(err, errorx.CodeTokenExpired))
}

func TestRotateKeepsOldKeysVerifiable(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	old, _, err := m.Issue(ctx, "client-1")
	require.NoError(t, err)

	require.NoError(t, m.Rotate("k2", []byte(secretB)))
	assert.Equal(t, "k2", m.ActiveKey())

	fresh, _, err := m.Issue(ctx, "client-1")
	require.NoError(t, err)

	_, err = m.Parse(ctx, old)
	assert.NoError(t, err)
	_, err = m.Parse(ctx, fresh)
	assert.NoError(t, err)

	assert.Error(t, m.Retire("k2"))
	require.NoError(t, m.Retire("k1"))
	_, err = m.Parse(ctx, old)
	assert.True(t, errorx.Is(err, errorx.CodeInvalidToken))

	assert.Error(t, m.Rotate("k3", []byte("short")))
}

func TestGenerateSecret(t *testing.T) {
	a, err := GenerateSecret(0)
	require.NoError(t, err)
	b, err := GenerateSecret(64)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(a), MinSecretLen)
	assert.Greater(t, len(b), len(a))
	assert.NotEqual(t, a, b)
}
