// Package jwtkey issues and verifies HS256 access tokens signed with a
// rotating set of keys. Tokens carry the signing key id in their kid header.
package jwtkey

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/zlovtnik/rclabsAPI-sub003/internal/config"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/types/errorx"
)

const (
	component = "jwt"

	// MinSecretLen is the shortest accepted HMAC secret in bytes.
	MinSecretLen = 32
)

// Claims are the claims carried by issued tokens.
type Claims struct {
	jwt.RegisteredClaims
}

type Manager struct {
	mu     sync.RWMutex
	issuer string
	ttl    time.Duration
	active string
	keys   map[string][]byte

	now func() time.Time
}

// New builds a manager from conf. The active key must be one of conf.Keys.
func New(conf config.JWTConf) (*Manager, error) {
	m := &Manager{
		issuer: conf.Issuer,
		ttl:    conf.TTL,
		keys:   make(map[string][]byte, len(conf.Keys)),
		now:    time.Now,
	}
	if m.ttl <= 0 {
		m.ttl = time.Hour
	}

	for kid, secret := range conf.Keys {
		if err := checkSecret(kid, []byte(secret)); err != nil {
			return nil, err
		}
		m.keys[kid] = []byte(secret)
	}
	if _, ok := m.keys[conf.ActiveKey]; !ok {
		return nil, errorx.CreateSystemError(errorx.CodeConfigurationError, component,
			fmt.Sprintf("active key %q is not configured", conf.ActiveKey))
	}
	m.active = conf.ActiveKey

	return m, nil
}

func checkSecret(kid string, secret []byte) error {
	if kid == "" {
		return errorx.CreateSystemError(errorx.CodeConfigurationError, component, "key id must not be empty")
	}
	if len(secret) < MinSecretLen {
		return errorx.CreateSystemError(errorx.CodeConfigurationError, component,
			fmt.Sprintf("secret for key %q is shorter than %d bytes", kid, MinSecretLen))
	}
	return nil
}

// ActiveKey returns the id of the key new tokens are signed with.
func (m *Manager) ActiveKey() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// Rotate adds secret under kid and makes it the signing key. Previous keys
// stay valid for verification until retired.
func (m *Manager) Rotate(kid string, secret []byte) error {
	if err := checkSecret(kid, secret); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[kid] = append([]byte(nil), secret...)
	m.active = kid
	return nil
}

// Retire removes kid. The active key cannot be retired.
func (m *Manager) Retire(kid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if kid == m.active {
		return errorx.CreateSystemError(errorx.CodeConfigurationError, component, "cannot retire the active key")
	}
	delete(m.keys, kid)
	return nil
}

// Issue signs a token for subject with the active key.
func (m *Manager) Issue(_ context.Context, subject string) (string, time.Time, error) {
	m.mu.RLock()
	kid, secret := m.active, m.keys[m.active]
	m.mu.RUnlock()

	now := m.now().UTC()
	expires := now.Add(m.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t.Header["kid"] = kid

	signed, err := t.SignedString(secret)
	if err != nil {
		return "", time.Time{}, errorx.NewSystemError(errorx.CodeInternalError, "sign token failed", component, nil).WithCause(err)
	}
	return signed, expires, nil
}

// Parse verifies raw and returns its claims. Expired tokens yield
// TOKEN_EXPIRED, anything else that fails verification INVALID_TOKEN.
func (m *Manager) Parse(_ context.Context, raw string) (*Claims, error) {
	if raw == "" {
		return nil, errorx.New(errorx.CodeUnauthorized, "missing bearer token")
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, m.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	switch {
	case err == nil:
		return &claims, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, errorx.NewWithCause(errorx.CodeTokenExpired, "token has expired", err)
	default:
		return nil, errorx.NewWithCause(errorx.CodeInvalidToken, "token is invalid", err)
	}
}

func (m *Manager) keyFunc(t *jwt.Token) (any, error) {
	kid, _ := t.Header["kid"].(string)

	m.mu.RLock()
	defer m.mu.RUnlock()
	secret, ok := m.keys[kid]
	if !ok {
		return nil, fmt.Errorf("unknown key id %q", kid)
	}
	return secret, nil
}

// GenerateSecret returns n random bytes, base64url encoded, for use as a key.
func GenerateSecret(n int) (string, error) {
	if n < MinSecretLen {
		n = MinSecretLen
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", errorx.NewSystemError(errorx.CodeInternalError, "generate secret failed", component, nil).WithCause(err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
