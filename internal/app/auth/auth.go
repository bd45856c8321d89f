// Package auth implements the admin credential check and session tokens for
// the content-management surface.
//
// The admin credential is a single shared password supplied by configuration.
// The login endpoint exchanges it for a short-lived JWT; obscurity of the
// admin panel path is not a security boundary, the token check is.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidCredentials is returned when the submitted password does not
// match the configured one.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidToken is returned for missing, malformed or expired session
// tokens.
var ErrInvalidToken = errors.New("invalid or expired token")

// SessionTTL bounds how long an issued admin session stays valid.
const SessionTTL = 12 * time.Hour

// Claims carried by an admin session token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Manager issues and verifies admin session tokens. A manager with an empty
// password considers the admin surface disabled.
type Manager struct {
	password string
	secret   []byte
}

// NewManager builds a Manager. When secret is empty a random one is
// generated, which invalidates sessions across restarts but keeps local
// setups working without configuration.
func NewManager(password, secret string) *Manager {
	if secret == "" {
		secret = uuid.NewString()
	}
	return &Manager{password: password, secret: []byte(secret)}
}

// Enabled reports whether an admin password is configured.
func (m *Manager) Enabled() bool {
	return m.password != ""
}

// Login checks the password and returns a signed session token.
func (m *Manager) Login(password string) (string, error) {
	if !m.Enabled() {
		return "", fmt.Errorf("admin access is not configured")
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(m.password)) != 1 {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a session token, returning its claims.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
