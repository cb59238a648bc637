package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenExpiry is used when Issue is called without a ttl.
const DefaultTokenExpiry = 120 * time.Minute

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
)

// Manager issues and verifies HMAC-signed access tokens whose subject is the
// user's account.
type Manager struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret, algorithm string, ttl time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	if algorithm == "" {
		algorithm = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm: %q", algorithm)
	}
	if ttl <= 0 {
		ttl = DefaultTokenExpiry
	}

	return &Manager{
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// TTL is the configured lifetime of issued tokens.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a token for subject valid for ttl; a non-positive ttl means
// DefaultTokenExpiry.
func (m *Manager) Issue(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", ErrInvalidToken
	}
	if ttl <= 0 {
		ttl = DefaultTokenExpiry
	}

	now := m.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(m.method, claims)
	return token.SignedString(m.secret)
}

// Verify checks signature, algorithm and expiry and returns the subject.
// Every failure is reported as ErrInvalidToken.
func (m *Manager) Verify(tokenString string) (string, error) {
	if strings.TrimSpace(tokenString) == "" {
		return "", ErrInvalidToken
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{m.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" || claims.ExpiresAt == nil {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// TokenFromHeader extracts the token from an "Authorization: Bearer <token>"
// header value.
func TokenFromHeader(authHeader string) (string, error) {
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrMissingToken
	}
	return parts[1], nil
}
