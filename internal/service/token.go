package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const defaultTokenTTL = 24 * time.Hour

// TokenManager issues and validates HS256 session tokens. The signing
// secret is process-wide state, loaded once at startup and never rotated
// within a process lifetime. Tokens are stateless: there is no
// revocation channel, so a stolen token stays usable until its embedded
// expiry elapses. The fixed TTL is the accepted mitigation.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time // injectable for tests
}

// NewTokenManager creates a TokenManager. The secret must be non-empty;
// a non-positive ttl falls back to 24 hours.
func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret key cannot be empty")
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue produces a signed token asserting that subject (the user's
// email) was authenticated now, valid until now + ttl.
func (m *TokenManager) Issue(subject string) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("token subject cannot be empty")
	}
	issuedAt := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(m.ttl)),
	})
	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Validate verifies signature integrity and expiry and returns the
// embedded subject. A token is valid strictly before its expiry and
// invalid at the expiry instant or later. Callers get ErrTokenExpired
// or ErrTokenInvalid; both mean the request is unauthenticated, the
// split exists only so logs can name the reason.
//
// Expiry is checked against the manager's own clock, not the jwt
// package global, so issue and validate share one notion of time.
func (m *TokenManager) Validate(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	token, err := parser.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrTokenInvalid
	}
	if claims.ExpiresAt == nil || claims.Subject == "" {
		return "", ErrTokenInvalid
	}
	if !claims.VerifyExpiresAt(m.now(), true) {
		return "", ErrTokenExpired
	}
	return claims.Subject, nil
}
