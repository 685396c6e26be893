package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const devSecret = "dev-secret"

var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity carried by a bearer token.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Verifier signs and verifies HS256 tokens.
type Verifier struct {
	secret []byte
	ttl    time.Duration
}

// NewVerifier builds a Verifier. An empty secret falls back to a fixed
// development secret; production config refuses to start without one.
func NewVerifier(secret string, ttl time.Duration) *Verifier {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		secret = devSecret
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Verifier{secret: []byte(secret), ttl: ttl}
}

// Sign issues a token for the subject.
func (v *Verifier) Sign(subject, email string) (string, error) {
	if strings.TrimSpace(subject) == "" {
		return "", errors.New("sub is required")
	}
	now := time.Now().UTC()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(v.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry and returns the claims.
func (v *Verifier) Verify(token string) (Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
