// Package token issues the signed session tokens handed out on registration.
package token

import (
	"fmt"
	"time"

	"github.com/Stewz00/rpmwiki-auth/internal/apperrors"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// ClockSkew is subtracted from the issue time to tolerate verifier clock drift.
	ClockSkew = 30 * time.Second
	// Lifetime is how long a token stays valid after its issue time.
	Lifetime = 30 * 24 * time.Hour
)

// Claims is the token payload.
type Claims struct {
	UserName string `json:"UserName"`
	UUID     string `json:"UUID"`
	jwt.RegisteredClaims
}

// Issuer signs tokens with a process-wide HS256 key.
type Issuer struct {
	key []byte
	now func() time.Time
}

// Option configures an Issuer.
type Option func(*Issuer)

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		i.now = now
	}
}

// NewIssuer creates an Issuer. An empty key is a configuration error.
func NewIssuer(key string, opts ...Option) (*Issuer, error) {
	if key == "" {
		return nil, fmt.Errorf("token signing key is not set: %w", apperrors.ErrConfiguration)
	}

	i := &Issuer{
		key: []byte(key),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// Issue returns a signed token asserting userName and identityRef.
func (i *Issuer) Issue(userName, identityRef string) (string, error) {
	if userName == "" || identityRef == "" {
		return "", fmt.Errorf("issue token: user name and identity reference are required: %w", apperrors.ErrInvalidInput)
	}

	issuedAt := i.now().Add(-ClockSkew)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserName: userName,
		UUID:     identityRef,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(Lifetime)),
		},
	})

	signed, err := token.SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
