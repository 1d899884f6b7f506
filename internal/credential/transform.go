// Package credential turns an account identifier and a plaintext password
// into the one-way secret representation that gets persisted.
package credential

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"github.com/Stewz00/rpmwiki-auth/internal/apperrors"
	"golang.org/x/crypto/argon2"
)

const (
	saltLen    = 16
	saltDomain = "rpmwiki-auth/credential/v1:"
)

// Params are the argon2id cost parameters.
type Params struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
}

// DefaultParams are the OWASP-recommended argon2id parameters.
var DefaultParams = Params{
	Time:    1,
	Memory:  64 * 1024,
	Threads: 4,
	KeyLen:  32,
}

// Transformer derives stored secrets with argon2id.
type Transformer struct {
	params Params
}

// NewTransformer creates a Transformer with the given cost parameters.
func NewTransformer(p Params) *Transformer {
	return &Transformer{params: p}
}

// Transform derives the stored secret for identifier and secret.
//
// The salt is derived from the identifier, so the result is deterministic
// for the same pair and differs between identifiers sharing a password.
func (t *Transformer) Transform(identifier, secret string) (string, error) {
	if identifier == "" || secret == "" {
		return "", fmt.Errorf("transform credential: identifier and secret are required: %w", apperrors.ErrInvalidInput)
	}

	salt := deriveSalt(identifier)
	key := t.derive(secret, salt)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		t.params.Memory,
		t.params.Time,
		t.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Matches reports whether secret, combined with identifier, produces stored.
func (t *Transformer) Matches(identifier, secret, stored string) bool {
	computed, err := t.Transform(identifier, secret)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(stored)) == 1
}

func (t *Transformer) derive(secret string, salt []byte) []byte {
	pw := []byte(secret)
	defer clear(pw)
	return argon2.IDKey(pw, salt, t.params.Time, t.params.Memory, t.params.Threads, t.params.KeyLen)
}

func deriveSalt(identifier string) []byte {
	sum := sha256.Sum256([]byte(saltDomain + identifier))
	return sum[:saltLen]
}
