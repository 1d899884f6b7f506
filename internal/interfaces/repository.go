package interfaces

import (
	"context"

	"github.com/Stewz00/rpmwiki-auth/internal/model"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	// EnsureSchema prepares the backing store. It is idempotent.
	EnsureSchema(ctx context.Context) error
	CreateUser(ctx context.Context, userName, email, storedSecret string) (*model.User, error)
}

// SchemaInitializer brings the database schema up to date.
type SchemaInitializer interface {
	Up(ctx context.Context) error
}

// CredentialTransformer derives the stored form of a password.
type CredentialTransformer interface {
	Transform(identifier, secret string) (string, error)
}

// TokenIssuer signs identity tokens.
type TokenIssuer interface {
	Issue(userName, identityRef string) (string, error)
}
