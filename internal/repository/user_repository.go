package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Stewz00/rpmwiki-auth/internal/apperrors"
	"github.com/Stewz00/rpmwiki-auth/internal/interfaces"
	"github.com/Stewz00/rpmwiki-auth/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

// Common errors that can be returned by the repository
var (
	ErrSchemaNotReady = fmt.Errorf("schema not initialized: %w", apperrors.ErrStorage)
	ErrConstraint     = fmt.Errorf("constraint violation: %w", apperrors.ErrStorage)
)

// Querier is the subset of pgxpool.Pool the repository needs.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// UserRepositoryImpl implements the UserRepository interface
type UserRepositoryImpl struct {
	db     Querier
	schema interfaces.SchemaInitializer

	mu    sync.Mutex
	ready bool
}

// Verify that UserRepositoryImpl implements UserRepository interface
var _ interfaces.UserRepository = (*UserRepositoryImpl)(nil)

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db Querier, schema interfaces.SchemaInitializer) *UserRepositoryImpl {
	return &UserRepositoryImpl{db: db, schema: schema}
}

// NewUserID returns a random (version 4) user identifier.
func NewUserID() uuid.UUID {
	return uuid.New()
}

// EnsureSchema runs the schema initializer until it first succeeds.
func (r *UserRepositoryImpl) EnsureSchema(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ready {
		return nil
	}
	if err := r.schema.Up(ctx); err != nil {
		return fmt.Errorf("initialize schema: %w: %w", apperrors.ErrStorage, err)
	}
	r.ready = true
	return nil
}

func (r *UserRepositoryImpl) isReady() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ready
}

// CreateUser creates a new user in the database
func (r *UserRepositoryImpl) CreateUser(ctx context.Context, userName, email, storedSecret string) (*model.User, error) {
	if userName == "" || email == "" || storedSecret == "" {
		return nil, fmt.Errorf("create user: userName, email and stored secret are required: %w", apperrors.ErrValidation)
	}
	if !r.isReady() {
		return nil, ErrSchemaNotReady
	}

	user := model.User{
		ID:           NewUserID(),
		UserName:     userName,
		Email:        email,
		StoredSecret: storedSecret,
	}

	err := r.db.QueryRow(ctx,
		`INSERT INTO auth.users (id, user_name, email, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		user.ID.String(), userName, email, storedSecret).Scan(&user.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && (pgErr.Code == "23505" || pgErr.Code == "23514" || pgErr.Code == "23502") {
			return nil, fmt.Errorf("create user: %w: %s", ErrConstraint, pgErr.ConstraintName)
		}
		return nil, fmt.Errorf("create user: %w: %w", apperrors.ErrStorage, err)
	}

	return &user, nil
}
