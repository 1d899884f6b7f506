package test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Stewz00/rpmwiki-auth/internal/apperrors"
	"github.com/Stewz00/rpmwiki-auth/internal/interfaces"
	"github.com/Stewz00/rpmwiki-auth/internal/model"
	"github.com/Stewz00/rpmwiki-auth/internal/repository"
	"github.com/google/uuid"
)

// MockUserRepository implements interfaces.UserRepository in memory.
type MockUserRepository struct {
	mu          sync.Mutex
	users       map[uuid.UUID]*model.User
	schemaCalls int
	createCalls int

	// SchemaErr and CreateErr, when set, are returned by the matching method.
	SchemaErr error
	CreateErr error
}

// Verify that MockUserRepository implements UserRepository interface
var _ interfaces.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[uuid.UUID]*model.User),
	}
}

// EnsureSchema mocks schema initialization
func (r *MockUserRepository) EnsureSchema(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemaCalls++
	return r.SchemaErr
}

// CreateUser mocks creating a new user
func (r *MockUserRepository) CreateUser(ctx context.Context, userName, email, storedSecret string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++

	if r.CreateErr != nil {
		return nil, r.CreateErr
	}
	if userName == "" || email == "" || storedSecret == "" {
		return nil, fmt.Errorf("mock create user: %w", apperrors.ErrValidation)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("mock create user: %w: %w", apperrors.ErrStorage, err)
	}

	user := &model.User{
		ID:           repository.NewUserID(),
		UserName:     userName,
		Email:        email,
		StoredSecret: storedSecret,
		CreatedAt:    time.Now(),
	}
	r.users[user.ID] = user
	return user, nil
}

// Users returns a snapshot of the stored records.
func (r *MockUserRepository) Users() []*model.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out
}

// CreateCalls returns how many times CreateUser was invoked.
func (r *MockUserRepository) CreateCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.createCalls
}

// SchemaCalls returns how many times EnsureSchema was invoked.
func (r *MockUserRepository) SchemaCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.schemaCalls
}
