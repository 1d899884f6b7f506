package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Stewz00/rpmwiki-auth/internal/apperrors"
	"github.com/Stewz00/rpmwiki-auth/internal/interfaces"
	"github.com/Stewz00/rpmwiki-auth/internal/model"
	"github.com/sirupsen/logrus"
)

// DefaultTimeout bounds a registration when the caller sets no earlier deadline.
const DefaultTimeout = 5 * time.Second

type RegistrationService struct {
	userRepo    interfaces.UserRepository
	transformer interfaces.CredentialTransformer
	issuer      interfaces.TokenIssuer
	log         logrus.FieldLogger
	timeout     time.Duration
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(
	userRepo interfaces.UserRepository,
	transformer interfaces.CredentialTransformer,
	issuer interfaces.TokenIssuer,
	log logrus.FieldLogger,
	timeout time.Duration,
) *RegistrationService {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &RegistrationService{
		userRepo:    userRepo,
		transformer: transformer,
		issuer:      issuer,
		log:         log,
		timeout:     timeout,
	}
}

// Register creates an account and issues its first token.
func (s *RegistrationService) Register(ctx context.Context, userName, email, password string) (*model.Registration, error) {
	if userName == "" || email == "" || password == "" {
		return nil, fmt.Errorf("register: userName, email and password are required: %w", apperrors.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.userRepo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	storedSecret, err := s.transformer.Transform(userName, password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	user, err := s.userRepo.CreateUser(ctx, userName, email, storedSecret)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	// the generated id, not the email, identifies the subject
	token, err := s.issuer.Issue(user.UserName, user.ID.String())
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"user_id":   user.ID,
		"user_name": user.UserName,
	}).Info("user registered")

	return &model.Registration{
		Token: token,
		User:  user.Public(),
	}, nil
}
