package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/YoussefTakali/esprithub/internal/auth"
	"github.com/YoussefTakali/esprithub/internal/config"
	"github.com/YoussefTakali/esprithub/internal/domain"
	"github.com/YoussefTakali/esprithub/internal/events"
	"github.com/YoussefTakali/esprithub/internal/repository"
	apperrors "github.com/YoussefTakali/esprithub/pkg/util/errorutil"
)

// CreateUserInput carries fields for account creation.
type CreateUserInput struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
	Role      domain.UserRole
}

// UpdateUserInput carries optional fields for partial updates.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Role      *domain.UserRole
	Enabled   *bool
}

// UserService manages account records on behalf of administrators and the
// authentication core.
type UserService struct {
	users         repository.UserRepository
	bcryptCost    int
	allowedDomain string
	dispatcher    events.Dispatcher
	logger        *zap.Logger
}

// NewUserService constructs the service.
func NewUserService(cfg config.Config, users repository.UserRepository, dispatcher events.Dispatcher, logger *zap.Logger) *UserService {
	return &UserService{
		users:         users,
		bcryptCost:    cfg.Auth.BcryptCost,
		allowedDomain: cfg.Auth.AllowedEmailDomain,
		dispatcher:    dispatcher,
		logger:        logger,
	}
}

// List returns a page of users matching the filters plus the total count.
func (s *UserService) List(ctx context.Context, filters repository.UserListFilters) ([]domain.User, int64, error) {
	return s.users.List(ctx, filters)
}

// GetByID fetches a single user.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUserNotFound()
		}
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}

// GetByEmail fetches a single user by email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUserNotFound()
		}
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}

// Create registers a new account. The organizational domain suffix is
// enforced here and at login, never at token verification.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if !strings.HasSuffix(input.Email, s.allowedDomain) {
		return nil, apperrors.NewInvalidDomain(s.allowedDomain)
	}
	if !input.Role.Valid() {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": input.Role})
	}

	exists, err := s.users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if exists {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": input.Email})
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: hash,
		Role:         input.Role,
		Enabled:      true,
		// Organizational addresses are trusted without a verification mail.
		EmailVerified: true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventUserCreated,
		UserID:    user.ID,
		Email:     user.Email,
		Timestamp: time.Now(),
		Payload:   events.UserCreatedPayload{Role: user.Role},
	})

	s.logger.Info("user created", zap.String("email", user.Email), zap.String("role", string(user.Role)))
	return user, nil
}

// Update applies a partial update to a user record.
func (s *UserService) Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": *input.Role})
		}
		user.Role = *input.Role
	}
	if input.Enabled != nil {
		user.Enabled = *input.Enabled
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventUserUpdated,
		UserID:    user.ID,
		Email:     user.Email,
		Timestamp: time.Now(),
	})

	return user, nil
}

// Delete removes a user record.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUserNotFound()
		}
		return apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventUserDeleted,
		UserID:    id,
		Timestamp: time.Now(),
	})

	s.logger.Info("user deleted", zap.String("id", id))
	return nil
}

// HasGithubToken reports whether the account has a linked GitHub identity.
func (s *UserService) HasGithubToken(ctx context.Context, email string) (bool, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, apperrors.NewInternalError(err)
	}
	return user.HasGithubToken(), nil
}

func (s *UserService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
