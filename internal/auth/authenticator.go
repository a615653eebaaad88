package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/YoussefTakali/esprithub/internal/domain"
	"github.com/YoussefTakali/esprithub/internal/repository"
	apperrors "github.com/YoussefTakali/esprithub/pkg/util/errorutil"
)

// Authenticator verifies email/password pairs against the user store.
type Authenticator struct {
	users         repository.UserRepository
	allowedDomain string
	logger        *zap.Logger
}

// NewAuthenticator constructs the authenticator.
func NewAuthenticator(users repository.UserRepository, allowedDomain string, logger *zap.Logger) *Authenticator {
	return &Authenticator{users: users, allowedDomain: allowedDomain, logger: logger}
}

// Authenticate resolves the credentials to a verified principal. Unknown
// accounts, disabled accounts and wrong passwords all collapse to the same
// invalid-credentials failure. The raw password is never logged.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (*domain.Principal, error) {
	if !strings.HasSuffix(email, a.allowedDomain) {
		return nil, apperrors.NewInvalidDomain(a.allowedDomain)
	}

	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewInvalidCredentials()
		}
		return nil, apperrors.NewInternalError(err)
	}
	if !user.Enabled {
		return nil, apperrors.NewInvalidCredentials()
	}
	if err := ComparePassword(user.PasswordHash, password); err != nil {
		a.logger.Warn("authentication failed", zap.String("email", email))
		return nil, apperrors.NewInvalidCredentials()
	}

	return &domain.Principal{
		UserID:  user.ID,
		Email:   user.Email,
		Role:    user.Role,
		Enabled: user.Enabled,
	}, nil
}
