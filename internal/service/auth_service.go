package service

import (
	"context"
	"errors"
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

// bearerTokenType is the token type reported to clients.
const bearerTokenType = "Bearer"

// AuthResult is the outcome of a successful login or refresh.
type AuthResult struct {
	Tokens             domain.TokenPair
	TokenType          string
	User               *domain.User
	RequiresGithubAuth bool
}

// AuthService orchestrates the token lifecycle: login issues a token pair
// from verified credentials, refresh re-derives the principal from a valid
// refresh token and issues a new pair. No state is kept between calls.
type AuthService struct {
	users         repository.UserRepository
	authenticator *auth.Authenticator
	tokens        *auth.TokenManager
	accessTTL     time.Duration
	refreshTTL    time.Duration
	dispatcher    events.Dispatcher
	logger        *zap.Logger
}

// AuthDependencies encapsulates collaborator requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:         deps.UserRepo,
		authenticator: auth.NewAuthenticator(deps.UserRepo, cfg.Auth.AllowedEmailDomain, deps.Logger),
		tokens:        auth.NewTokenManager(cfg.Auth.JWTSecret),
		accessTTL:     cfg.Auth.AccessTokenTTL(),
		refreshTTL:    cfg.Auth.RefreshTokenTTL(),
		dispatcher:    deps.Dispatcher,
		logger:        deps.Logger,
	}
}

// Login authenticates the credentials and issues an access/refresh pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	principal, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, principal.Email)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	pair, err := s.issuePair(principal.UserID, principal.Email)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	result := &AuthResult{
		Tokens:             pair,
		TokenType:          bearerTokenType,
		User:               user,
		RequiresGithubAuth: !user.HasGithubToken(),
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventUserLoggedIn,
		UserID:    user.ID,
		Email:     user.Email,
		Timestamp: time.Now(),
		Payload: events.UserLoggedInPayload{
			Role:               user.Role,
			RequiresGithubAuth: result.RequiresGithubAuth,
		},
	})

	s.logger.Info("user authenticated", zap.String("email", user.Email))
	return result, nil
}

// Refresh verifies the refresh token, re-fetches the user so a disabled or
// deleted account cannot refresh past revocation, and issues a new pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		// Expiry, signature and structural failures are indistinguishable
		// to the caller.
		return nil, apperrors.NewInvalidRefreshToken()
	}

	user, err := s.users.GetByID(ctx, claims.Subject())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUserNotFound()
		}
		return nil, apperrors.NewInternalError(err)
	}
	if !user.Enabled {
		return nil, apperrors.NewInvalidRefreshToken()
	}

	pair, err := s.issuePair(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTokenRefreshed,
		UserID:    user.ID,
		Email:     user.Email,
		Timestamp: time.Now(),
	})

	return &AuthResult{
		Tokens:             pair,
		TokenType:          bearerTokenType,
		User:               user,
		RequiresGithubAuth: !user.HasGithubToken(),
	}, nil
}

// Logout is a stateless acknowledgment. Issued tokens remain valid until
// expiry; there is no server-side denylist.
func (s *AuthService) Logout(_ context.Context, _ string) error {
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func (s *AuthService) issuePair(userID, email string) (domain.TokenPair, error) {
	access, err := s.tokens.Issue(userID, email, s.accessTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := s.tokens.Issue(userID, email, s.refreshTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
