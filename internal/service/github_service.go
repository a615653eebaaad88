package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/YoussefTakali/esprithub/internal/events"
	"github.com/YoussefTakali/esprithub/internal/github"
	"github.com/YoussefTakali/esprithub/internal/repository"
	apperrors "github.com/YoussefTakali/esprithub/pkg/util/errorutil"
)

// GithubVerifier resolves a personal access token to the profile behind it.
type GithubVerifier interface {
	FetchAuthenticatedUser(ctx context.Context, accessToken string) (*github.UserInfo, error)
}

// GithubService links GitHub identities to platform accounts.
type GithubService struct {
	users      repository.UserRepository
	verifier   GithubVerifier
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewGithubService builds the service.
func NewGithubService(users repository.UserRepository, verifier GithubVerifier, dispatcher events.Dispatcher, logger *zap.Logger) *GithubService {
	return &GithubService{users: users, verifier: verifier, dispatcher: dispatcher, logger: logger}
}

// ValidateToken reports whether GitHub accepts the token. It never returns
// an error; transport failures count as invalid.
func (s *GithubService) ValidateToken(ctx context.Context, accessToken string) bool {
	_, err := s.verifier.FetchAuthenticatedUser(ctx, accessToken)
	if err != nil && !errors.Is(err, github.ErrInvalidToken) {
		s.logger.Warn("github token validation failed", zap.Error(err))
	}
	return err == nil
}

// GetUserInfo fetches the GitHub profile behind the token.
func (s *GithubService) GetUserInfo(ctx context.Context, accessToken string) (*github.UserInfo, error) {
	info, err := s.verifier.FetchAuthenticatedUser(ctx, accessToken)
	if err != nil {
		if errors.Is(err, github.ErrInvalidToken) {
			return nil, apperrors.NewInvalidGithubToken()
		}
		return nil, apperrors.NewExternalServiceError("github", err)
	}
	return info, nil
}

// Link validates the token against GitHub and persists {token, username}
// on the user record. A rejected token never mutates the record.
func (s *GithubService) Link(ctx context.Context, userEmail, accessToken string) error {
	info, err := s.verifier.FetchAuthenticatedUser(ctx, accessToken)
	if err != nil {
		if errors.Is(err, github.ErrInvalidToken) {
			return apperrors.NewInvalidGithubToken()
		}
		return apperrors.NewExternalServiceError("github", err)
	}

	user, err := s.users.GetByEmail(ctx, userEmail)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUserNotFound()
		}
		return apperrors.NewInternalError(err)
	}

	token := accessToken
	login := info.Login
	user.GithubToken = &token
	user.GithubUsername = &login
	if err := s.users.Update(ctx, user); err != nil {
		return apperrors.NewInternalError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventGithubLinked,
			UserID:    user.ID,
			Email:     user.Email,
			Timestamp: time.Now(),
			Payload:   events.GithubLinkedPayload{GithubUsername: login},
		})
	}

	s.logger.Info("github account linked",
		zap.String("email", user.Email),
		zap.String("github_username", login))
	return nil
}
