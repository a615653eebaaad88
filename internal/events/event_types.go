package events

import (
	"time"

	"github.com/YoussefTakali/esprithub/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserLoggedIn   EventType = "user_logged_in"
	EventTokenRefreshed EventType = "token_refreshed"
	EventGithubLinked   EventType = "github_linked"
	EventUserCreated    EventType = "user_created"
	EventUserUpdated    EventType = "user_updated"
	EventUserDeleted    EventType = "user_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Email     string      `json:"email,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// UserLoggedInPayload payload.
type UserLoggedInPayload struct {
	Role               domain.UserRole `json:"role"`
	RequiresGithubAuth bool            `json:"requires_github_auth"`
}

// GithubLinkedPayload payload.
type GithubLinkedPayload struct {
	GithubUsername string `json:"github_username"`
}

// UserCreatedPayload payload.
type UserCreatedPayload struct {
	Role domain.UserRole `json:"role"`
}
