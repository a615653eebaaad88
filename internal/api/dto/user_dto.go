package dto

import (
	"time"

	"github.com/YoussefTakali/esprithub/internal/domain"
)

// UserResponse is the public view of a user record. The password hash and
// the raw GitHub token never leave the service.
type UserResponse struct {
	ID             string          `json:"id"`
	Email          string          `json:"email"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	Role           domain.UserRole `json:"role"`
	Enabled        bool            `json:"enabled"`
	EmailVerified  bool            `json:"email_verified"`
	HasGithubToken bool            `json:"has_github_token"`
	GithubUsername *string         `json:"github_username,omitempty"`
	ProfilePicture *string         `json:"profile_picture,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// NewUserResponse maps a domain user to its public view.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Role:           user.Role,
		Enabled:        user.Enabled,
		EmailVerified:  user.EmailVerified,
		HasGithubToken: user.HasGithubToken(),
		GithubUsername: user.GithubUsername,
		ProfilePicture: user.ProfilePicture,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

// CreateUserRequest payload for account creation.
type CreateUserRequest struct {
	Email     string          `json:"email"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Password  string          `json:"password"`
	Role      domain.UserRole `json:"role"`
}

// UpdateUserRequest payload for partial updates.
type UpdateUserRequest struct {
	FirstName *string          `json:"first_name"`
	LastName  *string          `json:"last_name"`
	Role      *domain.UserRole `json:"role"`
	Enabled   *bool            `json:"enabled"`
}

// UserListResponse wraps a page of users.
type UserListResponse struct {
	Items  []UserResponse `json:"items"`
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}
