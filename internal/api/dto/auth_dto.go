package dto

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshTokenRequest payload for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse standard response for login and refresh.
type AuthResponse struct {
	AccessToken        string       `json:"access_token"`
	RefreshToken       string       `json:"refresh_token"`
	TokenType          string       `json:"token_type"`
	User               UserResponse `json:"user"`
	RequiresGithubAuth bool         `json:"requires_github_auth"`
}
