package dto

// GithubLinkRequest payload carrying a personal access token.
type GithubLinkRequest struct {
	GithubToken string `json:"github_token"`
}

// GithubUserInfoResponse mirrors the profile returned by GitHub.
type GithubUserInfoResponse struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}
