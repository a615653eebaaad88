package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/YoussefTakali/esprithub/internal/config"
)

// ErrInvalidToken signals that GitHub rejected the personal access token.
var ErrInvalidToken = errors.New("github rejected the access token")

// UserInfo is the subset of the GitHub user profile the platform stores.
type UserInfo struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

// Client calls the GitHub REST API with a caller supplied personal access
// token. Requests are bounded by the configured client timeout.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client from config.
func NewClient(cfg config.GitHubConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.APIBaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.RequestTimeout()},
	}
}

// FetchAuthenticatedUser returns the profile behind the token. An HTTP 401
// maps to ErrInvalidToken; every other failure is a transport error.
func (c *Client) FetchAuthenticatedUser(ctx context.Context, accessToken string) (*UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github user request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("github user response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrInvalidToken
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("github user request: unexpected status %d", resp.StatusCode)
	}

	var user UserInfo
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("github user response: %w", err)
	}
	return &user, nil
}
