package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YoussefTakali/esprithub/internal/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.GitHubConfig{APIBaseURL: baseURL, RequestTimeoutSeconds: 2})
}

func TestFetchAuthenticatedUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user", r.URL.Path)
		assert.Equal(t, "Bearer ghp_valid", r.Header.Get("Authorization"))
		assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":42,"login":"ghuser1","name":"GH User","email":"gh@example.com","avatar_url":"https://avatars.example/42"}`))
	}))
	defer server.Close()

	user, err := newTestClient(server.URL).FetchAuthenticatedUser(context.Background(), "ghp_valid")
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, "ghuser1", user.Login)
	assert.Equal(t, "GH User", user.Name)
	assert.Equal(t, "https://avatars.example/42", user.AvatarURL)
}

func TestFetchAuthenticatedUserRejectedToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Bad credentials"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchAuthenticatedUser(context.Background(), "ghp_bad")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestFetchAuthenticatedUserServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchAuthenticatedUser(context.Background(), "ghp_any")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidToken)
	assert.Contains(t, err.Error(), "500")
}

func TestFetchAuthenticatedUserUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	_, err := newTestClient(server.URL).FetchAuthenticatedUser(context.Background(), "ghp_any")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidToken)
}

func TestFetchAuthenticatedUserMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchAuthenticatedUser(context.Background(), "ghp_valid")
	require.Error(t, err)
}
