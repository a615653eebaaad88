package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YoussefTakali/esprithub/internal/domain"
	apperrors "github.com/YoussefTakali/esprithub/pkg/util/errorutil"
)

func newProtectedApp(t *testing.T, repo *memoryUserRepo, tm *TokenManager, permission Permission) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": de.Code})
		},
	})
	middleware := NewAuthMiddleware(tm, repo)
	app.Get("/protected", middleware.Handle, RequirePermission(permission), func(c *fiber.Ctx) error {
		principal, _ := PrincipalFromContext(c)
		return c.JSON(fiber.Map{"email": principal.Email})
	})
	return app
}

func TestMiddlewareAllowsValidToken(t *testing.T) {
	repo := newMemoryUserRepo()
	user := seedUser(t, repo, "a@esprit.tn", "p1", true)
	tm := NewTokenManager("test-secret")
	app := newProtectedApp(t, repo, tm, PermissionProfileRead)

	token, err := tm.Issue(user.ID, user.Email, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMiddlewareRejectsMissingAndBadTokens(t *testing.T) {
	repo := newMemoryUserRepo()
	user := seedUser(t, repo, "a@esprit.tn", "p1", true)
	tm := NewTokenManager("test-secret")
	app := newProtectedApp(t, repo, tm, PermissionProfileRead)

	foreign := NewTokenManager("other-secret")
	foreignToken, err := foreign.Issue(user.ID, user.Email, time.Hour)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer garbage"},
		{"foreign signature", "Bearer " + foreignToken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestMiddlewareRejectsDisabledUser(t *testing.T) {
	repo := newMemoryUserRepo()
	user := seedUser(t, repo, "a@esprit.tn", "p1", false)
	tm := NewTokenManager("test-secret")
	app := newProtectedApp(t, repo, tm, PermissionProfileRead)

	token, err := tm.Issue(user.ID, user.Email, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequirePermissionForbidsByRole(t *testing.T) {
	repo := newMemoryUserRepo()
	user := seedUser(t, repo, "student@esprit.tn", "p1", true)
	require.Equal(t, domain.RoleStudent, user.Role)

	tm := NewTokenManager("test-secret")
	app := newProtectedApp(t, repo, tm, PermissionDashboardStats)

	token, err := tm.Issue(user.ID, user.Email, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
