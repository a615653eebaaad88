package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManagerRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret")

	token, err := tm.Issue("user-1", "a@esprit.tn", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject())
	assert.Equal(t, "a@esprit.tn", claims.Email)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenManagerAccessAndRefreshShareShape(t *testing.T) {
	tm := NewTokenManager("test-secret")

	access, err := tm.Issue("user-1", "a@esprit.tn", 15*time.Minute)
	require.NoError(t, err)
	refresh, err := tm.Issue("user-1", "a@esprit.tn", 7*24*time.Hour)
	require.NoError(t, err)

	accessClaims, err := tm.Verify(access)
	require.NoError(t, err)
	refreshClaims, err := tm.Verify(refresh)
	require.NoError(t, err)

	assert.Equal(t, accessClaims.Subject(), refreshClaims.Subject())
	assert.Equal(t, accessClaims.Email, refreshClaims.Email)
	assert.True(t, refreshClaims.ExpiresAt.After(accessClaims.ExpiresAt.Time))
}

func TestTokenManagerExpired(t *testing.T) {
	tm := NewTokenManager("test-secret")

	token, err := tm.Issue("user-1", "a@esprit.tn", -time.Minute)
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenManagerExpiresAsClockAdvances(t *testing.T) {
	tm := NewTokenManager("test-secret")

	token, err := tm.Issue("user-1", "a@esprit.tn", time.Hour)
	require.NoError(t, err)

	_, err = tm.Verify(token)
	require.NoError(t, err)

	tm.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenManagerForeignKey(t *testing.T) {
	issuer := NewTokenManager("issuer-secret")
	verifier := NewTokenManager("verifier-secret")

	token, err := issuer.Issue("user-1", "a@esprit.tn", time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestTokenManagerMalformed(t *testing.T) {
	tm := NewTokenManager("test-secret")

	for _, token := range []string{"", "garbage", "not.a.token"} {
		_, err := tm.Verify(token)
		assert.ErrorIs(t, err, ErrTokenMalformed, "token %q", token)
	}
}

func TestTokenManagerRejectsOtherSigningMethods(t *testing.T) {
	tm := NewTokenManager("test-secret")

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		Email: "a@esprit.tn",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrTokenUnsupported)
}
