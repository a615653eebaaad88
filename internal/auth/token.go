package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Token verification failures. Verify always returns one of these so
// callers can decide how much detail to expose.
var (
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenMalformed   = errors.New("malformed token")
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenUnsupported = errors.New("unsupported token")
)

// TokenManager issues and verifies signed JWTs. The secret and clock are
// fixed at construction; access and refresh tokens differ only in the ttl
// passed to Issue.
type TokenManager struct {
	secret []byte
	now    func() time.Time
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret), now: time.Now}
}

// Claims describes the JWT payload: subject user id, email and the
// registered issued-at/expiry timestamps.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Subject returns the user id encoded in a verified claim set.
func (c *Claims) Subject() string {
	return c.RegisteredClaims.Subject
}

// Issue builds and signs a token for the user with the given lifetime.
func (tm *TokenManager) Issue(userID, email string, ttl time.Duration) (string, error) {
	now := tm.now()
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Verify checks the signature and expiry and returns the decoded claims.
// Subject and email must be read from the returned claims rather than by
// re-parsing the raw token, so only verified values are ever trusted.
func (tm *TokenManager) Verify(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrTokenUnsupported
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(tm.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		default:
			return nil, ErrTokenUnsupported
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenUnsupported
	}
	return claims, nil
}
