package domain

// Principal is the verified identity attached to a request after a
// credential check or token verification. It is built per request and
// never persisted.
type Principal struct {
	UserID  string
	Email   string
	Role    UserRole
	Enabled bool
}

// TokenPair bundles the access and refresh tokens issued on login and refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
