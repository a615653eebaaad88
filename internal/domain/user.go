package domain

import "time"

// UserRole enumerates platform roles.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleChief   UserRole = "CHIEF"
	RoleTeacher UserRole = "TEACHER"
	RoleStudent UserRole = "STUDENT"
)

// Valid reports whether the role is one of the known values.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleChief, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// User is the domain model for platform accounts. GithubToken and
// GithubUsername are set together by the link flow and are otherwise nil.
type User struct {
	ID             string
	Email          string
	FirstName      string
	LastName       string
	PasswordHash   string
	Role           UserRole
	Enabled        bool
	EmailVerified  bool
	GithubToken    *string
	GithubUsername *string
	ProfilePicture *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasGithubToken reports whether a GitHub account is linked.
func (u *User) HasGithubToken() bool {
	return u.GithubToken != nil && *u.GithubToken != ""
}

// FullName returns the display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
