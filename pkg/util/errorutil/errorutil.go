package errorutil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

// NewInvalidDomain rejects emails outside the organizational domain.
func NewInvalidDomain(domain string) error {
	return NewDomainError("INVALID_DOMAIN",
		fmt.Sprintf("email must be from the %s domain", domain),
		http.StatusBadRequest, nil)
}

// NewInvalidCredentials covers both unknown-account and wrong-password
// failures so callers cannot tell which check failed.
func NewInvalidCredentials() error {
	return NewDomainError("INVALID_CREDENTIALS", "invalid email or password", http.StatusUnauthorized, nil)
}

// NewInvalidRefreshToken covers expired, malformed and badly signed
// refresh tokens with a single externally visible failure.
func NewInvalidRefreshToken() error {
	return NewDomainError("INVALID_REFRESH_TOKEN", "invalid refresh token", http.StatusUnauthorized, nil)
}

// NewUserNotFound signals that a token subject no longer resolves.
func NewUserNotFound() error {
	return NewDomainError("USER_NOT_FOUND", "user not found", http.StatusNotFound, nil)
}

// NewInvalidGithubToken rejects a GitHub token the verifier refused.
func NewInvalidGithubToken() error {
	return NewDomainError("INVALID_GITHUB_TOKEN", "invalid GitHub token", http.StatusBadRequest, nil)
}

// NewExternalServiceError surfaces a transient third-party failure.
func NewExternalServiceError(service string, err error) error {
	return &DomainError{
		Code:       "EXTERNAL_SERVICE_ERROR",
		Message:    fmt.Sprintf("%s request failed", service),
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			return de
		}
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// MapError converts generic errors to DomainError.
func MapError(err error) error {
	return ToDomainError(err)
}

// CodeOf extracts the machine readable error code, if any.
func CodeOf(err error) string {
	if de := ToDomainError(err); de != nil {
		return de.Code
	}
	return ""
}
