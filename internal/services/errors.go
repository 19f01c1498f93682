package services

import (
	"errors"
	"fmt"
)

// Sentinel errors for the auth flows. Handlers map these onto HTTP statuses
// and the client-facing response envelope.
var (
	// ErrEmailTaken: registration with an email that already has a user.
	ErrEmailTaken = errors.New("user already exists with this email")

	// ErrFileRequired: registration without the mandatory photo attachment.
	ErrFileRequired = errors.New("no file uploaded")

	// ErrInvalidCredentials covers both unknown email and wrong password so
	// responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrRoleMismatch: credentials are correct but the requested role is not
	// the stored one. Login refuses rather than silently issuing a session
	// for a different role.
	ErrRoleMismatch = errors.New("account doesn't exist with current role")

	// ErrUserNotFound: profile update for an id with no user.
	ErrUserNotFound = errors.New("user not found")
)

// UploadError wraps a media-store failure. It maps to 500 at the boundary.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("media upload failed: %v", e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

func NewUploadError(err error) *UploadError {
	return &UploadError{Err: err}
}
