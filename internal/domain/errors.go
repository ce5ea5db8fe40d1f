package domain

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("forbidden")
	ErrUsernameTaken = errors.New("username already taken")
)

// ValidationError is a user-facing message for bad form input.
// The request that produced it must not change any state.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// AuthError is returned for rejected credentials. UserID is set when the
// username exists and only the password was wrong.
type AuthError struct {
	Message string
	UserID  int64
}

func (e *AuthError) Error() string { return e.Message }
