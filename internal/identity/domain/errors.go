package domain

import (
	"github.com/allisson/onetimepassgen/internal/errors"
)

// Identity-specific error definitions.
var (
	// ErrUserNotFound indicates the user was not found.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates the user name is taken.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrInvalidCredentials indicates an unknown user name or a wrong password.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrInvalidToken indicates a bearer token that is malformed, expired or badly signed.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid token")

	// ErrUserInactive indicates the user exists but is disabled.
	ErrUserInactive = errors.Wrap(errors.ErrForbidden, "user is inactive")
)
