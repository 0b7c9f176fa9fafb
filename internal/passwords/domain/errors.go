package domain

import (
	"github.com/allisson/onetimepassgen/internal/errors"
)

var (
	// ErrGeneratedPasswordNotFound indicates no entry with the id is visible to the caller.
	ErrGeneratedPasswordNotFound = errors.Wrap(errors.ErrNotFound, "generated password not found")

	// ErrInvalidFormatType indicates an unsupported generator format.
	ErrInvalidFormatType = errors.Wrap(errors.ErrInvalidInput, "invalid generated password format")

	// ErrInvalidValueLength indicates a generator length outside 1..MaxValueLength.
	ErrInvalidValueLength = errors.Wrap(errors.ErrInvalidInput, "invalid generated password length")
)
