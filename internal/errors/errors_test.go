package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	baseErr := errors.New("base error")

	t.Run("wrap non-nil error", func(t *testing.T) {
		wrapped := Wrap(baseErr, "wrapped")
		require.Error(t, wrapped)
		assert.Equal(t, "wrapped: base error", wrapped.Error())
		assert.True(t, Is(wrapped, baseErr))
	})

	t.Run("wrap nil error", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "wrapped"))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("matches invalid input", func(t *testing.T) {
		err := NewValidationError(map[string][]string{"id": {"is required"}})
		assert.True(t, Is(err, ErrInvalidInput))
		assert.False(t, Is(err, ErrNotFound))
	})

	t.Run("message lists fields in order", func(t *testing.T) {
		err := NewValidationError(map[string][]string{
			"name": {"must not be blank"},
			"age":  {"must be over 18", "must be a number"},
		})
		assert.Equal(
			t,
			"one or more validation failures have occurred: age: must be over 18, must be a number; name: must not be blank",
			err.Error(),
		)
	})

	t.Run("as through wrapping", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", NewValidationError(map[string][]string{"id": {"bad"}}))

		var validationErr *ValidationError
		require.True(t, As(err, &validationErr))
		assert.Equal(t, []string{"bad"}, validationErr.Errors["id"])
	})

	t.Run("nil map becomes empty", func(t *testing.T) {
		err := NewValidationError(nil)
		assert.NotNil(t, err.Errors)
		assert.Equal(t, "one or more validation failures have occurred", err.Error())
	})
}

func TestIsTaxonomy(t *testing.T) {
	assert.True(t, IsTaxonomy(Wrap(ErrNotFound, "entry")))
	assert.True(t, IsTaxonomy(ErrUnauthorized))
	assert.True(t, IsTaxonomy(ErrForbidden))
	assert.True(t, IsTaxonomy(NewValidationError(nil)))
	assert.False(t, IsTaxonomy(errors.New("database is down")))
}
