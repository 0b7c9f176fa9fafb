// Package usecase implements the generated password commands and queries. Handlers are
// registered on the request pipeline, which applies authorization, validation and
// logging before any of them run.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/onetimepassgen/internal/passwords/domain"
)

// GeneratedPasswordRepository defines persistence operations for generated passwords.
// Implementations must support transaction-aware operations via context propagation.
type GeneratedPasswordRepository interface {
	// Create stores a new entry.
	Create(ctx context.Context, entry *domain.GeneratedPassword) error

	// GetByIDAndOwner retrieves an entry owned by ownerID. A non-nil activeAt excludes
	// entries expiring at or before it. Returns ErrGeneratedPasswordNotFound if no entry
	// matches.
	GetByIDAndOwner(
		ctx context.Context,
		id uuid.UUID,
		ownerID string,
		activeAt *time.Time,
	) (*domain.GeneratedPassword, error)

	// ListByOwner retrieves the entries owned by ownerID, newest first. A non-nil activeAt
	// excludes entries expiring at or before it.
	ListByOwner(ctx context.Context, ownerID string, activeAt *time.Time) ([]*domain.GeneratedPassword, error)
}

// GeneratedPasswordUseCase is the entry point used by the HTTP layer. Every call is sent
// through the request pipeline.
type GeneratedPasswordUseCase interface {
	// Create generates a new password for the current user and returns its id.
	Create(ctx context.Context) (uuid.UUID, error)

	// Get retrieves one of the current user's passwords. Expired entries are only
	// returned when includeExpired is set.
	Get(ctx context.Context, id string, includeExpired bool) (*domain.GeneratedPasswordOutput, error)

	// List retrieves the current user's passwords, newest first.
	List(ctx context.Context, includeExpired bool) ([]*domain.GeneratedPasswordOutput, error)
}
