// Package domain defines the generated password entry: a short-lived opaque value owned
// by the user that requested it.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// GeneratedPassword is an immutable one-time password entry. It is never updated after
// creation; ExpiresAt is always after CreatedAt.
type GeneratedPassword struct {
	ID        uuid.UUID
	OwnerID   string
	Value     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// IsExpired reports whether the entry is expired at now. An entry expires at the exact
// instant ExpiresAt is reached.
func (g *GeneratedPassword) IsExpired(now time.Time) bool {
	return !now.Before(g.ExpiresAt)
}

// GeneratedPasswordOutput is the read model returned to callers. The owner is not exposed.
type GeneratedPasswordOutput struct {
	ID        uuid.UUID
	Value     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// NewGeneratedPasswordOutput projects an entry to its read model.
func NewGeneratedPasswordOutput(g *GeneratedPassword) *GeneratedPasswordOutput {
	return &GeneratedPasswordOutput{
		ID:        g.ID,
		Value:     g.Value,
		CreatedAt: g.CreatedAt,
		ExpiresAt: g.ExpiresAt,
	}
}
