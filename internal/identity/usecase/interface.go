// Package usecase defines the identity business operations: user management, bearer
// token issuance and the role and policy checks used by the request pipeline.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/onetimepassgen/internal/identity/domain"
)

// UserRepository defines persistence operations for users.
// Implementations must support transaction-aware operations via context propagation.
type UserRepository interface {
	// Create stores a new user. Returns ErrUserAlreadyExists if the user name is taken.
	Create(ctx context.Context, user *domain.User) error

	// Update persists password hash, roles and active flag. Returns ErrUserNotFound if missing.
	Update(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID. Returns ErrUserNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByUserName retrieves a user by user name. Returns ErrUserNotFound if not found.
	GetByUserName(ctx context.Context, userName string) (*domain.User, error)
}

// UserUseCase manages user accounts.
type UserUseCase interface {
	// Create registers a user. When the input carries no password a random one is
	// generated and returned once in the output.
	Create(ctx context.Context, input *domain.CreateUserInput) (*domain.CreateUserOutput, error)

	// GetByUserName retrieves a user by user name.
	GetByUserName(ctx context.Context, userName string) (*domain.User, error)

	// UpdateRoles replaces the roles of a user.
	UpdateRoles(ctx context.Context, userName string, roles []string) (*domain.User, error)
}

// TokenUseCase exchanges credentials for bearer tokens and validates them.
type TokenUseCase interface {
	// Issue verifies the credentials and signs a token. Unknown users and wrong passwords
	// both yield ErrInvalidCredentials.
	Issue(ctx context.Context, input *domain.IssueTokenInput) (*domain.IssueTokenOutput, error)

	// Authenticate validates token and returns the principal of an active user.
	Authenticate(ctx context.Context, token string) (*domain.Principal, error)
}

// IdentityUseCase answers identity questions for the request pipeline.
type IdentityUseCase interface {
	GetUserName(ctx context.Context, userID string) (string, error)
	IsInRole(ctx context.Context, userID, role string) (bool, error)
	Authorize(ctx context.Context, userID, policy string) (bool, error)
}
