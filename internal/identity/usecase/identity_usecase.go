package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/onetimepassgen/internal/identity/domain"
)

// identityUseCase resolves user names, roles and policies against the user store.
type identityUseCase struct {
	userRepo UserRepository
	policies map[string][]string
}

// NewIdentityUseCase creates an IdentityUseCase. policies maps a policy name to the roles
// that satisfy it; an empty map falls back to domain.DefaultPolicies.
func NewIdentityUseCase(userRepo UserRepository, policies map[string][]string) IdentityUseCase {
	if len(policies) == 0 {
		policies = domain.DefaultPolicies()
	}
	return &identityUseCase{
		userRepo: userRepo,
		policies: policies,
	}
}

// GetUserName returns the user name for userID.
func (i *identityUseCase) GetUserName(ctx context.Context, userID string) (string, error) {
	user, err := i.lookup(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.UserName, nil
}

// IsInRole reports whether the active user holds role. Unknown users hold no roles.
func (i *identityUseCase) IsInRole(ctx context.Context, userID, role string) (bool, error) {
	user, err := i.activeUser(ctx, userID)
	if err != nil || user == nil {
		return false, err
	}
	return user.HasRole(role), nil
}

// Authorize reports whether the active user satisfies policy by holding any of its roles.
// Unknown policies are never satisfied.
func (i *identityUseCase) Authorize(ctx context.Context, userID, policy string) (bool, error) {
	roles, ok := i.policies[policy]
	if !ok {
		return false, nil
	}

	user, err := i.activeUser(ctx, userID)
	if err != nil || user == nil {
		return false, err
	}
	return user.HasAnyRole(roles), nil
}

// activeUser returns nil without error when the user is unknown or inactive.
func (i *identityUseCase) activeUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := i.lookup(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, nil
	}
	return user, nil
}

func (i *identityUseCase) lookup(ctx context.Context, userID string) (*domain.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return i.userRepo.GetByID(ctx, id)
}
