package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/onetimepassgen/internal/clock"
	"github.com/allisson/onetimepassgen/internal/identity/domain"
	identityService "github.com/allisson/onetimepassgen/internal/identity/service"
)

// tokenUseCase implements TokenUseCase with signed, stateless tokens.
type tokenUseCase struct {
	userRepo        UserRepository
	secretService   identityService.SecretService
	tokenService    identityService.TokenService
	clock           clock.Clock
	tokenExpiration time.Duration
}

// NewTokenUseCase creates a new TokenUseCase issuing tokens valid for tokenExpiration.
func NewTokenUseCase(
	userRepo UserRepository,
	secretService identityService.SecretService,
	tokenService identityService.TokenService,
	clk clock.Clock,
	tokenExpiration time.Duration,
) TokenUseCase {
	return &tokenUseCase{
		userRepo:        userRepo,
		secretService:   secretService,
		tokenService:    tokenService,
		clock:           clk,
		tokenExpiration: tokenExpiration,
	}
}

// Issue authenticates a user by name and password and signs a token.
//
// Security Notes:
//   - Returns ErrInvalidCredentials for both unknown users and wrong passwords to prevent
//     user enumeration
//   - Returns ErrUserInactive only after the password has been verified
func (t *tokenUseCase) Issue(
	ctx context.Context,
	input *domain.IssueTokenInput,
) (*domain.IssueTokenOutput, error) {
	user, err := t.userRepo.GetByUserName(ctx, input.UserName)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !t.secretService.CompareSecret(input.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	now := t.clock.Now().UTC()
	expiresAt := now.Add(t.tokenExpiration)

	token, err := t.tokenService.Sign(&domain.Principal{
		UserID:   user.ID.String(),
		UserName: user.UserName,
		Roles:    user.Roles,
	}, now, expiresAt)
	if err != nil {
		return nil, err
	}

	return &domain.IssueTokenOutput{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Authenticate validates the token and confirms the user still exists and is active.
// The returned principal carries the stored user name and roles, not the token's copy.
func (t *tokenUseCase) Authenticate(ctx context.Context, token string) (*domain.Principal, error) {
	claims, err := t.tokenService.Parse(token)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := t.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	return &domain.Principal{
		UserID:   user.ID.String(),
		UserName: user.UserName,
		Roles:    user.Roles,
	}, nil
}
