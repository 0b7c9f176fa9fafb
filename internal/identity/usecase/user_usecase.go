package usecase

import (
	"context"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/allisson/onetimepassgen/internal/clock"
	"github.com/allisson/onetimepassgen/internal/identity/domain"
	identityService "github.com/allisson/onetimepassgen/internal/identity/service"
	customValidation "github.com/allisson/onetimepassgen/internal/validation"
)

// userUseCase implements UserUseCase.
type userUseCase struct {
	userRepo      UserRepository
	secretService identityService.SecretService
	clock         clock.Clock
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(
	userRepo UserRepository,
	secretService identityService.SecretService,
	clk clock.Clock,
) UserUseCase {
	return &userUseCase{
		userRepo:      userRepo,
		secretService: secretService,
		clock:         clk,
	}
}

func validateCreateUserInput(input *domain.CreateUserInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.UserName,
			validation.Required,
			validation.Length(1, 255),
			customValidation.UserName,
		),
		validation.Field(&input.Password,
			validation.When(input.Password != "", customValidation.PasswordStrength{MinLength: 8}),
		),
		validation.Field(&input.Roles,
			validation.Each(customValidation.NotBlank, customValidation.NoWhitespace),
		),
	)
	return customValidation.WrapValidationError(err)
}

// Create registers a new user, generating a password when none is supplied.
func (u *userUseCase) Create(
	ctx context.Context,
	input *domain.CreateUserInput,
) (*domain.CreateUserOutput, error) {
	if err := validateCreateUserInput(input); err != nil {
		return nil, err
	}

	var plainPassword, passwordHash string
	var err error
	if input.Password == "" {
		plainPassword, passwordHash, err = u.secretService.GenerateSecret()
	} else {
		passwordHash, err = u.secretService.HashSecret(input.Password)
	}
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.Must(uuid.NewV7()),
		UserName:     input.UserName,
		PasswordHash: passwordHash,
		Roles:        domain.NormalizeRoles(input.Roles),
		IsActive:     input.IsActive,
		CreatedAt:    u.clock.Now().UTC(),
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return &domain.CreateUserOutput{
		ID:            user.ID,
		UserName:      user.UserName,
		Roles:         user.Roles,
		PlainPassword: plainPassword,
	}, nil
}

// GetByUserName retrieves a user by user name.
func (u *userUseCase) GetByUserName(ctx context.Context, userName string) (*domain.User, error) {
	return u.userRepo.GetByUserName(ctx, userName)
}

// UpdateRoles replaces the roles of the named user.
func (u *userUseCase) UpdateRoles(ctx context.Context, userName string, roles []string) (*domain.User, error) {
	err := validation.Validate(roles, validation.Each(customValidation.NotBlank, customValidation.NoWhitespace))
	if err != nil {
		return nil, customValidation.WrapValidationError(validation.Errors{"roles": err})
	}

	user, err := u.userRepo.GetByUserName(ctx, userName)
	if err != nil {
		return nil, err
	}

	user.Roles = domain.NormalizeRoles(roles)

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
