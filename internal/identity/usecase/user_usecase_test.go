package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/onetimepassgen/internal/clock"
	apperrors "github.com/allisson/onetimepassgen/internal/errors"
	"github.com/allisson/onetimepassgen/internal/identity/domain"
)

var testNow = time.Date(2020, 8, 5, 14, 45, 23, 545000000, time.UTC)

func TestUserUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_WithPassword", func(t *testing.T) {
		repo := &mockUserRepository{}
		secrets := &mockSecretService{}
		uc := NewUserUseCase(repo, secrets, clock.NewFixed(testNow))

		secrets.On("HashSecret", "Sup3r-secret").Return("$argon2id$hash", nil).Once()
		repo.On("Create", ctx, mock.MatchedBy(func(user *domain.User) bool {
			return user.UserName == "alice" &&
				user.PasswordHash == "$argon2id$hash" &&
				assert.ObjectsAreEqual([]string{"Admin"}, user.Roles) &&
				user.IsActive &&
				user.CreatedAt.Equal(testNow)
		})).Return(nil).Once()

		output, err := uc.Create(ctx, &domain.CreateUserInput{
			UserName: "alice",
			Password: "Sup3r-secret",
			Roles:    []string{"Admin", "admin"},
			IsActive: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "alice", output.UserName)
		assert.Empty(t, output.PlainPassword)
		repo.AssertExpectations(t)
		secrets.AssertExpectations(t)
	})

	t.Run("Success_GeneratesPassword", func(t *testing.T) {
		repo := &mockUserRepository{}
		secrets := &mockSecretService{}
		uc := NewUserUseCase(repo, secrets, clock.NewFixed(testNow))

		secrets.On("GenerateSecret").Return("generated", "$argon2id$generated", nil).Once()
		repo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()

		output, err := uc.Create(ctx, &domain.CreateUserInput{UserName: "bob", IsActive: true})
		require.NoError(t, err)
		assert.Equal(t, "generated", output.PlainPassword)
	})

	t.Run("Error_InvalidInput", func(t *testing.T) {
		uc := NewUserUseCase(&mockUserRepository{}, &mockSecretService{}, clock.NewFixed(testNow))

		_, err := uc.Create(ctx, &domain.CreateUserInput{UserName: "bad name", Password: "short"})

		var validationErr *apperrors.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Errors, "user_name")
		assert.Contains(t, validationErr.Errors, "password")
	})

	t.Run("Error_DuplicateUser", func(t *testing.T) {
		repo := &mockUserRepository{}
		secrets := &mockSecretService{}
		uc := NewUserUseCase(repo, secrets, clock.NewFixed(testNow))

		secrets.On("HashSecret", "Sup3r-secret").Return("$argon2id$hash", nil).Once()
		repo.On("Create", ctx, mock.Anything).Return(domain.ErrUserAlreadyExists).Once()

		_, err := uc.Create(ctx, &domain.CreateUserInput{UserName: "alice", Password: "Sup3r-secret"})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestUserUseCase_UpdateRoles(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := &mockUserRepository{}
		uc := NewUserUseCase(repo, &mockSecretService{}, clock.NewFixed(testNow))
		user := &domain.User{UserName: "alice", Roles: []string{"Admin"}}

		repo.On("GetByUserName", ctx, "alice").Return(user, nil).Once()
		repo.On("Update", ctx, user).Return(nil).Once()

		updated, err := uc.UpdateRoles(ctx, "alice", []string{"Auditor", "Manager"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Auditor", "Manager"}, updated.Roles)
		repo.AssertExpectations(t)
	})

	t.Run("Success_ClearRoles", func(t *testing.T) {
		repo := &mockUserRepository{}
		uc := NewUserUseCase(repo, &mockSecretService{}, clock.NewFixed(testNow))
		user := &domain.User{UserName: "alice", Roles: []string{"Admin"}}

		repo.On("GetByUserName", ctx, "alice").Return(user, nil).Once()
		repo.On("Update", ctx, user).Return(nil).Once()

		updated, err := uc.UpdateRoles(ctx, "alice", nil)
		require.NoError(t, err)
		assert.Empty(t, updated.Roles)
	})

	t.Run("Error_BlankRole", func(t *testing.T) {
		uc := NewUserUseCase(&mockUserRepository{}, &mockSecretService{}, clock.NewFixed(testNow))

		_, err := uc.UpdateRoles(ctx, "alice", []string{"  "})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_UserNotFound", func(t *testing.T) {
		repo := &mockUserRepository{}
		uc := NewUserUseCase(repo, &mockSecretService{}, clock.NewFixed(testNow))

		repo.On("GetByUserName", ctx, "ghost").Return(nil, domain.ErrUserNotFound).Once()

		_, err := uc.UpdateRoles(ctx, "ghost", []string{"Admin"})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("Error_UpdateFails", func(t *testing.T) {
		repo := &mockUserRepository{}
		uc := NewUserUseCase(repo, &mockSecretService{}, clock.NewFixed(testNow))

		repo.On("GetByUserName", ctx, "alice").Return(&domain.User{UserName: "alice"}, nil).Once()
		repo.On("Update", ctx, mock.Anything).Return(errors.New("db down")).Once()

		_, err := uc.UpdateRoles(ctx, "alice", []string{"Admin"})
		assert.EqualError(t, err, "db down")
	})
}
