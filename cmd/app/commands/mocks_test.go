package commands

import (
	"context"

	"github.com/stretchr/testify/mock"

	identityDomain "github.com/allisson/onetimepassgen/internal/identity/domain"
)

type mockUserUseCase struct {
	mock.Mock
}

func (m *mockUserUseCase) Create(
	ctx context.Context,
	input *identityDomain.CreateUserInput,
) (*identityDomain.CreateUserOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.CreateUserOutput), args.Error(1)
}

func (m *mockUserUseCase) GetByUserName(ctx context.Context, userName string) (*identityDomain.User, error) {
	args := m.Called(ctx, userName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.User), args.Error(1)
}

func (m *mockUserUseCase) UpdateRoles(
	ctx context.Context,
	userName string,
	roles []string,
) (*identityDomain.User, error) {
	args := m.Called(ctx, userName, roles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.User), args.Error(1)
}

type mockTokenUseCase struct {
	mock.Mock
}

func (m *mockTokenUseCase) Issue(
	ctx context.Context,
	input *identityDomain.IssueTokenInput,
) (*identityDomain.IssueTokenOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.IssueTokenOutput), args.Error(1)
}

func (m *mockTokenUseCase) Authenticate(ctx context.Context, token string) (*identityDomain.Principal, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.Principal), args.Error(1)
}
