package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/onetimepassgen/internal/passwords/domain"
)

type mockGeneratedPasswordRepository struct {
	mock.Mock
}

func (m *mockGeneratedPasswordRepository) Create(ctx context.Context, entry *domain.GeneratedPassword) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockGeneratedPasswordRepository) GetByIDAndOwner(
	ctx context.Context,
	id uuid.UUID,
	ownerID string,
	activeAt *time.Time,
) (*domain.GeneratedPassword, error) {
	args := m.Called(ctx, id, ownerID, activeAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneratedPassword), args.Error(1)
}

func (m *mockGeneratedPasswordRepository) ListByOwner(
	ctx context.Context,
	ownerID string,
	activeAt *time.Time,
) ([]*domain.GeneratedPassword, error) {
	args := m.Called(ctx, ownerID, activeAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.GeneratedPassword), args.Error(1)
}

type mockValueGenerator struct {
	mock.Mock
}

func (m *mockValueGenerator) Generate() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

type mockTxManager struct {
	mock.Mock
}

func (m *mockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

type mockGeneratedPasswordUseCase struct {
	mock.Mock
}

func (m *mockGeneratedPasswordUseCase) Create(ctx context.Context) (uuid.UUID, error) {
	args := m.Called(ctx)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockGeneratedPasswordUseCase) Get(
	ctx context.Context,
	id string,
	includeExpired bool,
) (*domain.GeneratedPasswordOutput, error) {
	args := m.Called(ctx, id, includeExpired)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneratedPasswordOutput), args.Error(1)
}

func (m *mockGeneratedPasswordUseCase) List(
	ctx context.Context,
	includeExpired bool,
) ([]*domain.GeneratedPasswordOutput, error) {
	args := m.Called(ctx, includeExpired)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.GeneratedPasswordOutput), args.Error(1)
}

type staticIdentity struct {
	names map[string]string
}

func (s staticIdentity) GetUserName(ctx context.Context, userID string) (string, error) {
	return s.names[userID], nil
}

func (s staticIdentity) IsInRole(ctx context.Context, userID, role string) (bool, error) {
	return false, nil
}

func (s staticIdentity) Authorize(ctx context.Context, userID, policy string) (bool, error) {
	return false, nil
}
