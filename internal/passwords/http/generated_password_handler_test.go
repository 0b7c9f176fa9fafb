package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/onetimepassgen/internal/errors"
	"github.com/allisson/onetimepassgen/internal/passwords/domain"
	"github.com/allisson/onetimepassgen/internal/passwords/http/dto"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
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

func setupTestRouter(t *testing.T) (*gin.Engine, *mockGeneratedPasswordUseCase) {
	t.Helper()

	useCase := &mockGeneratedPasswordUseCase{}
	handler := NewGeneratedPasswordHandler(useCase, slog.New(slog.NewTextHandler(io.Discard, nil)))

	router := gin.New()
	handler.RegisterRoutes(router.Group(ResourcePath))

	return router, useCase
}

func serve(router *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func newOutput() *domain.GeneratedPasswordOutput {
	createdAt := time.Date(2020, 8, 5, 14, 45, 23, 545000000, time.UTC)
	return &domain.GeneratedPasswordOutput{
		ID:        uuid.Must(uuid.NewV7()),
		Value:     "generated-password",
		CreatedAt: createdAt,
		ExpiresAt: createdAt.Add(30 * time.Second),
	}
}

func TestGeneratedPasswordHandler_CreateHandler(t *testing.T) {
	t.Run("Success_ReturnsLocation", func(t *testing.T) {
		router, useCase := setupTestRouter(t)
		output := newOutput()

		useCase.On("Create", mock.Anything).Return(output.ID, nil).Once()
		useCase.On("Get", mock.Anything, output.ID.String(), true).Return(output, nil).Once()

		w := serve(router, http.MethodPost, ResourcePath)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "/api/user-generated-passwords/"+output.ID.String(), w.Header().Get("Location"))

		var response dto.GeneratedPasswordResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, output.ID.String(), response.ID)
		assert.Equal(t, "generated-password", response.Password)
		useCase.AssertExpectations(t)
	})

	t.Run("Error_Unauthorized", func(t *testing.T) {
		router, useCase := setupTestRouter(t)

		useCase.On("Create", mock.Anything).Return(uuid.Nil, apperrors.ErrUnauthorized).Once()

		w := serve(router, http.MethodPost, ResourcePath)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, w.Header().Get("Location"))
		useCase.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_StoreFailure", func(t *testing.T) {
		router, useCase := setupTestRouter(t)

		useCase.On("Create", mock.Anything).Return(uuid.Nil, errors.New("disk full")).Once()

		w := serve(router, http.MethodPost, ResourcePath)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "disk full")
	})
}

func TestGeneratedPasswordHandler_GetHandler(t *testing.T) {
	t.Run("Success_DefaultExcludesExpired", func(t *testing.T) {
		router, useCase := setupTestRouter(t)
		output := newOutput()

		useCase.On("Get", mock.Anything, output.ID.String(), false).Return(output, nil).Once()

		w := serve(router, http.MethodGet, ResourcePath+"/"+output.ID.String())

		assert.Equal(t, http.StatusOK, w.Code)
		useCase.AssertExpectations(t)
	})

	t.Run("Success_IncludeExpired", func(t *testing.T) {
		router, useCase := setupTestRouter(t)
		output := newOutput()

		useCase.On("Get", mock.Anything, output.ID.String(), true).Return(output, nil).Once()

		w := serve(router, http.MethodGet, ResourcePath+"/"+output.ID.String()+"?includeExpiredPasswords=true")

		assert.Equal(t, http.StatusOK, w.Code)
		useCase.AssertExpectations(t)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		router, useCase := setupTestRouter(t)
		id := uuid.NewString()

		useCase.On("Get", mock.Anything, id, false).Return(nil, domain.ErrGeneratedPasswordNotFound).Once()

		w := serve(router, http.MethodGet, ResourcePath+"/"+id)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Error_ValidationFailure", func(t *testing.T) {
		router, useCase := setupTestRouter(t)

		useCase.On("Get", mock.Anything, "nope", false).
			Return(nil, apperrors.NewValidationError(map[string][]string{"id": {"must be a valid UUID"}})).
			Once()

		w := serve(router, http.MethodGet, ResourcePath+"/nope")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "must be a valid UUID")
	})

	t.Run("Error_BadFlag", func(t *testing.T) {
		router, useCase := setupTestRouter(t)

		w := serve(router, http.MethodGet, ResourcePath+"/"+uuid.NewString()+"?includeExpiredPasswords=maybe")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		useCase.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGeneratedPasswordHandler_ListHandler(t *testing.T) {
	t.Run("Success_Array", func(t *testing.T) {
		router, useCase := setupTestRouter(t)
		first, second := newOutput(), newOutput()

		useCase.On("List", mock.Anything, true).
			Return([]*domain.GeneratedPasswordOutput{first, second}, nil).
			Once()

		w := serve(router, http.MethodGet, ResourcePath+"?includeExpiredPasswords=true")

		assert.Equal(t, http.StatusOK, w.Code)

		var response []dto.GeneratedPasswordResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response, 2)
		assert.Equal(t, first.ID.String(), response[0].ID)
		assert.Equal(t, second.ID.String(), response[1].ID)
	})

	t.Run("Success_EmptyArray", func(t *testing.T) {
		router, useCase := setupTestRouter(t)

		useCase.On("List", mock.Anything, false).Return([]*domain.GeneratedPasswordOutput{}, nil).Once()

		w := serve(router, http.MethodGet, ResourcePath)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("Error_Unauthorized", func(t *testing.T) {
		router, useCase := setupTestRouter(t)

		useCase.On("List", mock.Anything, false).Return(nil, apperrors.ErrUnauthorized).Once()

		w := serve(router, http.MethodGet, ResourcePath)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Error_BadFlag", func(t *testing.T) {
		router, useCase := setupTestRouter(t)

		w := serve(router, http.MethodGet, ResourcePath+"?includeExpiredPasswords=yes")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		useCase.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})
}
