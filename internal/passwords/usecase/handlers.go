package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/allisson/onetimepassgen/internal/clock"
	"github.com/allisson/onetimepassgen/internal/database"
	apperrors "github.com/allisson/onetimepassgen/internal/errors"
	"github.com/allisson/onetimepassgen/internal/passwords/domain"
	"github.com/allisson/onetimepassgen/internal/passwords/service"
	"github.com/allisson/onetimepassgen/internal/pipeline"
	customValidation "github.com/allisson/onetimepassgen/internal/validation"
)

// CreateGeneratedPasswordCommand requests a new password for the current user.
type CreateGeneratedPasswordCommand struct{}

// GetGeneratedPasswordQuery requests one of the current user's passwords.
// The json tag on ID names the field in validation failures.
type GetGeneratedPasswordQuery struct {
	ID             string `json:"id"`
	IncludeExpired bool
}

// Validate checks the query fields.
func (q *GetGeneratedPasswordQuery) Validate() error {
	return validation.ValidateStruct(q,
		validation.Field(&q.ID,
			validation.Required.Error("Field 'id' is required."),
			customValidation.UUID,
		),
	)
}

// ListGeneratedPasswordsQuery requests all of the current user's passwords.
type ListGeneratedPasswordsQuery struct {
	IncludeExpired bool
}

// Handlers executes the generated password commands and queries.
type Handlers struct {
	txManager  database.TxManager
	repo       GeneratedPasswordRepository
	generator  service.ValueGenerator
	principals pipeline.PrincipalResolver
	clock      clock.Clock
	ttl        time.Duration
}

// NewHandlers creates the handlers. ttl is the lifetime given to every new entry.
func NewHandlers(
	txManager database.TxManager,
	repo GeneratedPasswordRepository,
	generator service.ValueGenerator,
	principals pipeline.PrincipalResolver,
	clk clock.Clock,
	ttl time.Duration,
) *Handlers {
	return &Handlers{
		txManager:  txManager,
		repo:       repo,
		generator:  generator,
		principals: principals,
		clock:      clk,
		ttl:        ttl,
	}
}

// Register adds every generated password request to p. Each one requires an
// authenticated caller.
func Register(p *pipeline.Pipeline, h *Handlers) error {
	requirements := []pipeline.Requirement{pipeline.RequireAuthenticated()}

	if err := pipeline.Register(p, pipeline.Descriptor[CreateGeneratedPasswordCommand]{
		Requirements: requirements,
	}, h.CreateGeneratedPassword); err != nil {
		return err
	}

	if err := pipeline.Register(p, pipeline.Descriptor[GetGeneratedPasswordQuery]{
		Requirements: requirements,
		Validators: []pipeline.Validator[GetGeneratedPasswordQuery]{
			pipeline.ValidatorFunc[GetGeneratedPasswordQuery](validateGetQuery),
		},
	}, h.GetGeneratedPassword); err != nil {
		return err
	}

	return pipeline.Register(p, pipeline.Descriptor[ListGeneratedPasswordsQuery]{
		Requirements: requirements,
	}, h.ListGeneratedPasswords)
}

func validateGetQuery(_ context.Context, q GetGeneratedPasswordQuery) ([]pipeline.ValidationFailure, error) {
	return pipeline.FailuresFromError(q.Validate())
}

// CreateGeneratedPassword generates and stores a new entry owned by the caller.
func (h *Handlers) CreateGeneratedPassword(
	ctx context.Context,
	_ CreateGeneratedPasswordCommand,
) (uuid.UUID, error) {
	ownerID, err := h.currentOwner(ctx)
	if err != nil {
		return uuid.Nil, err
	}

	value, err := h.generator.Generate()
	if err != nil {
		return uuid.Nil, apperrors.Wrap(err, "failed to generate password value")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, apperrors.Wrap(err, "failed to generate generated password id")
	}

	now := h.clock.Now().UTC()
	entry := &domain.GeneratedPassword{
		ID:        id,
		OwnerID:   ownerID,
		Value:     value,
		CreatedAt: now,
		ExpiresAt: now.Add(h.ttl),
	}

	if err := h.txManager.WithTx(ctx, func(ctx context.Context) error {
		return h.repo.Create(ctx, entry)
	}); err != nil {
		return uuid.Nil, err
	}

	return entry.ID, nil
}

// GetGeneratedPassword retrieves one entry owned by the caller. Entries of other users
// are reported as not found.
func (h *Handlers) GetGeneratedPassword(
	ctx context.Context,
	q GetGeneratedPasswordQuery,
) (*domain.GeneratedPasswordOutput, error) {
	ownerID, err := h.currentOwner(ctx)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(q.ID)
	if err != nil {
		return nil, domain.ErrGeneratedPasswordNotFound
	}

	entry, err := h.repo.GetByIDAndOwner(ctx, id, ownerID, h.activeAt(q.IncludeExpired))
	if err != nil {
		return nil, err
	}

	return domain.NewGeneratedPasswordOutput(entry), nil
}

// ListGeneratedPasswords retrieves the caller's entries, newest first.
func (h *Handlers) ListGeneratedPasswords(
	ctx context.Context,
	q ListGeneratedPasswordsQuery,
) ([]*domain.GeneratedPasswordOutput, error) {
	ownerID, err := h.currentOwner(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := h.repo.ListByOwner(ctx, ownerID, h.activeAt(q.IncludeExpired))
	if err != nil {
		return nil, err
	}

	outputs := make([]*domain.GeneratedPasswordOutput, 0, len(entries))
	for _, entry := range entries {
		outputs = append(outputs, domain.NewGeneratedPasswordOutput(entry))
	}

	return outputs, nil
}

// currentOwner repeats the pipeline's authentication check so a handler never runs
// without an owner.
func (h *Handlers) currentOwner(ctx context.Context) (string, error) {
	userID, ok := h.principals.CurrentUserID(ctx)
	if !ok || userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

func (h *Handlers) activeAt(includeExpired bool) *time.Time {
	if includeExpired {
		return nil
	}
	now := h.clock.Now().UTC()
	return &now
}
