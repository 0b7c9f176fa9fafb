package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/onetimepassgen/internal/passwords/domain"
	"github.com/allisson/onetimepassgen/internal/pipeline"
)

type generatedPasswordUseCase struct {
	pipeline *pipeline.Pipeline
}

// NewGeneratedPasswordUseCase creates a GeneratedPasswordUseCase that dispatches through
// p. The handlers must already be registered on p.
func NewGeneratedPasswordUseCase(p *pipeline.Pipeline) GeneratedPasswordUseCase {
	return &generatedPasswordUseCase{pipeline: p}
}

func (g *generatedPasswordUseCase) Create(ctx context.Context) (uuid.UUID, error) {
	return pipeline.Send[CreateGeneratedPasswordCommand, uuid.UUID](
		ctx,
		g.pipeline,
		CreateGeneratedPasswordCommand{},
	)
}

func (g *generatedPasswordUseCase) Get(
	ctx context.Context,
	id string,
	includeExpired bool,
) (*domain.GeneratedPasswordOutput, error) {
	return pipeline.Send[GetGeneratedPasswordQuery, *domain.GeneratedPasswordOutput](
		ctx,
		g.pipeline,
		GetGeneratedPasswordQuery{ID: id, IncludeExpired: includeExpired},
	)
}

func (g *generatedPasswordUseCase) List(
	ctx context.Context,
	includeExpired bool,
) ([]*domain.GeneratedPasswordOutput, error) {
	return pipeline.Send[ListGeneratedPasswordsQuery, []*domain.GeneratedPasswordOutput](
		ctx,
		g.pipeline,
		ListGeneratedPasswordsQuery{IncludeExpired: includeExpired},
	)
}
