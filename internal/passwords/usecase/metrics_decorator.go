package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/onetimepassgen/internal/metrics"
	"github.com/allisson/onetimepassgen/internal/passwords/domain"
)

// generatedPasswordUseCaseWithMetrics decorates GeneratedPasswordUseCase with metrics
// instrumentation.
type generatedPasswordUseCaseWithMetrics struct {
	next    GeneratedPasswordUseCase
	metrics metrics.BusinessMetrics
}

// NewGeneratedPasswordUseCaseWithMetrics wraps a GeneratedPasswordUseCase with metrics recording.
func NewGeneratedPasswordUseCaseWithMetrics(
	useCase GeneratedPasswordUseCase,
	m metrics.BusinessMetrics,
) GeneratedPasswordUseCase {
	return &generatedPasswordUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for password generation.
func (g *generatedPasswordUseCaseWithMetrics) Create(ctx context.Context) (uuid.UUID, error) {
	start := time.Now()
	id, err := g.next.Create(ctx)
	metrics.Observe(ctx, g.metrics, "passwords", "generated_password_create", start, err)
	return id, err
}

// Get records metrics for single password retrieval.
func (g *generatedPasswordUseCaseWithMetrics) Get(
	ctx context.Context,
	id string,
	includeExpired bool,
) (*domain.GeneratedPasswordOutput, error) {
	start := time.Now()
	output, err := g.next.Get(ctx, id, includeExpired)
	metrics.Observe(ctx, g.metrics, "passwords", "generated_password_get", start, err)
	return output, err
}

// List records metrics for password listing.
func (g *generatedPasswordUseCaseWithMetrics) List(
	ctx context.Context,
	includeExpired bool,
) ([]*domain.GeneratedPasswordOutput, error) {
	start := time.Now()
	outputs, err := g.next.List(ctx, includeExpired)
	metrics.Observe(ctx, g.metrics, "passwords", "generated_password_list", start, err)
	return outputs, err
}
