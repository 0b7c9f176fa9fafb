package usecase

import (
	"context"
	"time"

	"github.com/allisson/onetimepassgen/internal/identity/domain"
	"github.com/allisson/onetimepassgen/internal/metrics"
)

// tokenUseCaseWithMetrics decorates TokenUseCase with metrics instrumentation.
type tokenUseCaseWithMetrics struct {
	next    TokenUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenUseCaseWithMetrics wraps a TokenUseCase with metrics recording.
func NewTokenUseCaseWithMetrics(useCase TokenUseCase, m metrics.BusinessMetrics) TokenUseCase {
	return &tokenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Issue records metrics for token issuance.
func (t *tokenUseCaseWithMetrics) Issue(
	ctx context.Context,
	input *domain.IssueTokenInput,
) (*domain.IssueTokenOutput, error) {
	start := time.Now()
	output, err := t.next.Issue(ctx, input)
	metrics.Observe(ctx, t.metrics, "identity", "token_issue", start, err)
	return output, err
}

// Authenticate records metrics for token authentication.
func (t *tokenUseCaseWithMetrics) Authenticate(ctx context.Context, token string) (*domain.Principal, error) {
	start := time.Now()
	principal, err := t.next.Authenticate(ctx, token)
	metrics.Observe(ctx, t.metrics, "identity", "token_authenticate", start, err)
	return principal, err
}
