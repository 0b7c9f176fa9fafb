package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertMetricLine matches a sample by name, a partial label pattern and value. Extra
// OTel scope labels added by the exporter are tolerated.
func assertMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	assert.Regexp(t, name+`\{[^}]*`+labels+`[^}]*\} `+value, output)
}

func TestBusinessMetrics(t *testing.T) {
	provider, err := NewProvider()
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "onetimepassgen")
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordOperation(ctx, "passwords", "generated_password_create", StatusSuccess)
	bm.RecordOperation(ctx, "passwords", "generated_password_create", StatusSuccess)
	bm.RecordOperation(ctx, "identity", "token_issue", StatusError)
	bm.RecordDuration(ctx, "passwords", "generated_password_create", 50*time.Millisecond, StatusSuccess)
	bm.RecordDuration(ctx, "passwords", "generated_password_create", 70*time.Millisecond, StatusSuccess)

	output := scrape(t, provider)

	assertMetricLine(t, output, `onetimepassgen_operations_total`,
		`domain="passwords".*operation="generated_password_create".*status="success"`, `2`)
	assertMetricLine(t, output, `onetimepassgen_operations_total`,
		`domain="identity".*operation="token_issue".*status="error"`, `1`)
	assertMetricLine(t, output, `onetimepassgen_operation_duration_seconds_count`,
		`domain="passwords".*operation="generated_password_create".*status="success"`, `2`)
}

func TestObserve(t *testing.T) {
	provider, err := NewProvider()
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "observe")
	require.NoError(t, err)

	ctx := context.Background()
	Observe(ctx, bm, "passwords", "generated_password_get", time.Now(), nil)
	Observe(ctx, bm, "passwords", "generated_password_get", time.Now(), errors.New("not found"))
	Observe(ctx, bm, "passwords", "generated_password_get", time.Now(), errors.New("not found"))

	output := scrape(t, provider)

	assertMetricLine(t, output, `observe_operations_total`,
		`operation="generated_password_get".*status="success"`, `1`)
	assertMetricLine(t, output, `observe_operations_total`,
		`operation="generated_password_get".*status="error"`, `2`)
	assertMetricLine(t, output, `observe_operation_duration_seconds_count`,
		`operation="generated_password_get".*status="error"`, `2`)
}

func TestNoOpBusinessMetrics(t *testing.T) {
	noOp := NewNoOpBusinessMetrics()

	assert.IsType(t, &NoOpBusinessMetrics{}, noOp)
	assert.NotPanics(t, func() {
		Observe(context.Background(), noOp, "identity", "token_authenticate", time.Now(), nil)
	})
}
