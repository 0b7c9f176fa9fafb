package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, provider *Provider) string {
	t.Helper()
	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider()

	require.NoError(t, err)
	assert.NotNil(t, provider.MeterProvider())
	assert.NotNil(t, provider.registry)
	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestProvider_IsolatedRegistries(t *testing.T) {
	first, err := NewProvider()
	require.NoError(t, err)
	second, err := NewProvider()
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(first.MeterProvider(), "onetimepassgen")
	require.NoError(t, err)
	bm.RecordOperation(context.Background(), "passwords", "generated_password_create", StatusSuccess)

	assert.Contains(t, scrape(t, first), "onetimepassgen_operations_total")
	assert.NotContains(t, scrape(t, second), "onetimepassgen_operations_total")
}

func TestProvider_Shutdown(t *testing.T) {
	t.Run("Success_NilMeterProvider", func(t *testing.T) {
		provider := &Provider{}
		assert.NoError(t, provider.Shutdown(context.Background()))
	})
}
