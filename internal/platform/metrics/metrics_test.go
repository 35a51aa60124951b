package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/jsonapi-utils/internal/document"
	"github.com/phrazzld/jsonapi-utils/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ document.Observer = (*metrics.Metrics)(nil)

func TestObserveBuild(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg, reg)

	m.ObserveBuild("collection", 3, 2*time.Millisecond)
	m.ObserveBuild("collection", 2, time.Millisecond)
	m.ObserveBuild("single", 1, time.Millisecond)

	n, err := testutil.GatherAndCount(reg, "jsonapi_document_build_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	families, err := reg.Gather()
	require.NoError(t, err)

	totals := map[string]float64{}
	for _, mf := range families {
		if mf.GetName() != "jsonapi_document_resources_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			totals[metric.GetLabel()[0].GetValue()] = metric.GetCounter().GetValue()
		}
	}
	assert.Equal(t, map[string]float64{"collection": 5, "single": 1}, totals)
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	t.Parallel()
	m := metrics.New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/posts/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/metrics", m.Handler().ServeHTTP)

	for _, id := range []string{"1", "2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/posts/"+id, nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(),
		`jsonapi_http_requests_total{method="GET",route="/api/posts/{id}",status="404"} 2`)
}
