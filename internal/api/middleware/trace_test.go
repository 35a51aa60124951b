package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/jsonapi-utils/internal/api/middleware"
	"github.com/phrazzld/jsonapi-utils/internal/api/shared"
	"github.com/phrazzld/jsonapi-utils/internal/platform/logger"
	"github.com/phrazzld/jsonapi-utils/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMiddleware(t *testing.T) {
	t.Parallel()
	capture, log := testutils.NewLogCapture()

	var seen string
	handler := middleware.NewTraceMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/posts", nil))

	require.NotEmpty(t, seen)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(shared.TraceIDHeader))

	var found bool
	for _, e := range capture.Entries() {
		if e["message"] == "inside handler" {
			found = true
			assert.Equal(t, seen, e["trace_id"])
		}
	}
	assert.True(t, found, "handler log entry carries the trace id")
}

func TestTraceIDsAreUnique(t *testing.T) {
	t.Parallel()

	ids := map[string]bool{}
	handler := middleware.NewTraceMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids[shared.GetTraceID(r.Context())] = true
	}))
	for range 10 {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}
	assert.Len(t, ids, 10)
}
