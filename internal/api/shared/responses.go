package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/jsonapi-utils/internal/apierror"
	"github.com/phrazzld/jsonapi-utils/internal/document"
	"github.com/phrazzld/jsonapi-utils/internal/platform/logger"
	"github.com/phrazzld/jsonapi-utils/internal/redact"
)

// MediaType is the JSON:API media type.
const MediaType = "application/vnd.api+json"

// RespondWithJSON writes data as a JSON:API response with the given status.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", MediaType)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response", redact.ErrorAttr(err))
	}
}

// RespondWithErrors writes source as an error document. The status is taken
// from the first error, defaulting to 400. The trace ID, when present, is
// added to the document meta.
func RespondWithErrors(w http.ResponseWriter, r *http.Request, source any) int {
	doc := document.Errors(source)
	status := apierror.Status(doc.Errors, apierror.DefaultStatus)
	if traceID := GetTraceID(r.Context()); traceID != "" {
		doc.Meta = map[string]any{"trace_id": traceID}
	}

	logger.FromContext(r.Context()).Debug("sending error response",
		slog.Int("status_code", status),
		slog.Int("errors", len(doc.Errors)),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method))

	RespondWithJSON(w, r, status, doc)
	return status
}

// RespondWithErrorAndLog writes source as an error document and logs the
// underlying err, redacted.
//
// Log level strategy:
// - 5xx errors: Always logged at ERROR level
// - 4xx errors: Logged at DEBUG level
func RespondWithErrorAndLog(w http.ResponseWriter, r *http.Request, source any, err error) {
	doc := document.Errors(source)
	status := apierror.Status(doc.Errors, apierror.DefaultStatus)

	attrs := []slog.Attr{
		slog.String("trace_id", GetTraceID(r.Context())),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
	}
	if err != nil {
		attrs = append(attrs, redact.ErrorAttr(err), slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	level := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logger.FromContext(r.Context()).LogAttrs(r.Context(), level, "API error response", attrs...)

	RespondWithErrors(w, r, source)
}
