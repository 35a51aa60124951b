package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/jsonapi-utils/internal/api/shared"
	"github.com/phrazzld/jsonapi-utils/internal/platform/logger"
)

// NewTraceMiddleware returns middleware that adds a trace ID to the request
// context and response headers, and stores a logger carrying it in the
// context. It should be applied early in the middleware chain so that all
// subsequent handlers have access to the trace ID.
// If log is nil, the default logger is used.
func NewTraceMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			traceID := shared.GetTraceID(ctx)

			reqLog := log.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, reqLog)

			reqLog.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			w.Header().Set(shared.TraceIDHeader, traceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
