package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/sellwise/internal/api/shared"
	"github.com/phrazzld/sellwise/internal/platform/logger"
)

// TraceMiddleware adds a trace ID to the request context and echoes it in the
// X-Trace-ID response header. A well-formed X-Trace-ID request header is
// reused. The request context also receives a logger tagged with the trace ID.
func TraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.WithTraceID(r.Context(), r.Header.Get(shared.TraceIDHeader))
			traceID := shared.GetTraceID(ctx)

			log := base
			if log == nil {
				log = slog.Default()
			}
			log = log.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)

			w.Header().Set(shared.TraceIDHeader, traceID)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
