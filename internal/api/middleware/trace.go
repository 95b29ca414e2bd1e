package middleware

import (
	"log/slog"
	"net/http"

	"github.com/nexotime/nexotime/internal/api/shared"
)

// TraceMiddleware stamps the request context with a trace ID and logs the
// request start under it. Error responses echo the same ID back to the
// client, so a reported failure can be matched to server logs. Install it
// before any handler that calls shared.GetTraceID.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())

		log := slog.With(slog.String("trace_id", shared.GetTraceID(ctx)))
		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
