package formhttp

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/dmitrymomot/formguard/pkg/logger"
)

// RequestIDHeader carries the request correlation id.
const RequestIDHeader = "X-Request-ID"

var validRequestID = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,128}$`)

type requestIDKey struct{}

// RequestIDFromContext returns the request id stored by the router, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestIDExtractor adds the request id to log records; pass it to
// logger.WithContextExtractors.
func RequestIDExtractor(ctx context.Context) (slog.Attr, bool) {
	if id := RequestIDFromContext(ctx); id != "" {
		return logger.RequestID(id), true
	}
	return slog.Attr{}, false
}

// requestID reuses a well-formed client id or generates a new one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if !validRequestID.MatchString(id) {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.DebugContext(r.Context(), "request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}
