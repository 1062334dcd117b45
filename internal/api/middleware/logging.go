package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Vedant-Rajput22/hostel-complain-info/internal/auth"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/database/models"
)

const requestMetaKey contextKey = "request_meta"

// requestMeta is a mutable holder planted by Logging before auth runs.
// AuthRequired fills it in once the token checks out, so the access line
// carries the caller's identity even though auth sits further down the
// middleware chain.
type requestMeta struct {
	userID uint
	role   models.Role
}

func annotateIdentity(ctx context.Context, claims *auth.AccessClaims) {
	if meta, ok := ctx.Value(requestMetaKey).(*requestMeta); ok && claims != nil {
		meta.userID = claims.UserID
		meta.role = claims.Role
	}
}

type responseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}

// Logging writes one structured line per request: method, path, status,
// response size, latency and the caller (client ip, plus user_id and role
// when the request authenticated).
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			meta := &requestMeta{}
			ctx := context.WithValue(r.Context(), requestMetaKey, meta)
			wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(wrapped, r.WithContext(ctx))

			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.status,
				"bytes", wrapped.size,
				"duration_ms", time.Since(start).Milliseconds(),
				"ip", clientIP(r),
			}
			if meta.userID != 0 {
				attrs = append(attrs, "user_id", meta.userID, "role", meta.role)
			}
			logger.Info("request", attrs...)
		})
	}
}
