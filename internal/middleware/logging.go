package middleware

import (
	"context"
	"net/http"
	"time"

	"gadget-shop-be/internal/logger"

	"go.uber.org/zap"
)

type accessKey struct{}

// accessEntry is filled by inner guards; they see a derived context, not
// the request the access log holds.
type accessEntry struct {
	email string
}

func noteEmail(ctx context.Context, email string) {
	if e, ok := ctx.Value(accessKey{}).(*accessEntry); ok {
		e.email = email
	}
}

// responseRecorder lets us capture HTTP status codes
type responseRecorder struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (r *responseRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.statusCode = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}

// LoggingMiddleware writes one access-log line per request, including the
// token email when RequireAuth admitted the request.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		entry := &accessEntry{}
		r = r.WithContext(context.WithValue(r.Context(), accessKey{}, entry))

		rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rec, r)

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.statusCode),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote_ip", r.RemoteAddr),
		}
		if entry.email != "" {
			fields = append(fields, zap.String("email", entry.email))
		}

		log := logger.FromCtx(r.Context())
		switch {
		case rec.statusCode >= http.StatusInternalServerError:
			log.Error("HTTP Request", fields...)
		case rec.statusCode >= http.StatusBadRequest:
			log.Warn("HTTP Request", fields...)
		default:
			log.Info("HTTP Request", fields...)
		}
	})
}
