package webserver

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// RequestLogConfig configures the access log service.
type RequestLogConfig struct {
	Logger zerolog.Logger

	// serverName is set internally from the server's Name.
	serverName string

	// SkipPaths are paths that should not be logged, e.g. probe
	// endpoints hit every few seconds.
	SkipPaths []string
}

// RequestLog returns middleware that writes one structured log event per
// completed request: method, path, status, duration, bytes, remote
// address, and the request ID when present. Severity escalates with the
// status code (4xx warn, 5xx error).
func RequestLog(cfg RequestLogConfig) Middleware {
	skipPaths := make(map[string]bool)
	for _, path := range cfg.SkipPaths {
		skipPaths[path] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skipPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			wrapped := wrapResponseWriter(w)

			next.ServeHTTP(wrapped, r)

			event := cfg.Logger.Info()
			if wrapped.Status() >= 400 {
				event = cfg.Logger.Warn()
			}
			if wrapped.Status() >= 500 {
				event = cfg.Logger.Error()
			}

			event.
				Str("server", cfg.serverName).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", wrapped.Status()).
				Dur("duration", time.Since(start)).
				Int("bytes", wrapped.BytesWritten()).
				Str("remote_addr", r.RemoteAddr).
				Str("user_agent", r.UserAgent())

			if requestID := RequestIDFromContext(r.Context()); requestID != "" {
				event.Str("request_id", requestID)
			}

			event.Msg("request completed")
		})
	}
}
