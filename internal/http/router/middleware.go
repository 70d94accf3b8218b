package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"usermgmt/internal/logging"
)

// requestTimeout bounds one request, including the web UI's round trip to
// the users API.
const requestTimeout = 30 * time.Second

func useBaseMiddlewares(r chi.Router, logger logging.Logger) {
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Use(requestLoggingMiddleware(logger))

	r.Use(middleware.Timeout(requestTimeout))
}

func requestLoggingMiddleware(logger logging.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			fields := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_ip", r.RemoteAddr,
			}
			if r.Header.Get("HX-Request") == "true" {
				fields = append(fields, "htmx", true)
			}

			// probes hit every few seconds
			if isProbe(r.URL.Path) && ww.Status() < http.StatusInternalServerError {
				logger.Debug("http_request", fields...)
				return
			}
			logger.Info("http_request", fields...)
		})
	}
}

func isProbe(path string) bool {
	return path == "/healthz" || strings.HasSuffix(path, "/health")
}
