package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/kitchenrun/pkg/observability"
)

// requestLogger logs one line per request and reports it to the HTTP
// hooks under its route pattern.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			hooks := observability.HTTP()

			next.ServeHTTP(ww, r)

			route := r.URL.Path
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				route = rc.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			hooks.OnRequest(r.Context(), r.Method, route)
			hooks.OnResponse(r.Context(), r.Method, route, status, time.Since(start))

			logFn := logger.Info
			if status >= 500 {
				logFn = logger.Error
			}
			logFn("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"id", middleware.GetReqID(r.Context()))
		})
	}
}
