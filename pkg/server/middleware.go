package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/observability"
)

// instrument logs each request and reports it to the HTTP hooks, labelled
// with the matched route pattern rather than the raw path.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		duration := time.Since(start)

		observability.HTTP().OnRequest(r.Context(), r.Method, route, status, duration)
		s.logger.Debug("Request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", duration.Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
