package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"riskreport-backend/pkg/observability"
)

// Metrics records per-route request counts and latencies. The chi route
// pattern is used as the label, not the raw path, so account identifiers do
// not explode label cardinality.
func Metrics(collector *observability.Collector) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}

			collector.ObserveHTTP(
				r.Method,
				route,
				strconv.Itoa(ww.Status()),
				time.Since(start),
			)
		})
	}
}
