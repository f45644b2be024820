package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/prompt-library/internal/metrics"
)

// Metrics records request count, latency and in-flight requests on m.
//
// The route label is chi's route pattern ("/api/prompts/{id}"), read after
// the handler ran, so ids never end up as label values. Requests that match
// no route are labelled "unmatched".
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m.RequestStarted()
			start := time.Now()
			wrapped := wrap(w)

			next.ServeHTTP(wrapped, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}
			m.RequestFinished(r.Method, route, wrapped.statusCode, time.Since(start))
		})
	}
}
