package middle

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

type MetricsRecorder interface {
	Observe(method, path string, duration time.Duration)
}

// Metrics labels requests with the matched chi route pattern, so
// /monitors/{monitorID} is one series however many ids exist.
func Metrics(recorder MetricsRecorder) Middleware {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			recorder.Observe(
				r.Method,
				routePattern(r),
				time.Since(start),
			)
		}
		return http.HandlerFunc(fn)
	}
}

func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return r.URL.Path
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return "unmatched"
}
