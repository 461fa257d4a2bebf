package middleware

import (
	"net/http"
	"time"

	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/metrics"
)

// Metrics observes every request after the handler finishes, keyed by the chi
// route pattern so path parameters do not explode the label space.
func Metrics(httpMetrics *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if httpMetrics == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			httpMetrics.Observe(r.Method, routePattern(r), rec.status, time.Since(start))
		})
	}
}
