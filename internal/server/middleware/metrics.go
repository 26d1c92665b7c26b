package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/VictoriaMetrics/metrics"
)

// Metrics counts requests and records their latency in set, labelled by
// the matched route pattern. It must wrap the ServeMux directly so the
// pattern is visible after the request is served.
func Metrics(set *metrics.Set) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			set.GetOrCreateCounter(fmt.Sprintf(`inetmap_http_requests_total{route=%q,status="%d"}`,
				route, wrapped.statusCode)).Inc()
			set.GetOrCreateHistogram(fmt.Sprintf(`inetmap_http_request_duration_seconds{route=%q}`,
				route)).UpdateDuration(start)
		})
	}
}
