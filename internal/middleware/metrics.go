package middleware

import (
	"net/http"
	"strconv"
	"time"

	"taskflow/internal/metrics"
)

// statusRecorder captures the status code written by the handler so the
// metrics middleware can label by it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Metrics records request count and duration for every request. The route
// label is resolved against the mux directly; inner middleware clones the
// request (auth attaches claims via a new context), so the pattern the mux
// stamps on its own copy never propagates back out here. Asking the mux
// keeps path cardinality bounded either way.
func Metrics(mux *http.ServeMux) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			_, path := mux.Handler(r)
			if path == "" {
				path = "unmatched"
			}
			status := strconv.Itoa(rec.status)

			metrics.RequestCounter.WithLabelValues(r.Method, path, status).Inc()
			metrics.RequestDurationHistogram.WithLabelValues(r.Method, path, status).
				Observe(time.Since(start).Seconds())
		})
	}
}
