package providers

import (
	"net/http"
	"time"
)

// statusRecorder remembers the first status code written so the middleware
// can label the request counter after the handler returns.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// MetricsMiddleware counts and times every request that reaches the API mux,
// labeled by the raw request path.
func MetricsMiddleware(metrics MetricsProviderInterface, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		metrics.IncRequestsTotal(r.URL.Path, rec.status)
		metrics.ObserveRequestDuration(r.URL.Path, time.Since(start))
	})
}
