package middleware

import (
	"net/http"
	"time"
)

// StatusRecorder is satisfied by metrics.Collector.
type StatusRecorder interface {
	Record(status int, duration time.Duration)
}

func Metrics(collector StatusRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if collector == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)
			collector.Record(recorder.status, time.Since(start))
		})
	}
}
