package middleware

import (
	"net/http"

	"payroll/internal/transport/http/api"
	"payroll/internal/transport/http/shared"
)

// BodyLimit caps form and JSON submissions at maxBytes. A declared length
// over the cap is refused before the handler runs; anything else is cut off
// while the handler reads.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if maxBytes <= 0 || r.Body == nil || r.Body == http.NoBody {
				next.ServeHTTP(w, r)
				return
			}
			if r.ContentLength > maxBytes {
				if shared.WantsJSON(r) {
					api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", GetRequestID(r.Context()))
					return
				}
				http.Error(w, "Submission is too large.", http.StatusRequestEntityTooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
