package middleware

import "net/http"

// DefaultMaxBodyBytes is the request body limit applied to the API.
const DefaultMaxBodyBytes int64 = 2 << 20

// MaxBody caps request bodies at limit bytes. Reads past the limit fail,
// which JSON decoding surfaces as a 400. Requests announcing a larger
// Content-Length are rejected up front with 413.
func MaxBody(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				http.Error(w, "Request Entity Too Large", http.StatusRequestEntityTooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
