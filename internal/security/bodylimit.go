package security

import (
	"net/http"

	"github.com/noah-isme/backend-kasir/internal/common"
)

// BodyLimit caps request payloads. Declared oversize bodies are refused up
// front; undeclared ones fail on read with *http.MaxBytesError.
type BodyLimit struct {
	Max int64
}

// Middleware answers 413 when Content-Length exceeds Max.
func (b BodyLimit) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if b.Max <= 0 || r.Body == nil {
			next.ServeHTTP(w, r)
			return
		}
		if r.ContentLength > b.Max {
			common.JSONError(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "request entity too large", nil)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, b.Max)
		next.ServeHTTP(w, r)
	})
}
