package middleware

import (
	"net/http"

	"github.com/noah-isme/backend-kasir/internal/common"
)

// RequireBusiness rejects requests whose identity carries no business. Every
// read and write below it is filtered by that business id.
func RequireBusiness(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := common.BusinessID(r.Context()); !ok {
			common.WriteError(w, common.Unauthenticated("business context required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
