package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/etude-leroux/site-api/internal/utils"
)

// AdminAuth guards the CMS routes with a static service token. An empty
// configured token disables the routes entirely rather than leaving
// them open.
func AdminAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized,
					"Admin API is not configured", nil,
				)
				return
			}

			authHeader := r.Header.Get("Authorization")
			presented, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized,
					"Invalid or missing admin token", nil,
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
