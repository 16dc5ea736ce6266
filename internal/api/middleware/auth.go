package middleware

import (
	"net/http"
	"strings"

	"github.com/tadeyina/stayhaven/internal/infrastructure/auth"
)

// AuthMiddleware extracts the viewer token from the session cookie or a
// bearer header and stashes it on the request context. Resolution of the
// token into a user happens lazily, only when a resolver needs the viewer.
func AuthMiddleware(cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ""

			if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
				token = cookie.Value
			} else if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
				token = strings.TrimPrefix(header, "Bearer ")
			}

			if token != "" {
				r = r.WithContext(auth.WithToken(r.Context(), token))
			}
			next.ServeHTTP(w, r)
		})
	}
}
