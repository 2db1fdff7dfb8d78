package middleware

import (
	"net/http"
	"strings"

	"taskflow/internal/auth"
	"taskflow/internal/httputil"
)

// Auth verifies the bearer token on every request and stores the claims in
// the request context. Paths in publicPaths pass through unauthenticated
// (health, metrics, signup, bootstrap check).
//
// Only the token signature is trusted here. Tenant membership and role are
// resolved from the profile table per request, never read from the token.
func Auth(verifier auth.TokenVerifier, publicPaths map[string]bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, httputil.WithClaims(r, claims))
		})
	}
}
