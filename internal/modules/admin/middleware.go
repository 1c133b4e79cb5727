package admin

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// RequireAdmin guards administrative routes. A request passes with either the
// static shared secret in X-Admin-Key or a bearer token previously issued by
// the login exchange. The key comparison is constant-time.
func RequireAdmin(secretKey string, tokens *TokenManager, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key := r.Header.Get("X-Admin-Key"); key != "" && secretKey != "" &&
				subtle.ConstantTimeCompare([]byte(key), []byte(secretKey)) == 1 {
				next.ServeHTTP(w, r)
				return
			}

			if auth := r.Header.Get("Authorization"); auth != "" {
				parts := strings.SplitN(auth, " ", 2)
				if len(parts) == 2 && parts[0] == "Bearer" {
					err := tokens.Verify(parts[1])
					if err == nil {
						next.ServeHTTP(w, r)
						return
					}
					log.Warn("rejected admin token", zap.Error(err))
				}
			}

			log.Warn("admin access denied", zap.String("path", r.URL.Path))
			respondError(w, http.StatusForbidden, "access denied: invalid admin key")
		})
	}
}
