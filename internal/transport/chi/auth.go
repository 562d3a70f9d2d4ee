package chi

import (
	"net/http"
	"strings"

	"github.com/staylens/staylens/internal/config"
	"github.com/staylens/staylens/internal/domain"
)

// exemptPaths are routes that bypass authentication (health, metrics).
var exemptPaths = map[string]struct{}{
	"/v1/health": {},
	"/metrics":   {},
}

// BearerAuthMiddleware returns a middleware that validates Bearer tokens
// and attaches the token's identity to the request context.
// With allowAnonymous set, requests without a token pass through as
// anonymous callers; a token that is present must still be valid.
func BearerAuthMiddleware(cfg config.AuthConfig) func(http.Handler) http.Handler {
	identities := make(map[string]domain.Identity, len(cfg.APIKeys))
	for _, k := range cfg.APIKeys {
		if k.Key != "" {
			identities[k.Key] = domain.Identity{UserID: k.UserID}
		}
	}

	return func(next http.Handler) http.Handler {
		// Auth disabled, pass everything through
		if len(identities) == 0 && cfg.AllowAnonymous {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Exempt paths
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" {
				if cfg.AllowAnonymous {
					next.ServeHTTP(w, r)
					return
				}
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing authorization header")
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(auth, bearerPrefix) {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "authorization header must use Bearer scheme")
				return
			}

			token := auth[len(bearerPrefix):]
			id, ok := identities[token]
			if !ok {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "invalid api key")
				return
			}

			next.ServeHTTP(w, r.WithContext(domain.ContextWithIdentity(r.Context(), id)))
		})
	}
}
