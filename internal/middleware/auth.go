package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"protrack/internal/auth"
	"protrack/internal/httputil"
)

// Identify resolves the caller once per request and stores the user id
// in the request context. It accepts a Bearer session token, falling
// back to the legacy x-user-id header the older clients still send.
// Requests without either proceed anonymously; handlers that need an
// identity enforce it themselves.
func Identify(tokens *auth.TokenIssuer, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
				userID, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
				if err != nil {
					logger.Debug("rejected bearer token", "error", err)
					httputil.RespondError(w, http.StatusUnauthorized, "invalid session token")
					return
				}
				next.ServeHTTP(w, httputil.WithUserID(r, userID))
				return
			}

			if userID := r.Header.Get("x-user-id"); userID != "" {
				next.ServeHTTP(w, httputil.WithUserID(r, userID))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
