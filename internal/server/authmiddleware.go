package server

import (
	"net/http"

	"github.com/utsavlabs/eventplanner/internal/auth"
)

// AuthMiddleware rejects requests that do not carry the configured bearer
// token. Validation runs before any tool logic; a missing or mismatched token
// never reaches the MCP handler.
func AuthMiddleware(authenticator *auth.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.ExtractToken(r)
			if err != nil {
				http.Error(w, "Missing or malformed Authorization header", http.StatusUnauthorized)
				return
			}

			if err := authenticator.ValidateToken(token); err != nil {
				http.Error(w, "Invalid bearer token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
