// Package auth validates the single bearer token every tool call must carry.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"
)

// Authenticator checks presented tokens against the one process-configured
// secret. Comparison runs over SHA-256 digests in constant time.
type Authenticator struct {
	tokenHash [sha256.Size]byte
}

// NewAuthenticator creates an authenticator for the configured secret.
func NewAuthenticator(token string) *Authenticator {
	return &Authenticator{tokenHash: sha256.Sum256([]byte(token))}
}

// ValidateToken checks a presented bearer token.
func (a *Authenticator) ValidateToken(token string) error {
	hash := sha256.Sum256([]byte(token))
	if subtle.ConstantTimeCompare(hash[:], a.tokenHash[:]) != 1 {
		return fmt.Errorf("invalid bearer token")
	}
	return nil
}

// ExtractToken extracts the bearer token from the Authorization header.
func ExtractToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", fmt.Errorf("missing Authorization header")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid Authorization header format")
	}

	if !strings.EqualFold(parts[0], "bearer") {
		return "", fmt.Errorf("unsupported authorization scheme")
	}

	return parts[1], nil
}
