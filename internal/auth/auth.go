// Package auth guards the SSE transport with a static bearer-key check.
// The stdio transport is local and unauthenticated.
package auth

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// ErrUnauthenticated is returned when no valid credentials are found.
var ErrUnauthenticated = errors.New("unauthenticated")

// Authenticator validates an incoming HTTP request.
type Authenticator interface {
	Authenticate(r *http.Request) error
}

// StaticAuthenticator accepts a fixed set of bearer keys.
type StaticAuthenticator struct {
	keys []string
}

// NewStaticAuthenticator creates an authenticator over the given keys.
func NewStaticAuthenticator(keys []string) *StaticAuthenticator {
	return &StaticAuthenticator{keys: keys}
}

func (a *StaticAuthenticator) Authenticate(r *http.Request) error {
	token, err := extractBearerToken(r)
	if err != nil {
		return err
	}
	for _, key := range a.keys {
		if subtle.ConstantTimeCompare([]byte(token), []byte(key)) == 1 {
			return nil
		}
	}
	return ErrUnauthenticated
}

func extractBearerToken(r *http.Request) (string, error) {
	value := r.Header.Get("Authorization")
	if value == "" {
		return "", ErrUnauthenticated
	}
	token := strings.TrimPrefix(value, "Bearer ")
	token = strings.TrimPrefix(token, "bearer ")
	if token == "" {
		return "", ErrUnauthenticated
	}
	return token, nil
}

// Middleware rejects unauthenticated requests before they reach the MCP
// handler.
func Middleware(a Authenticator, next http.Handler, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := a.Authenticate(r); err != nil {
			logger.Warn("rejected unauthenticated request",
				zap.String("remote_addr", r.RemoteAddr),
			)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
