package middleware

import (
	"crypto/subtle"
	"net/http"
)

// apiKeyHeader is the request header carrying the API key.
const apiKeyHeader = "X-API-KEY"

// AuthConfig holds the API keys accepted by write-protected routes. An empty
// key set disables authentication entirely.
type AuthConfig struct {
	keys []string
}

// NewAuthConfigWithKeys creates an AuthConfig accepting the given keys.
func NewAuthConfigWithKeys(keys []string) AuthConfig {
	return AuthConfig{keys: keys}
}

// Enabled reports whether any keys are configured.
func (c AuthConfig) Enabled() bool {
	return len(c.keys) > 0
}

// Accepts reports whether the given key matches a configured key.
func (c AuthConfig) Accepts(key string) bool {
	if key == "" {
		return false
	}
	for _, k := range c.keys {
		if subtle.ConstantTimeCompare([]byte(k), []byte(key)) == 1 {
			return true
		}
	}
	return false
}

// WriteProtect returns a middleware that requires a valid API key on
// mutating methods. Safe methods (GET, HEAD, OPTIONS) always pass, as does
// everything when no keys are configured.
func WriteProtect(config AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !config.Enabled() || isReadOnly(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			if !config.Accepts(r.Header.Get(apiKeyHeader)) {
				WriteError(w, r, NewAuthenticationError("missing or invalid API key"), nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WriteProtectAuth is a convenience wrapper building the config from a key
// list.
func WriteProtectAuth(keys []string) func(http.Handler) http.Handler {
	return WriteProtect(NewAuthConfigWithKeys(keys))
}

func isReadOnly(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}
