// Package middleware provides HTTP middleware for origin checks and request logging.
package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
)

var extensionOrigin = regexp.MustCompile(`^chrome-extension://[a-z]{32}$`)

// OriginAllowed reports whether a browser origin may call the API. An empty
// origin (curl, same-origin, server-to-server) is always allowed, as is any
// Chrome extension.
func OriginAllowed(origin string, allowed map[string]bool) bool {
	return origin == "" || allowed[origin] || extensionOrigin.MatchString(origin)
}

// CORS rejects requests from origins outside the allowlist with 403 and
// answers preflight requests for allowed ones.
func CORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if !OriginAllowed(origin, allowed) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"success": false,
					"error":   fmt.Sprintf("Not allowed by CORS: %s", origin),
				})
				return
			}

			if origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
