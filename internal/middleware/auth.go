package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/config"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// APIKeyHeader carries the key that authorizes listing changes
const APIKeyHeader = "api_key"

// APIKeyAuth guards provider routes such as create-food. A missing key is
// answered with 401 and an unknown one with 403, both as {"error": "..."} bodies.
func APIKeyAuth(cfg config.AuthConfig, log *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get(APIKeyHeader)

			switch {
			case apiKey == "":
				reject(w, r, log, http.StatusUnauthorized, "API key required")
			case !knownKey(cfg.APIKeys, apiKey):
				reject(w, r, log, http.StatusForbidden, "invalid API key")
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

func knownKey(keys []string, key string) bool {
	found := false
	for _, k := range keys {
		if subtle.ConstantTimeCompare([]byte(k), []byte(key)) == 1 {
			found = true
		}
	}
	return found
}

func reject(w http.ResponseWriter, r *http.Request, log *slog.Logger, status int, message string) {
	log.Warn("listing change rejected",
		"path", r.URL.Path,
		"status", status,
		"reason", message,
		"request_id", chimiddleware.GetReqID(r.Context()),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
