package middleware

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/keyfob-dev/keyfob/internal/config"
	"github.com/keyfob-dev/keyfob/internal/util/rest"
)

func returnUnauthorized(w http.ResponseWriter, r *http.Request) {
	rest.WriteError(http.StatusUnauthorized, w, r, "Authentication token is not valid")
}

// GetBearerToken extracts the bearer token from the Authorization header,
// answering 401 when it is missing.
func GetBearerToken(w http.ResponseWriter, r *http.Request) string {
	var bearer string
	fmt.Sscanf(r.Header.Get("Authorization"), "Bearer %s", &bearer)
	if len(bearer) < 1 {
		returnUnauthorized(w, r)
		return ""
	}

	return bearer
}

// ApiAuth requires the configured bearer token on a handler. When no token
// is configured the API is open and the check is skipped.
func ApiAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := config.GetServerConfig()
		if cfg != nil && cfg.Token != "" {
			bearer := GetBearerToken(w, r)
			if bearer == "" {
				return
			}

			if subtle.ConstantTimeCompare([]byte(bearer), []byte(cfg.Token)) != 1 {
				returnUnauthorized(w, r)
				return
			}
		}

		next(w, r)
	}
}
