package api

import (
	"net/http"

	"github.com/keyfob-dev/keyfob/internal/advisor"
	"github.com/keyfob-dev/keyfob/internal/config"
	"github.com/keyfob-dev/keyfob/internal/middleware"
)

var adv *advisor.Advisor

// Initialize stores the collaborators the handlers need.
func Initialize(advisorClient *advisor.Advisor) {
	adv = advisorClient
}

// Routes registers the API endpoints on the router.
func Routes(router *http.ServeMux) {
	cfg := config.GetServerConfig()

	// Rate limiting applies to the endpoints that hash per request.
	limit := func(next http.HandlerFunc) http.HandlerFunc { return next }
	if cfg != nil && cfg.RateLimit > 0 {
		limit = middleware.NewRateLimiter(cfg.RateLimit).Limit
	}

	router.HandleFunc("GET /api/ping", HandlePing)
	router.HandleFunc("POST /api/codes", middleware.ApiAuth(limit(HandleGenerateCode)))
	router.HandleFunc("POST /api/secrets/check", middleware.ApiAuth(limit(HandleCheckSecret)))
	router.HandleFunc("GET /api/codes/stream", middleware.ApiAuth(HandleCodeStream))
	router.HandleFunc("POST /api/advice", middleware.ApiAuth(HandleAdvice))
}
