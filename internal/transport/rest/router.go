package rest

import (
	"net/http"

	"github.com/vibecraft/vibecraft-backend/internal/transport/middleware"
)

// NewRouter registers all HTTP routes and wraps them with the given
// middleware chain (outermost first).
func NewRouter(vibes *VibeHandler, health *HealthHandler, mws ...middleware.Middleware) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)

	mux.HandleFunc("POST /api/vibes", vibes.Generate)
	mux.HandleFunc("GET /api/vibes", vibes.List)
	mux.HandleFunc("POST /api/vibes/{id}/save", vibes.Save)
	mux.HandleFunc("POST /api/vibes/{id}/share", vibes.Share)
	mux.HandleFunc("POST /api/vibes/{id}/narrate", vibes.Narrate)
	mux.HandleFunc("GET /api/shared/{shareId}", vibes.Shared)
	mux.HandleFunc("GET /api/activity", vibes.Activity)

	return middleware.Chain(mws...)(mux)
}
