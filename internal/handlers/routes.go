package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// conditionalHTTPLogger only logs HTTP requests when HTTP logging is enabled
func (h *Handlers) conditionalHTTPLogger(next http.Handler) http.Handler {
	logger := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Log != nil && h.Log.IsHTTPLoggingEnabled() {
			logger.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.conditionalHTTPLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Timeout(60 * time.Second))

	// Static files (served from embedded filesystem)
	r.Handle("/static/*", http.StripPrefix("/static/", h.staticServer))

	// Game page
	r.Get("/", h.handleIndex)

	// WebSocket (session-scoped re-render push)
	r.Get("/ws", h.handleWS)

	// Join-by-phone QR code
	r.Get("/qr", h.handleQR)

	// Draft API
	r.Get("/api/leagues", h.handleGetLeagues)
	r.Post("/api/league", h.handleSelectLeague)
	r.Get("/api/state", h.handleGetState)
	r.Post("/api/spin", h.handleSpin)
	r.Get("/api/eligible/{slot}", h.handleGetEligible)
	r.Post("/api/pick", h.handleConfirmPick)
	r.Post("/api/respin", h.handleReSpin)
	r.Post("/api/ai-draft", h.handleAIDraft)
	r.Get("/api/matchup", h.handleGetMatchup)
	r.Post("/api/reset", h.handleReset)

	return r
}
