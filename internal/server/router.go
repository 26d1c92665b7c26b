package server

import (
	"net/http"

	"github.com/agentstation/inetmap/internal/server/handlers"
	"github.com/agentstation/inetmap/internal/server/middleware"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()
	s.registerRoutes(mux, s.newHandlers())
	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.HandleFunc("GET /metrics", s.handleMetrics)
	mux.HandleFunc("GET "+prefix+"/health", h.HandleHealth)

	mux.HandleFunc("GET /{$}", h.HandlePage)
	mux.HandleFunc("GET /map.svg", h.HandleSVG)
	mux.HandleFunc("GET /map.png", h.HandlePNG)
	mux.HandleFunc("GET "+prefix+"/coverage", h.HandleCoverage)
	mux.HandleFunc("GET "+prefix+"/records", h.HandleRecords)
}

// applyMiddleware wraps handler with middleware chain.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	handler = middleware.Metrics(s.metrics)(handler)

	if s.config.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		if len(s.config.CORSOrigins) > 0 {
			corsConfig.AllowedOrigins = s.config.CORSOrigins
		} else {
			corsConfig.AllowAll = true
		}
		handler = middleware.CORS(corsConfig)(handler)
	}

	return middleware.Chain(
		middleware.Recovery(s.logger),
		middleware.Logger(s.logger),
	)(handler)
}
