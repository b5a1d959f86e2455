package api

import (
	"context"
	"net/http"
	"time"

	"github.com/Tesseract-Nexus/admin-bff/internal/auth"
	"github.com/Tesseract-Nexus/admin-bff/internal/config"
	"github.com/Tesseract-Nexus/admin-bff/internal/service/audit"
	"github.com/Tesseract-Nexus/admin-bff/internal/settings"
)

// Server is the BFF HTTP server.
type Server struct {
	config   config.ServerConfig
	handler  http.Handler
	handlers *Handlers
	server   *http.Server
}

// NewServer wires the handlers and routes. ctx bounds background list
// refreshes; auditSvc may be nil.
func NewServer(ctx context.Context, cfg *config.Config, auditSvc *audit.Service, settingsStore settings.Store) *Server {
	handlers := NewHandlers(ctx, cfg, auditSvc, settingsStore)
	router := SetupRoutes(handlers, auth.NewVerifier(cfg.Auth), cfg.CORS)

	return &Server{
		config:   cfg.Server,
		handler:  router,
		handlers: handlers,
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.handler
}
