// Package web provides the JSON API server for homefinder.
package web

import (
	"log/slog"
	"net/http"

	"github.com/homefinder-ke/homefinder/internal/assistant"
	"github.com/homefinder-ke/homefinder/internal/catalog"
	"github.com/homefinder-ke/homefinder/internal/logging"
	"github.com/homefinder-ke/homefinder/internal/session"
)

// Server is the homefinder HTTP server. It serves the catalog read-only and
// mutates one shared session for cart and viewing state.
type Server struct {
	store        *catalog.Store
	session      *session.Session
	orchestrator *assistant.Orchestrator
	mux          *http.ServeMux
}

// NewServer creates a server over the given catalog and session state.
// orchestrator may be nil; the chat endpoint then responds 503.
func NewServer(store *catalog.Store, sess *session.Session, orchestrator *assistant.Orchestrator) *Server {
	s := &Server{
		store:        store,
		session:      sess,
		orchestrator: orchestrator,
		mux:          http.NewServeMux(),
	}

	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/properties", s.handleProperties)
	s.mux.HandleFunc("/api/properties/", s.handlePropertyRoute)
	s.mux.HandleFunc("/api/search", s.handleSearch)
	s.mux.HandleFunc("/api/stats", s.handleStats)
	s.mux.HandleFunc("/api/cart", s.handleCart)
	s.mux.HandleFunc("/api/cart/", s.handleCartItem)
	s.mux.HandleFunc("/api/viewings", s.handleViewings)
	s.mux.HandleFunc("/api/chat", s.handleChat)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server with request logging.
func (s *Server) ListenAndServe(addr string) error {
	slog.Info("starting server", "addr", addr)
	return http.ListenAndServe(addr, logging.RequestLogger(s))
}
