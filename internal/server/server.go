// Package server exposes the CRM over HTTP: the two-step smart-intake
// endpoints plus the conventional record, search, and document routes.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/keyturn-crm/keyturn/internal/intake"
	"github.com/keyturn-crm/keyturn/internal/service"
)

// Server wires the HTTP routes to storage and the intake workflow.
type Server struct {
	store    service.Storage
	workflow *intake.Workflow
	router   *mux.Router
}

// NewServer creates a server over the given storage.
func NewServer(store service.Storage) *Server {
	s := &Server{
		store:    store,
		workflow: intake.NewWorkflow(store),
		router:   mux.NewRouter(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(s.logRequests)

	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Smart intake
	s.router.HandleFunc("/ingest", s.handleIngest).Methods("POST")
	s.router.HandleFunc("/ingest/confirm", s.handleIngestConfirm).Methods("POST")

	// Records
	s.router.HandleFunc("/contacts", s.handleListContacts).Methods("GET")
	s.router.HandleFunc("/contacts", s.handleCreateContact).Methods("POST")
	s.router.HandleFunc("/properties", s.handleListProperties).Methods("GET")
	s.router.HandleFunc("/properties", s.handleCreateProperty).Methods("POST")
	s.router.HandleFunc("/transactions", s.handleListTransactions).Methods("GET")
	s.router.HandleFunc("/transactions", s.handleCreateTransaction).Methods("POST")

	// Attr search
	s.router.HandleFunc("/search/contacts/by-attr", s.handleSearchContactsByAttr).Methods("GET")
	s.router.HandleFunc("/search/properties/number-attr-gte", s.handleSearchPropertiesByNumberAttr).Methods("GET")

	// Documents
	s.router.HandleFunc("/documents/upload", s.handleUploadDocument).Methods("POST")
	s.router.HandleFunc("/documents", s.handleListDocuments).Methods("GET")
	s.router.HandleFunc("/documents/{id}/download", s.handleDownloadDocument).Methods("GET")
}

// Handler returns the router for mounting or testing.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the server until the context is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSONResponse(w, http.StatusOK, map[string]any{"ok": true})
}

// logRequests logs each request with method, path, and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("handled request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start))
	})
}
