package expense

import (
	"log/slog"
	"net/http"
)

// Server exposes the store and query engine over HTTP for the browser UI
type Server struct {
	store     *Store
	validator *Validator
	mux       *http.ServeMux
}

// NewServer creates a new Server with default mux
func NewServer(store *Store, validator *Validator) *Server {
	return NewServerWithMux(store, validator, http.NewServeMux())
}

// NewServerWithMux creates a new Server with a custom mux for testing
func NewServerWithMux(store *Store, validator *Validator, mux *http.ServeMux) *Server {
	s := &Server{
		store:     store,
		validator: validator,
		mux:       mux,
	}
	s.registerRoutes()
	return s
}

// corsMiddleware adds CORS headers to responses
func (s *Server) corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setCORSHeaders(w)

		// Handle preflight OPTIONS requests
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// registerRoutes registers all API routes on the server's mux.
// Routes must be registered from most specific to least specific to avoid conflicts.
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("DELETE /api/expenses/{id}/notes/{index}", s.handleDeleteNote)
	s.mux.HandleFunc("POST /api/expenses/{id}/notes", s.handleAddNote)
	s.mux.HandleFunc("POST /api/expenses/{id}/status", s.handleUpdateStatus)
	s.mux.HandleFunc("POST /api/expenses/status", s.handleBulkUpdateStatus)
	s.mux.HandleFunc("GET /api/expenses/{id}", s.handleGetExpense)
	s.mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)
	s.mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	s.mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	slog.Info("Starting server", "address", addr)
	// Wrap the mux with CORS middleware to handle all requests including OPTIONS
	return http.ListenAndServe(addr, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.corsMiddleware(func(w http.ResponseWriter, r *http.Request) {
			s.mux.ServeHTTP(w, r)
		})(w, r)
	}))
}

// ServeHTTP implements http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
