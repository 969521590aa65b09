package web

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/vbonduro/pantrychef/internal/metrics"
	"github.com/vbonduro/pantrychef/internal/service"
)

// UserHeader carries the opaque id of the user a request acts for.
const UserHeader = "X-User-ID"

type Options struct {
	// DefaultUserID applies when a request has no UserHeader.
	DefaultUserID  string
	MetricsEnabled bool
}

type Server struct {
	pantry    *service.PantryService
	groceries *service.GroceryService
	opts      Options
	mux       *http.ServeMux
	logger    *slog.Logger
}

func NewServer(pantry *service.PantryService, groceries *service.GroceryService, opts Options, logger *slog.Logger) *Server {
	s := &Server{
		pantry:    pantry,
		groceries: groceries,
		opts:      opts,
		mux:       http.NewServeMux(),
		logger:    logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	s.mux.HandleFunc("GET /leftovers", s.handleListLeftovers)
	s.mux.HandleFunc("POST /leftovers", s.handleAddLeftover)
	s.mux.HandleFunc("DELETE /leftovers/{id}", s.handleRemoveLeftover)
	s.mux.HandleFunc("POST /leftovers/bulk-delete", s.handleRemoveLeftovers)
	s.mux.HandleFunc("GET /leftovers/stats", s.handleLeftoverStats)
	s.mux.HandleFunc("POST /meals/complete", s.handleCompleteMeal)
	s.mux.HandleFunc("POST /recipes/generate", s.handleGenerateRecipe)

	s.mux.HandleFunc("GET /groceries", s.handleListGroceries)
	s.mux.HandleFunc("POST /groceries", s.handleAddGroceries)
	s.mux.HandleFunc("POST /groceries/import", s.handleImportGroceries)
	s.mux.HandleFunc("PATCH /groceries/{id}", s.handleUpdateGrocery)
	s.mux.HandleFunc("POST /groceries/{id}/toggle", s.handleToggleGrocery)
	s.mux.HandleFunc("DELETE /groceries/{id}", s.handleRemoveGrocery)
	s.mux.HandleFunc("DELETE /groceries/completed", s.handleClearCompleted)
	s.mux.HandleFunc("POST /groceries/from-recipe", s.handleAddFromRecipe)
	s.mux.HandleFunc("GET /groceries/prices", s.handleComparePrices)
	s.mux.HandleFunc("GET /groceries/suggestions", s.handleSuggestions)

	if s.opts.MetricsEnabled {
		s.mux.Handle("GET /metrics", metrics.Handler())
	}
}

// securityHeaders sets security-related response headers on every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		h.Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// requestLogger logs and counts every request. The mux fills in r.Pattern, so
// metrics are labelled by route rather than raw path.
func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		elapsed := time.Since(start)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveRequest(r.Method, route, rec.status, elapsed)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", elapsed.Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, securityHeaders(s.mux)).ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return srv.ListenAndServe()
}

// userID resolves the acting user from UserHeader, falling back to the
// configured default.
func (s *Server) userID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(UserHeader)); id != "" {
		return id
	}
	return s.opts.DefaultUserID
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
