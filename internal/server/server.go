// Package server provides the HTTP REST API for the resume builder.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/workspace"
)

// DraftStore persists saved drafts. *db.DB satisfies it.
type DraftStore interface {
	SaveDraft(ctx context.Context, input *db.DraftInput) (*types.ResumeDraft, error)
	GetDraft(ctx context.Context, id uuid.UUID) (*types.ResumeDraft, error)
	ListDrafts(ctx context.Context, limit int) ([]types.ResumeDraft, error)
	DeleteDraft(ctx context.Context, id uuid.UUID) (bool, error)
}

var _ DraftStore = (*db.DB)(nil)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	workspace   *workspace.Workspace
	drafts      DraftStore
	rateLimiter *ratelimit.Limiter
}

// Config holds server configuration
type Config struct {
	Addr      string
	Workspace *workspace.Workspace
	// Drafts is optional; draft routes answer 503 without it.
	Drafts DraftStore
	// RateLimit defaults to ratelimit.LoadConfig() when nil.
	RateLimit *ratelimit.Config
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Workspace == nil {
		return nil, errors.New("server requires a workspace")
	}

	s := &Server{
		workspace: cfg.Workspace,
		drafts:    cfg.Drafts,
	}

	// Initialize rate limiter
	rlConfig := cfg.RateLimit
	if rlConfig == nil {
		rlConfig = ratelimit.LoadConfig()
	}
	if err := rlConfig.Validate(); err != nil {
		return nil, err
	}
	s.rateLimiter = ratelimit.NewLimiter(rlConfig)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Analysis calls an external service
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the router wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	return s.withRateLimit(s.withLogging(s.withCORS(s.routes())))
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /templates", s.handleListTemplates)

	// Live builder document
	mux.HandleFunc("GET /builder/state", s.handleGetState)
	mux.HandleFunc("PUT /builder/state", s.handleReplaceState)
	mux.HandleFunc("PATCH /builder/personal", s.handleUpdatePersonal)
	mux.HandleFunc("PUT /builder/skills", s.handleSetSkills)
	mux.HandleFunc("POST /builder/{collection}", s.handleAddItem)
	mux.HandleFunc("PUT /builder/{collection}/{index}", s.handleUpdateItem)
	mux.HandleFunc("DELETE /builder/{collection}/{index}", s.handleRemoveItem)
	mux.HandleFunc("POST /builder/template", s.handleApplyTemplate)
	mux.HandleFunc("GET /builder/text", s.handleBuilderText)
	mux.HandleFunc("GET /builder/insights", s.handleBuilderInsights)
	mux.HandleFunc("GET /builder/assistant", s.handleBuilderAssistant)
	mux.HandleFunc("POST /builder/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /builder/analyze/stream", s.handleAnalyzeStream)

	// Stateless derivations
	mux.HandleFunc("POST /derive/text", s.handleDeriveText)
	mux.HandleFunc("POST /derive/insights", s.handleDeriveInsights)
	mux.HandleFunc("POST /derive/assistant", s.handleDeriveAssistant)
	mux.HandleFunc("POST /score/classify", s.handleClassify)
	mux.HandleFunc("POST /report/view", s.handleReportView)

	// Saved drafts
	mux.HandleFunc("POST /drafts", s.handleSaveDraft)
	mux.HandleFunc("GET /drafts", s.handleListDrafts)
	mux.HandleFunc("GET /drafts/{id}", s.handleGetDraft)
	mux.HandleFunc("DELETE /drafts/{id}", s.handleDeleteDraft)
	mux.HandleFunc("POST /drafts/{id}/restore", s.handleRestoreDraft)
	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case err := <-errCh:
		s.rateLimiter.Stop()
		return fmt.Errorf("server error: %w", err)
	}
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Extract client identifier (IP address)
		clientID := s.extractClientID(r)

		// Check rate limit
		allowed, info := s.rateLimiter.Allow(clientID, r.Method, r.URL.Path)

		if !allowed {
			// Set rate limit headers
			s.setRateLimitHeaders(w, info)
			// Return 429 Too Many Requests
			s.rateLimitResponse(w, info)
			return
		}

		// Set rate limit headers for successful requests
		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status": "ok",
		"drafts": s.drafts != nil,
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// failure maps err to a status with HTTPStatus and writes it. Server-side
// failures are logged and their details are not echoed to the client.
func (s *Server) failure(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError && status != http.StatusBadGateway && status != http.StatusServiceUnavailable {
		log.Printf("[%s] %s failed: %v", r.Method, r.URL.Path, err)
		s.errorResponse(w, status, http.StatusText(status))
		return
	}
	s.errorResponse(w, status, err.Error())
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
// In the future, this could use X-Forwarded-For header (only from trusted proxies).
func (s *Server) extractClientID(r *http.Request) string {
	// Get IP from RemoteAddr (format: "IP:port")
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// If parsing fails, use the whole RemoteAddr
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}
	if info.Tier != "" {
		response["tier"] = info.Tier
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	// Log rate limit hit
	log.Printf("[rate-limit] Rate limit exceeded: Tier=%q Limit=%d Remaining=%d Reset=%s",
		info.Tier, info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
