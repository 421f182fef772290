// Package server provides the HTTP REST API used by the browser extension and API clients.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resuflux/internal/advice"
	"github.com/jonathan/resuflux/internal/cache"
	"github.com/jonathan/resuflux/internal/db"
	"github.com/jonathan/resuflux/internal/email"
	"github.com/jonathan/resuflux/internal/fetch"
	"github.com/jonathan/resuflux/internal/logger"
	"github.com/jonathan/resuflux/internal/metrics"
	"github.com/jonathan/resuflux/internal/scoring"
	"github.com/jonathan/resuflux/internal/server/middleware"
	"github.com/jonathan/resuflux/internal/server/ratelimit"
)

const (
	// DefaultMaxCompare matches the two résumé slots of the extension popup
	DefaultMaxCompare = 2
	// MaxCompareLimit is the largest configurable comparison size
	MaxCompareLimit = 5

	maxBodyBytes = 2 << 20
)

// ResumeStore persists résumés and their comparisons.
type ResumeStore interface {
	InsertResume(ctx context.Context, name, text string) (uuid.UUID, error)
	GetResume(ctx context.Context, id uuid.UUID) (*db.Resume, error)
	ListResumes(ctx context.Context, limit int) ([]db.ResumeSummary, error)
	UpsertComparison(ctx context.Context, c db.Comparison) error
	GetComparison(ctx context.Context, resumeID uuid.UUID, jdHash string) (*db.Comparison, error)
}

// JobScraper fetches job descriptions from posting URLs.
type JobScraper interface {
	ScrapeJob(ctx context.Context, url string, useBrowser bool) (*fetch.Job, error)
}

// Config holds server configuration
type Config struct {
	Port       int
	MaxCompare int // résumés accepted per /compare request
}

// Deps are the collaborators the handlers use. Only Scorer is required;
// routes whose collaborator is nil answer 503.
type Deps struct {
	Scorer        *scoring.Scorer
	Advisor       advice.Advisor
	Store         ResumeStore
	Cache         *cache.ScoreCache
	History       *cache.History
	Scraper       JobScraper
	JWT           *JWTService
	Limiter       *ratelimit.Limiter
	Metrics       *metrics.Metrics
	Log           logger.Logger
	EmailTemplate *email.Template
}

// Server represents the HTTP server
type Server struct {
	httpServer    *http.Server
	handler       http.Handler
	scorer        *scoring.Scorer
	advisor       advice.Advisor
	store         ResumeStore
	cache         *cache.ScoreCache
	history       *cache.History
	scraper       JobScraper
	jwtService    *JWTService
	rateLimiter   *ratelimit.Limiter
	metrics       *metrics.Metrics
	log           logger.Logger
	emailTemplate email.Template
	maxCompare    int
}

// New creates a new server instance
func New(cfg Config, deps Deps) *Server {
	s := &Server{
		scorer:        deps.Scorer,
		advisor:       deps.Advisor,
		store:         deps.Store,
		cache:         deps.Cache,
		history:       deps.History,
		scraper:       deps.Scraper,
		jwtService:    deps.JWT,
		rateLimiter:   deps.Limiter,
		metrics:       deps.Metrics,
		log:           deps.Log,
		emailTemplate: email.DefaultTemplate(),
		maxCompare:    cfg.MaxCompare,
	}
	if s.scorer == nil {
		s.scorer = scoring.NewScorer(nil)
	}
	if s.advisor == nil {
		s.advisor = advice.HeuristicAdvisor{}
	}
	if s.log == nil {
		s.log = logger.NewNop()
	}
	if s.rateLimiter == nil {
		s.rateLimiter = ratelimit.NewLimiter(&ratelimit.Config{Enabled: false})
	}
	if deps.EmailTemplate != nil {
		s.emailTemplate = *deps.EmailTemplate
	}
	if s.maxCompare <= 0 {
		s.maxCompare = DefaultMaxCompare
	}
	s.maxCompare = min(s.maxCompare, MaxCompareLimit)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	// Scoring
	mux.HandleFunc("POST /score", s.handleScore)
	mux.HandleFunc("POST /explain", s.handleExplain)
	mux.HandleFunc("POST /compare", s.handleCompare)
	mux.HandleFunc("GET /history", s.handleHistory)

	// Stored résumés
	mux.Handle("POST /resumes", s.requireAuth(s.handleCreateResume))
	mux.Handle("GET /resumes", s.requireAuth(s.handleListResumes))
	mux.Handle("GET /resumes/{id}", s.requireAuth(s.handleGetResume))
	mux.Handle("POST /resumes/{id}/comparisons", s.requireAuth(s.handleCreateComparison))
	mux.Handle("GET /resumes/{id}/comparisons", s.requireAuth(s.handleGetComparison))

	// Job postings and email
	mux.HandleFunc("POST /jobs/scrape", s.handleScrapeJob)
	mux.HandleFunc("POST /email/render", s.handleRenderEmail)

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second, // browser rendering can take a while
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the fully wrapped router
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start listens until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", logger.Fields{"addr": s.httpServer.Addr})
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down server", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.rateLimiter.Stop()
	s.log.Info("server stopped", nil)
	return nil
}

// requireAuth wraps a handler with bearer token authentication
func (s *Server) requireAuth(h http.HandlerFunc) http.Handler {
	if s.jwtService == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			s.writeError(w, &ErrUnavailable{Service: "authentication"})
		})
	}
	return middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(h)
}

// withCORS adds CORS headers. The extension calls from a chrome-extension:// origin.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for logging and metrics
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging logs each request and records its duration
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		s.metrics.ObserveRequest(r.Method, route, rec.status, elapsed)
		s.log.Info("request completed", logger.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rec.status,
			"duration_ms": elapsed.Milliseconds(),
			"remote":      r.RemoteAddr,
		})
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(extractClientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractClientID identifies the caller by remote IP.
func extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}
	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.log.Warn("rate limit exceeded", logger.Fields{"limit": info.Limit})
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleMetrics exposes Prometheus metrics
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if s.metrics == nil {
		s.writeError(w, &ErrUnavailable{Service: "metrics"})
		return
	}
	s.metrics.Handler().ServeHTTP(w, r)
}

// decodeJSON reads a bounded JSON body and runs the request's validator
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{ Validate() error }) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	if err := v.Validate(); err != nil {
		return validationError(err)
	}
	return nil
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode JSON response", logger.Fields{"error": err.Error()})
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// writeError maps err to a status code and writes it
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		s.log.WithError(err).Error("request failed", nil)
	}
	s.errorResponse(w, status, err.Error())
}
