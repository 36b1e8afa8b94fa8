// Package server provides the HTTP API used by the browser extension.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-dispatch/internal/dispatch"
	"github.com/jonathan/resume-dispatch/internal/server/middleware"
	"github.com/jonathan/resume-dispatch/internal/server/ratelimit"
)

const (
	// DefaultUploadLimit caps résumé uploads.
	DefaultUploadLimit = 10 << 20
	// maxJSONBody caps JSON request bodies.
	maxJSONBody = 10 << 20
	// multipartOverhead leaves room for form boundaries around the file.
	multipartOverhead = 1 << 20
)

// DefaultAllowedOrigins is used when Config.AllowedOrigins is empty.
var DefaultAllowedOrigins = []string{"https://mp.weixin.qq.com"}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	svc         *dispatch.Service
	logger      zerolog.Logger
	rateLimiter *ratelimit.Limiter
	origins     []string
	uploadLimit int64
	now         func() time.Time
}

// Config holds server configuration
type Config struct {
	Port           int
	AllowedOrigins []string
	UploadLimit    int64
	RateLimit      *ratelimit.Config
}

// New creates a new server instance
func New(cfg Config, svc *dispatch.Service, logger zerolog.Logger) *Server {
	s := &Server{
		svc:         svc,
		logger:      logger,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		origins:     cfg.AllowedOrigins,
		uploadLimit: cfg.UploadLimit,
		now:         time.Now,
	}
	if len(s.origins) == 0 {
		s.origins = DefaultAllowedOrigins
	}
	if s.uploadLimit <= 0 {
		s.uploadLimit = DefaultUploadLimit
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // model calls and SMTP can be slow
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/stats", s.handleStats)

	mux.HandleFunc("POST /api/resume/upload", s.handleUpload)
	mux.HandleFunc("GET /api/resume/list", s.handleListResumes)
	mux.HandleFunc("POST /api/resume/customize", s.handleCustomize)
	mux.HandleFunc("POST /api/resume/send", s.handleSend)

	mux.HandleFunc("POST /api/extract", s.handleExtract)
	mux.HandleFunc("POST /api/extract/page", s.handleExtractPage)

	mux.HandleFunc("GET /api/submissions", s.handleSubmissions)

	return middleware.RequestLogger(s.logger)(
		middleware.CORS(s.origins)(
			s.withRateLimit(mux)))
}

// Start listens until ctx is cancelled or the process receives SIGINT or
// SIGTERM, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			s.rateLimiter.Stop()
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.rateLimiter.Stop()
	s.logger.Info().Msg("server stopped")
	return nil
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractClientID uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	if info.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(int(info.RetryAfter.Seconds()+0.5)))
	}
	zerolog.Ctx(r.Context()).Warn().
		Str("client", s.extractClientID(r)).
		Str("path", r.URL.Path).
		Int("limit", info.Limit).
		Msg("rate limit exceeded")
	s.errorResponse(w, http.StatusTooManyRequests, "请求过于频繁，请稍后再试")
}

// Response is the envelope of every API reply.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

func (s *Server) successResponse(w http.ResponseWriter, data any) {
	s.jsonResponse(w, http.StatusOK, Response{Success: true, Data: data})
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, Response{Success: false, Error: message})
}
