// Package server provides the HTTP API for the job board.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jonathan/jobboard/internal/listing"
	"github.com/jonathan/jobboard/internal/logger"
	"github.com/jonathan/jobboard/internal/metrics"
	"github.com/jonathan/jobboard/internal/posting"
	"github.com/jonathan/jobboard/internal/schemas"
	"github.com/jonathan/jobboard/internal/server/ratelimit"
	"github.com/jonathan/jobboard/internal/types"
	rootschemas "github.com/jonathan/jobboard/schemas"
)

// maxBodyBytes bounds request bodies for the two POST endpoints.
const maxBodyBytes = 1 << 20

// Listings is the read side used by the browse endpoints.
type Listings interface {
	ListActive(ctx context.Context, filters types.JobFilters) []types.Listing
	GetBySlug(ctx context.Context, slug string) (*types.Listing, bool)
	ListByLocation(ctx context.Context, city, state string) []types.Listing
	Featured(ctx context.Context) []types.Listing
	Locations(ctx context.Context) []types.Location
	Slugs(ctx context.Context) []string
	Home(ctx context.Context) types.Home
	LocationListings(ctx context.Context, state, city string) (*types.LocationListings, bool)
}

// Submitter runs the paid submission workflow.
type Submitter interface {
	Submit(ctx context.Context, req *types.CheckoutRequest) (*posting.SubmitResult, error)
	LookupSuccess(ctx context.Context, sessionID string) types.CheckoutSuccess
}

// Confirmer handles payment provider webhooks.
type Confirmer interface {
	HandleEvent(ctx context.Context, body []byte, signature string) (*posting.Confirmation, error)
}

// Pinger reports whether the record store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

var (
	_ Listings  = (*listing.Service)(nil)
	_ Submitter = (*posting.Submitter)(nil)
	_ Confirmer = (*posting.Confirmer)(nil)
)

// Deps are the collaborators the server routes to. All are built once at startup.
type Deps struct {
	Listings  Listings
	Submitter Submitter
	Confirmer Confirmer
	Store     Pinger
	Logger    logger.Logger
	Metrics   *metrics.Metrics
	RateLimit *ratelimit.Config
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	listings    Listings
	submitter   Submitter
	confirmer   Confirmer
	store       Pinger
	log         logger.Logger
	metrics     *metrics.Metrics
	rateLimiter *ratelimit.Limiter
	checkout    *schemas.Schema
}

// New creates a new server instance
func New(port int, deps Deps) (*Server, error) {
	if deps.Logger == nil {
		deps.Logger = logger.NewNop()
	}

	content, err := rootschemas.Load(rootschemas.CheckoutRequestFile)
	if err != nil {
		return nil, err
	}
	checkoutSchema, err := schemas.Compile(rootschemas.CheckoutRequestFile, content)
	if err != nil {
		return nil, err
	}

	s := &Server{
		listings:    deps.Listings,
		submitter:   deps.Submitter,
		confirmer:   deps.Confirmer,
		store:       deps.Store,
		log:         deps.Logger,
		metrics:     deps.Metrics,
		rateLimiter: ratelimit.NewLimiter(deps.RateLimit),
		checkout:    checkoutSchema,
	}

	mux := http.NewServeMux()
	s.route(mux, "GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.Handler())

	// Submission and payment confirmation
	s.route(mux, "POST /api/checkout", s.handleCheckout)
	s.route(mux, "GET /api/checkout/success", s.handleCheckoutSuccess)
	s.route(mux, "POST /api/webhooks/stripe", s.handleStripeWebhook)

	// Listings
	s.route(mux, "GET /api/home", s.handleHome)
	s.route(mux, "GET /api/jobs", s.handleListJobs)
	s.route(mux, "GET /api/jobs/featured", s.handleFeaturedJobs)
	s.route(mux, "GET /api/jobs/{slug}", s.handleGetJob)
	s.route(mux, "GET /api/jobs/in/{state}/{city}", s.handleJobsByLocation)
	s.route(mux, "GET /api/locations", s.handleListLocations)
	s.route(mux, "GET /api/locations/{state}/{city}", s.handleLocationPage)
	s.route(mux, "GET /api/slugs", s.handleListSlugs)

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// route registers a handler and records its latency under the mux pattern.
func (s *Server) route(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	mux.Handle(pattern, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r)
		s.metrics.ObserveRequest(pattern, rec.status, time.Since(start))
	}))
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", logger.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.rateLimiter.Stop()
	s.log.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Stripe-Signature")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.log.Warn("rate limit exceeded",
				logger.String("client", clientID),
				logger.String("path", r.URL.Path),
				logger.Int("limit", info.Limit))
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Int("status", rec.status),
			logger.String("remote", r.RemoteAddr),
			logger.Duration("duration", time.Since(start)))
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.store.Ping(ctx); err != nil {
			s.log.Error("health check failed", logger.Err(err))
			s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode JSON response", logger.Err(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// X-Forwarded-For is not trusted; RemoteAddr is used as is.
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

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
