// Package server exposes the calculators over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/maplemetrics/maplemetrics/internal/calculation"
	"github.com/maplemetrics/maplemetrics/internal/config"
	"github.com/maplemetrics/maplemetrics/internal/domain"
	"github.com/maplemetrics/maplemetrics/internal/entitlement"
	"github.com/maplemetrics/maplemetrics/internal/live"
	"github.com/maplemetrics/maplemetrics/internal/storage"
	"go.uber.org/zap"
)

// TierHeader carries the caller's subscription tier
const TierHeader = "X-MapleMetrics-Tier"

const defaultMaxBodyBytes = 1 << 20

// Deps are the collaborators the handlers call into
type Deps struct {
	Engine       *calculation.Engine
	Catalog      []domain.BenefitRecord
	Rates        live.Source           // Defaults to the engine's static assumptions
	Store        storage.Store         // Optional; snapshots are not saved when nil
	Profiles     *storage.ProfileStore // Optional
	Logger       *zap.Logger
	Version      string
	MaxBodyBytes int64
}

// Handler serves the API routes
type Handler struct {
	engine       *calculation.Engine
	catalog      []domain.BenefitRecord
	rates        live.Source
	store        storage.Store
	profiles     *storage.ProfileStore
	logger       *zap.Logger
	version      string
	maxBodyBytes int64
	mux          *http.ServeMux
}

// NewHandler builds the API mux
func NewHandler(deps Deps) *Handler {
	h := &Handler{
		engine:       deps.Engine,
		catalog:      deps.Catalog,
		rates:        deps.Rates,
		store:        deps.Store,
		profiles:     deps.Profiles,
		logger:       deps.Logger,
		version:      deps.Version,
		maxBodyBytes: deps.MaxBodyBytes,
		mux:          http.NewServeMux(),
	}
	if h.logger == nil {
		h.logger = zap.NewNop()
	}
	if h.rates == nil {
		h.rates = live.NewStaticSource(h.engine.Assumptions)
	}
	if h.maxBodyBytes <= 0 {
		h.maxBodyBytes = defaultMaxBodyBytes
	}
	if h.version == "" {
		h.version = "dev"
	}

	h.handle("POST /api/mortgage", entitlement.FeatureMortgage, h.mortgage)
	h.handle("POST /api/affordability", entitlement.FeatureAffordability, h.affordability)
	h.handle("POST /api/housing", entitlement.FeatureHousing, h.housing)
	h.handle("POST /api/retirement", entitlement.FeatureRetirement, h.retirement)
	h.handle("POST /api/retirement/whatif", entitlement.FeatureWhatIf, h.whatIf)
	h.handle("POST /api/benefits", entitlement.FeatureBenefits, h.benefits)
	h.handle("POST /api/salary", entitlement.FeatureSalary, h.salary)
	h.handle("POST /api/utilities", entitlement.FeatureUtilities, h.utilities)
	h.handle("GET /api/cities/{key}", entitlement.FeatureCityLookup, h.city)
	h.handle("POST /api/compare/cities", entitlement.FeatureCompare, h.compareCities)
	h.handle("GET /api/snapshots", entitlement.FeatureSnapshots, h.snapshots)
	h.mux.HandleFunc("POST /api/profiles", h.createProfile)
	h.mux.HandleFunc("GET /api/version", h.versionInfo)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// handle registers fn behind the tier check for feature
func (h *Handler) handle(pattern string, feature entitlement.Feature, fn http.HandlerFunc) {
	h.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		tier := tierFrom(r)
		if err := entitlement.Check(tier, feature); err != nil {
			writeJSON(w, http.StatusPaymentRequired, errorBody{
				Error:        err.Error(),
				RequiredTier: entitlement.Required(feature).String(),
			})
			return
		}
		fn(w, r)
	})
}

// tierFrom reads the tier header; unknown names are treated as free
func tierFrom(r *http.Request) entitlement.Tier {
	tier, _ := entitlement.ParseTier(r.Header.Get(TierHeader))
	return tier
}

// Server runs the API with rate limiting and request logging
type Server struct {
	cfg        config.ServerConfig
	logger     *zap.Logger
	limiter    *RateLimiter
	httpServer *http.Server
}

// New wires the handler into an http.Server configured by cfg
func New(cfg config.ServerConfig, deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.MaxBodyBytes == 0 {
		deps.MaxBodyBytes = cfg.MaxBodyBytes
	}

	s := &Server{cfg: cfg, logger: deps.Logger}
	var handler http.Handler = NewHandler(deps)
	if cfg.RateLimit > 0 {
		s.limiter = NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		handler = RateLimitMiddleware(s.limiter, handler)
	}
	handler = LoggingMiddleware(deps.Logger, handler)

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the full middleware chain
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until ctx is canceled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	defer s.Close()

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", zap.String("address", s.cfg.Address))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("error starting server: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutting down server")
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error during server shutdown: %w", err)
	}
	<-serverErr
	s.logger.Info("server exited")
	return nil
}

// Close stops the rate limiter
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs one line per request
func LoggingMiddleware(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("tier", tierFrom(r).String()))
	})
}
