// Package server exposes the HTTP surface: lease generation, lead
// capture, and health. Handlers own the error-to-status mapping; the
// pipeline packages return typed errors and know nothing about HTTP.
package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/dshills/leasedraft/internal/captcha"
	"github.com/dshills/leasedraft/internal/config"
	"github.com/dshills/leasedraft/internal/document"
	"github.com/dshills/leasedraft/internal/leads"
	"github.com/dshills/leasedraft/internal/llm"
	"github.com/dshills/leasedraft/internal/ratelimit"
	"github.com/dshills/leasedraft/internal/spec"
)

// Version is stamped at build time via ldflags.
var Version = "dev"

// LeaseGenerator drafts one lease from a validated specification.
// Satisfied by *generate.Generator; an interface here keeps handler
// tests offline.
type LeaseGenerator interface {
	Generate(ctx context.Context, s *spec.Specification) (*document.Lease, *llm.Usage, error)
}

// Server wires the pipeline behind the HTTP API.
type Server struct {
	cfg       config.Config
	generator LeaseGenerator
	limiter   *ratelimit.Limiter
	verifier  *captcha.Verifier
	leadStore *leads.Store
	log       *zap.Logger
	now       func() time.Time
}

// New assembles a Server. Any nil collaborator disables its concern:
// nil limiter means no throttling, nil verifier means no captcha.
func New(cfg config.Config, gen LeaseGenerator, limiter *ratelimit.Limiter, verifier *captcha.Verifier, leadStore *leads.Store, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		cfg:       cfg,
		generator: gen,
		limiter:   limiter,
		verifier:  verifier,
		leadStore: leadStore,
		log:       log,
		now:       time.Now,
	}
}

// Router builds the chi handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))

	allowed := s.cfg.AllowedOrigins
	if len(allowed) == 0 {
		allowed = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowed,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))
	r.Use(s.originGate)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/lease", s.handleLease)
		r.Post("/lead", s.handleLead)
		r.Get("/health", s.handleHealth)
	})
	return r
}

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", s.cfg.ListenAddr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// originGate hard-rejects cross-origin requests outside the allowlist.
// The CORS middleware only withholds permissive headers; browsers honor
// that, curl does not, so the server enforces the policy itself too.
func (s *Server) originGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && len(s.cfg.AllowedOrigins) > 0 && !s.originAllowed(origin) {
			writeError(w, http.StatusForbidden, "CORS policy violation", "")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) originAllowed(origin string) bool {
	for _, o := range s.cfg.AllowedOrigins {
		if o == origin || o == "*" {
			return true
		}
	}
	return false
}

// clientKey identifies the caller for rate limiting. RealIP middleware
// has already folded X-Forwarded-For into RemoteAddr.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
