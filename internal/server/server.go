// Package server exposes beam analysis over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexiusacademia/gobeam/internal/config"
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

// ShutdownTimeout bounds the wait for in-flight requests on shutdown
const ShutdownTimeout = 5 * time.Second

// MaxBodyBytes limits the size of a beam description in a request
const MaxBodyBytes = 1 << 20

// Server routes the API and owns its rate limiter
type Server struct {
	cfg     config.Config
	log     *slog.Logger
	router  *mux.Router
	limiter *IPRateLimiter
}

// New builds the router for the given settings
func New(cfg config.Config, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Server{cfg: cfg, log: log, router: mux.NewRouter()}

	limiter := NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	s.limiter = limiter

	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(s.logRequests)
	api.HandleFunc("/health", s.health).Methods("GET")

	calc := api.NewRoute().Subrouter()
	calc.Use(limiter.LimitMiddleware)
	calc.HandleFunc("/analyze", s.analyze).Methods("POST")
	calc.HandleFunc("/report/pdf", s.reportPDF).Methods("POST")
	calc.HandleFunc("/report/xlsx", s.reportXLSX).Methods("POST")

	return s
}

// Handler returns the API with CORS headers
func (s *Server) Handler() http.Handler {
	return CORS(s.router)
}

// Run serves until ctx is cancelled, then drains connections
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.limiter.Sweep(sweepCtx, time.Minute, LimiterIdleTTL)

	errc := make(chan error, 1)
	go func() {
		s.log.Info("server listening", "addr", s.cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutdown signal received, closing active connections")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errc
}

// CORS allows browser clients on any origin
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"remote", clientIP(r),
			"duration", time.Since(start))
	})
}
