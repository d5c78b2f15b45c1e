package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"vdcode/internal/handler"
	"vdcode/internal/logger"
	"vdcode/internal/middleware"
)

// Config holds server configuration.
type Config struct {
	Port            int
	ShutdownTimeout time.Duration
	BaseURL         string
	// HealthCheck, when set, is run by GET /health. A failure reports 503.
	HealthCheck func(context.Context) error
}

// Server represents the HTTP server.
type Server struct {
	cfg        Config
	httpServer *http.Server
	router     chi.Router
	handler    *handler.Handler
	log        *slog.Logger
}

// New creates a new Server with the given configuration.
// Optional codeService can be passed to enable the code endpoints.
func New(cfg Config, log *slog.Logger, codeService ...handler.CodeService) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	router := chi.NewRouter()
	router.Use(chimw.Recoverer, middleware.RequestID, middleware.Logging(log.With(logger.Component("http"))))

	s := &Server{
		cfg:    cfg,
		router: router,
		log:    log,
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	// If CodeService is provided, create handler
	if len(codeService) > 0 && codeService[0] != nil {
		s.handler = handler.New(codeService[0], cfg.BaseURL, log)
	}

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.Get("/health", s.handleHealth)

	// Register code routes if handler is available
	if s.handler != nil {
		s.router.Post("/codes", s.handler.Issue)
		s.router.Get("/codes/{code}", s.handler.Lookup)
		s.router.Get("/codes/{code}/stats", s.handler.Stats)
		s.router.Get("/codes/{code}/qr.png", s.handler.QR)
		s.router.Post("/validate", s.handler.Validate)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status, code := "healthy", http.StatusOK
	if s.cfg.HealthCheck != nil {
		if err := s.cfg.HealthCheck(r.Context()); err != nil {
			s.log.WarnContext(r.Context(), "health check failed", logger.Error(err))
			status, code = "unhealthy", http.StatusServiceUnavailable
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(handler.HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server. This method blocks until the server is stopped.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handle registers a handler for method and pattern.
// This is useful for testing to add custom endpoints.
func (s *Server) Handle(method, pattern string, h http.HandlerFunc) {
	s.router.Method(method, pattern, h)
}

// ServeHTTP dispatches through the router and its middleware.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run starts the server and blocks until a shutdown signal is received.
// It handles SIGINT and SIGTERM for graceful shutdown.
// The provided context can also be used to trigger shutdown.
func (s *Server) Run(ctx context.Context) error {
	// Channel for shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	// Channel for server errors
	errChan := make(chan error, 1)

	// Start server
	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()
	s.log.InfoContext(ctx, "server listening", slog.String("addr", s.httpServer.Addr))

	// Wait for shutdown signal, context cancellation, or server error
	select {
	case sig := <-sigChan:
		s.log.InfoContext(ctx, "shutdown signal received", slog.String("signal", sig.String()))
	case <-ctx.Done():
		// Context cancelled
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	return s.Shutdown(shutdownCtx)
}
