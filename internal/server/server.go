// Package server assembles the JSON API: echo, middleware chain and routes.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tmahmood/envelop-budget/internal/budgeting"
	"github.com/tmahmood/envelop-budget/internal/config"
	"github.com/tmahmood/envelop-budget/internal/handlers"
	"github.com/tmahmood/envelop-budget/internal/middleware"
	"github.com/tmahmood/envelop-budget/internal/services"
)

const shutdownTimeout = 30 * time.Second

// Server serves the ledger API over HTTP
type Server struct {
	echo    *echo.Echo
	cfg     config.ServerConfig
	limiter *middleware.RateLimiter
	logger  *slog.Logger
}

// Registry is what the server needs from a metrics registry: somewhere to
// register its own collectors and something to expose on /metrics
type Registry interface {
	prometheus.Registerer
	prometheus.Gatherer
}

// New wires handlers and middleware around ledger
func New(cfg config.ServerConfig, ledger *budgeting.Budgeting, audit services.AuditServiceInterface, db handlers.Pinger, reg Registry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.NewErrorHandler(reg).Handle

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(limiter.Middleware())

	handlers.RegisterRoutes(e, ledger, audit, db, reg)

	return &Server{
		echo:    e,
		cfg:     cfg,
		limiter: limiter,
		logger:  logger,
	}
}

// Handler exposes the router, e.g. for httptest
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Addr is the listen address built from the configured host and port
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Host, s.cfg.Port)
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	s.echo.Server.ReadTimeout = s.cfg.ReadTimeout
	s.echo.Server.WriteTimeout = s.cfg.WriteTimeout
	s.echo.Server.IdleTimeout = 60 * time.Second

	cleanupCtx, stopCleanup := context.WithCancel(ctx)
	defer stopCleanup()
	go s.limiter.RunCleanup(cleanupCtx)

	addr := s.Addr()
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting API server", "addr", addr)
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			s.logger.Error("Server error", "error", err, "addr", addr)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("Server shutdown error", "error", err)
		return err
	}
	s.logger.Info("Server stopped gracefully")
	return nil
}
