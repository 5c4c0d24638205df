package http

import (
	"context"
	"fmt"
	nethttp "net/http"
	"time"

	"github.com/roadpenalty/appealcore/internal/config"
	"github.com/roadpenalty/appealcore/internal/infrastructure/monitoring/logging"
)

// Server wraps net/http.Server with configured timeouts and graceful
// shutdown.
type Server struct {
	srv             *nethttp.Server
	logger          logging.Logger
	shutdownTimeout time.Duration
}

// NewServer binds the handler to the configured port.
func NewServer(cfg config.ServerConfig, handler nethttp.Handler, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Server{
		srv: &nethttp.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  60 * time.Second,
		},
		logger:          logger.Named("http_server"),
		shutdownTimeout: cfg.ShutdownTimeout,
	}
}

// Start serves until the listener closes. Returns nil after a clean
// shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server listening", logging.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
		return err
	}
	return nil
}

// Stop drains in-flight requests within the shutdown timeout.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}
