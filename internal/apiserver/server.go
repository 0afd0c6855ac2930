package apiserver

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/LinLovee/quest-bot-webapp/internal/config"
)

// Server runs the JSON API over HTTP. It satisfies the lifecycle Service
// interface: Start blocks until the listener closes, Stop drains in-flight
// requests within the configured shutdown timeout.
type Server struct {
	httpServer *http.Server
	cfg        config.HTTPConfig
	logger     *zap.Logger
}

// NewServer builds an HTTP server around the given handler.
//
// Precondition: handler and logger must be non-nil; cfg must be validated.
func NewServer(cfg config.HTTPConfig, handler http.Handler, logger *zap.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		cfg:    cfg,
		logger: logger,
	}
}

// Start listens and serves until the server is stopped. The listener is torn
// down by Stop, not by ctx, so in-flight requests drain instead of aborting.
//
// Postcondition: Returns nil on graceful shutdown, an error otherwise.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("http server listening", zap.String("addr", s.cfg.Addr()))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts the server down, waiting up to the configured
// shutdown timeout for in-flight requests.
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
