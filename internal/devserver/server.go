package devserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dimitrije/prompthub/internal/config"
	"go.uber.org/zap"
)

type Server struct {
	http            *http.Server
	logger          *zap.Logger
	shutdownTimeout time.Duration
}

func NewServer(cfg *config.Config, handler http.Handler, log *zap.Logger) *Server {
	return &Server{
		http: &http.Server{
			Addr:              cfg.Server.Addr(),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger:          log.With(zap.String("system", "http")),
		shutdownTimeout: cfg.Server.ShutdownTimeout,
	}
}

// Start listens in the background. Errors other than a clean shutdown are
// sent on the returned channel.
func (s *Server) Start() <-chan error {
	errs := make(chan error, 1)

	go func() {
		s.logger.Info("server listening", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	return errs
}

func (s *Server) Shutdown() error {
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		return err
	}

	s.logger.Info("server shutdown complete")
	return nil
}
