package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/damagecalc/internal/config"
)

// HTTPService serves an http.Handler as a lifecycle Service.
type HTTPService struct {
	srv             *http.Server
	shutdownTimeout time.Duration
	logger          *zap.Logger

	mu       sync.Mutex
	listener net.Listener
	ready    chan struct{}
}

// NewHTTPService creates an HTTPService bound to cfg.Addr().
//
// Precondition: handler and logger must be non-nil.
func NewHTTPService(cfg config.HTTPConfig, handler http.Handler, logger *zap.Logger) *HTTPService {
	return &HTTPService{
		srv: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
		ready:           make(chan struct{}),
	}
}

// Start listens and serves until Stop is called.
//
// Postcondition: returns nil after a graceful Stop, or the listen/serve error.
func (s *HTTPService) Start() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()
	close(s.ready)

	s.logger.Info("http listening", zap.String("addr", ln.Addr().String()))
	if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Addr blocks until the service is listening and returns the bound address.
// It is useful when the configured port is 0.
func (s *HTTPService) Addr(ctx context.Context) (string, error) {
	select {
	case <-s.ready:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listener.Addr().String(), nil
}

// Stop drains in-flight requests for up to the configured shutdown timeout.
func (s *HTTPService) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Warn("http shutdown incomplete", zap.Error(err))
	}
}
