// Package server runs the calculator's long-lived services (the HTTP API and
// the storage backend connections) and stops them cleanly on SIGINT/SIGTERM.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Service is a long-running component. Start blocks until the service stops
// or fails; Stop asks a started service to return from Start.
type Service interface {
	Start() error
	Stop()
}

// FuncService adapts a start/stop function pair into a Service.
type FuncService struct {
	StartFn func() error
	StopFn  func()
}

// Start calls StartFn.
func (f *FuncService) Start() error { return f.StartFn() }

// Stop calls StopFn.
func (f *FuncService) Stop() { f.StopFn() }

// Closer adapts a resource that only needs releasing at shutdown, such as a
// store connection pool. Start blocks until Stop.
func Closer(closeFn func()) Service {
	done := make(chan struct{})
	var once sync.Once
	return &FuncService{
		StartFn: func() error {
			<-done
			return nil
		},
		StopFn: func() {
			once.Do(func() {
				closeFn()
				close(done)
			})
		},
	}
}

// Lifecycle starts registered services together and stops them in reverse
// registration order.
type Lifecycle struct {
	logger   *zap.Logger
	signals  []os.Signal
	mu       sync.Mutex
	services []namedService
}

type namedService struct {
	name    string
	service Service
}

// NewLifecycle creates a Lifecycle that shuts down on SIGINT or SIGTERM.
//
// Precondition: logger must be non-nil.
func NewLifecycle(logger *zap.Logger) *Lifecycle {
	return &Lifecycle{
		logger:  logger,
		signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}
}

// Add registers svc under name.
//
// Precondition: name must be non-empty; svc must be non-nil; Run has not been called.
func (l *Lifecycle) Add(name string, svc Service) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.services = append(l.services, namedService{name: name, service: svc})
}

// Run starts every service and blocks until a shutdown signal arrives, ctx
// is cancelled, or a service fails.
//
// Postcondition: every service has been stopped. The returned error is the
// first service failure, or nil for a signal or cancellation.
func (l *Lifecycle) Run(ctx context.Context) error {
	l.mu.Lock()
	services := append([]namedService(nil), l.services...)
	l.mu.Unlock()

	start := time.Now()
	errCh := make(chan error, len(services))
	var wg sync.WaitGroup
	for _, ns := range services {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.logger.Info("starting service", zap.String("service", ns.name))
			if err := ns.service.Start(); err != nil {
				l.logger.Error("service failed",
					zap.String("service", ns.name),
					zap.Error(err),
					zap.Duration("uptime", time.Since(start)),
				)
				errCh <- fmt.Errorf("service %s: %w", ns.name, err)
			}
		}()
	}
	l.logger.Info("services launched", zap.Int("count", len(services)))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, l.signals...)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		l.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case runErr = <-errCh:
		l.logger.Error("service error, shutting down", zap.Error(runErr))
	case <-ctx.Done():
		l.logger.Info("context cancelled, shutting down")
	}

	stopStart := time.Now()
	for i := len(services) - 1; i >= 0; i-- {
		ns := services[i]
		ns.service.Stop()
		l.logger.Info("service stopped", zap.String("service", ns.name))
	}
	wg.Wait()

	l.logger.Info("shutdown complete",
		zap.Duration("shutdown_elapsed", time.Since(stopStart)),
		zap.Duration("total_uptime", time.Since(start)),
	)
	return runErr
}
