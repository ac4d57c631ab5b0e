package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	xhttp "RaptorExplorer/pkg/http"
	pkgkafka "RaptorExplorer/pkg/kafka"
	"RaptorExplorer/pkg/logger"
)

// Closer releases one infrastructure client on shutdown.
type Closer struct {
	Name  string
	Close func() error
}

// Background is a loop that runs until done is closed.
type Background func(done <-chan struct{})

// App owns the process lifecycle: the HTTP server, the optional Kafka
// consumer, background loops and every client that must be closed.
type App struct {
	log             *logger.Logger
	http            *xhttp.Server
	consumer        *pkgkafka.Consumer
	handlers        []pkgkafka.MessageHandler
	background      []Background
	closers         []Closer
	shutdownTimeout time.Duration

	done     chan struct{}
	bgWG     sync.WaitGroup
	stopOnce sync.Once
}

type Option func(*App)

// WithConsumer starts c with the given handlers. A nil consumer or an empty
// handler list leaves the consumer off.
func WithConsumer(c *pkgkafka.Consumer, handlers ...pkgkafka.MessageHandler) Option {
	return func(a *App) {
		a.consumer = c
		for _, h := range handlers {
			if h != nil {
				a.handlers = append(a.handlers, h)
			}
		}
	}
}

func WithBackground(b Background) Option {
	return func(a *App) { a.background = append(a.background, b) }
}

// WithCloser registers a client to close. Closers run in reverse order of
// registration.
func WithCloser(name string, fn func() error) Option {
	return func(a *App) {
		if fn != nil {
			a.closers = append(a.closers, Closer{Name: name, Close: fn})
		}
	}
}

func WithShutdownTimeout(d time.Duration) Option {
	return func(a *App) { a.shutdownTimeout = d }
}

func New(log *logger.Logger, srv *xhttp.Server, opts ...Option) *App {
	if log == nil {
		log = logger.Nop()
	}
	a := &App{
		log:             log,
		http:            srv,
		shutdownTimeout: 10 * time.Second,
		done:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run starts the app and blocks until ctx is cancelled or SIGINT/SIGTERM
// arrives, then shuts down.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Start(); err != nil {
		_ = a.Shutdown(context.Background())
		return err
	}

	<-ctx.Done()
	a.log.Info("shutdown signal received")
	return a.Shutdown(context.Background())
}

func (a *App) Start() error {
	if a.consumer != nil && len(a.handlers) > 0 {
		for _, h := range a.handlers {
			a.consumer.RegisterHandler(h)
		}
		if err := a.consumer.Start(); err != nil {
			return fmt.Errorf("kafka consumer: %w", err)
		}
		a.log.Info("kafka consumer started", logger.Int("handlers", len(a.handlers)))
	}

	for _, b := range a.background {
		a.bgWG.Add(1)
		go func(b Background) {
			defer a.bgWG.Done()
			b(a.done)
		}(b)
	}

	if a.http != nil {
		if err := a.http.Start(); err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}
	return nil
}

// Shutdown stops intake first (HTTP, consumer), then background loops, then
// flushes the log collector and closes clients. It is safe to call twice.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error

	a.stopOnce.Do(func() {
		ctx, cancel := context.WithTimeout(ctx, a.shutdownTimeout)
		defer cancel()

		if a.http != nil {
			if err := a.http.Stop(ctx); err != nil {
				a.log.Error("http shutdown error", logger.Error(err))
				errs = append(errs, err)
			}
		}

		if a.consumer != nil && len(a.handlers) > 0 {
			if err := a.consumer.Stop(ctx); err != nil {
				a.log.Warn("kafka consumer stop error", logger.Error(err))
				errs = append(errs, err)
			}
		}

		close(a.done)
		a.bgWG.Wait()

		// the collector publishes through the producer, so it goes first
		a.log.Close()

		for i := len(a.closers) - 1; i >= 0; i-- {
			c := a.closers[i]
			if err := c.Close(); err != nil {
				a.log.Warn("close error", logger.String("client", c.Name), logger.Error(err))
				errs = append(errs, fmt.Errorf("close %s: %w", c.Name, err))
			}
		}

		a.log.Info("shutdown complete")
	})

	return errors.Join(errs...)
}
