package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"pomofocus/internal/config"
)

// ServeCommand runs the HTTP API until the context is cancelled or the
// process receives SIGINT/SIGTERM
type ServeCommand struct {
	config *config.Config
	logger *log.Logger
}

// NewServeCommand creates a new serve command handler
func NewServeCommand(cfg *config.Config, logger *log.Logger) *ServeCommand {
	return &ServeCommand{config: cfg, logger: logger}
}

// Execute starts the server and blocks until it has shut down
func (c *ServeCommand) Execute(ctx context.Context, args []string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := NewApp(ctx, c.config, c.logger)
	if err != nil {
		return NewErrorHandler().Handle("start server", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			c.logger.WithError(err).Warn("failed to close application")
		}
	}()

	srv := &http.Server{
		Addr:         net.JoinHostPort("", c.config.HTTP.Port),
		Handler:      app.Handler(),
		ReadTimeout:  c.config.HTTP.ReadTimeout.Duration(),
		WriteTimeout: c.config.HTTP.WriteTimeout.Duration(),
		IdleTimeout:  c.config.HTTP.IdleTimeout.Duration(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c.logger.WithFields(log.Fields{
			"addr":    srv.Addr,
			"env":     c.config.App.Env,
			"version": c.config.App.Version,
		}).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		c.logger.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), c.config.HTTP.ShutdownTimeout.Duration())
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return NewErrorHandler().Handle("serve", err)
	}
	c.logger.Info("http server stopped")
	return nil
}
