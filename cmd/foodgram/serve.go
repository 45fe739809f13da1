package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/foodgram/internal/database"
	"github.com/deppfellow/foodgram/internal/handler"
	"github.com/deppfellow/foodgram/internal/router"
	"github.com/spf13/cobra"
)

// shutdownTimeout bounds how long in-flight requests may take once a signal arrives.
const shutdownTimeout = 30 * time.Second

func newServeCmd() *cobra.Command {
	var skipMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server and background workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), skipMigrate)
		},
	}
	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not apply migrations on start")

	return cmd
}

// runServe applies migrations outside local env, starts workers and the
// HTTP server, and shuts everything down on SIGINT/SIGTERM.
func runServe(parent context.Context, skipMigrate bool) error {
	if parent == nil {
		parent = context.Background()
	}

	a, err := bootstrap()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Local development migrates explicitly with `foodgram migrate`.
	if !skipMigrate && a.cfg.Primary.Env != "local" {
		if err := database.Migrate(ctx, &a.logger, a.cfg); err != nil {
			a.logger.Error().Err(err).Msg("failed to migrate database")
			return err
		}
	}

	if err := a.connect(); err != nil {
		a.logger.Error().Err(err).Msg("failed to initialize server")
		return err
	}

	shutdownCtx := func() (context.Context, context.CancelFunc) {
		return context.WithTimeout(context.Background(), shutdownTimeout)
	}

	if err := a.server.StartBackground(); err != nil {
		a.logger.Error().Err(err).Msg("failed to start background services")
		c, cancel := shutdownCtx()
		defer cancel()
		a.close(c)
		return err
	}

	handlers := handler.NewHandlers(a.server, a.services)
	r := router.NewRouter(a.server, handlers, a.services)
	a.server.SetupHTTPServer(r)

	serveErr := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		a.logger.Info().Msg("shutdown signal received")
	case err = <-serveErr:
		if err != nil {
			a.logger.Error().Err(err).Msg("server stopped unexpectedly")
		}
	}

	c, cancel := shutdownCtx()
	defer cancel()
	a.close(c)

	a.logger.Info().Msg("server exited properly")
	return err
}
