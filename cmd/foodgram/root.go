package main

import (
	"context"
	"fmt"

	"github.com/deppfellow/foodgram/internal/config"
	"github.com/deppfellow/foodgram/internal/logger"
	"github.com/deppfellow/foodgram/internal/repository"
	"github.com/deppfellow/foodgram/internal/server"
	"github.com/deppfellow/foodgram/internal/service"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "foodgram",
		Short:         "Foodgram recipe sharing API",
		SilenceUsage:  true,
		SilenceErrors: false,
		// Running the binary without a subcommand serves the API.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), false)
		},
	}

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newImportDataCmd(),
		newCreateSuperuserCmd(),
		newCreateUsersCmd(),
		newCreateRecipesCmd(),
		newSetupCmd(),
	)

	return root
}

// app is what every command needs: config, the logger pair and, for commands
// that touch the database, the server container with the service layer.
type app struct {
	cfg           *config.Config
	logger        zerolog.Logger
	loggerService *logger.LoggerService
	server        *server.Server
	services      *service.Services
}

// bootstrap loads config and the logger. Config problems are fatal inside
// LoadConfig.
func bootstrap() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return &app{cfg: cfg, logger: log, loggerService: loggerService}, nil
}

// connect builds the server container and the services on top of the pgx
// repositories.
func (a *app) connect() error {
	srv, err := server.New(a.cfg, &a.logger, a.loggerService)
	if err != nil {
		return err
	}

	repos := repository.NewRepositories(srv)
	a.server = srv
	a.services = service.NewServices(srv, service.StoresFromRepositories(repos))

	return nil
}

// close releases whatever connect opened and flushes New Relic.
func (a *app) close(ctx context.Context) {
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			a.logger.Error().Err(err).Msg("shutdown finished with errors")
		}
	}
	a.loggerService.Shutdown()
}
