// Package server defines the core Server struct that composes the app's main dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - database pool
//   - redis client
//   - background job service (asynq)
//   - dependency health monitor (cron)
//   - media storage
//   - http.Server
//
// CLI commands that only touch the database build a Server with New and never
// call StartBackground or Start.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/foodgram/internal/config"
	"github.com/deppfellow/foodgram/internal/database"
	"github.com/deppfellow/foodgram/internal/lib/health"
	"github.com/deppfellow/foodgram/internal/lib/job"
	"github.com/deppfellow/foodgram/internal/lib/storage"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/foodgram/internal/logger"
)

// Server is the application container that holds shared resources.
// It is not the HTTP server itself.
type Server struct {
	Config *config.Config
	Logger *zerolog.Logger

	// LoggerService optionally holds the New Relic application instance.
	// If New Relic is disabled, it exists but GetApplication returns nil.
	LoggerService *loggerPkg.LoggerService

	DB    *database.Database
	Redis *redis.Client

	// Job runs background workers and provides a client for enqueueing.
	// Nil when the server is built for a one-off command.
	Job *job.JobService

	// Health owns the dependency probes shared by /status and the cron monitor.
	Health *health.Monitor

	// Storage writes uploaded images under the media root.
	Storage *storage.Storage

	httpServer *http.Server
}

// New constructs a Server and initializes core dependencies.
//
// It connects to PostgreSQL (fatal on failure) and Redis (logged and ignored
// on failure: token caching degrades to a database lookup). Background
// workers are created but not started, see StartBackground.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Redis connections are lazy, nothing is dialled here.
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})

	if loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Msg("Failed to connect to Redis, continuing without Redis")
	}

	s := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Redis:         redisClient,
		Storage:       storage.New(cfg, logger),
	}

	s.Health = health.NewMonitor(cfg.Observability.HealthChecks, logger, loggerService.GetApplication(),
		health.Check{
			Name:     "database",
			Required: true,
			Probe:    func(ctx context.Context) error { return db.Pool.Ping(ctx) },
		},
		health.Check{
			Name:  "redis",
			Probe: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		},
	)

	return s, nil
}

// StartBackground starts the asynq workers and, when enabled, the health monitor.
func (s *Server) StartBackground() error {
	jobService := job.NewJobService(s.Logger, s.Config)
	jobService.InitHandlers(s.Config, s.Logger)

	if err := jobService.Start(); err != nil {
		return err
	}
	s.Job = jobService

	if hc := s.Config.Observability.HealthChecks; hc.Enabled {
		if err := s.Health.Start(hc.Interval); err != nil {
			return err
		}
	}

	return nil
}

// SetupHTTPServer configures the internal net/http server around handler.
// Timeouts in config are whole seconds.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server and blocks until it stops.
// SetupHTTPServer must be called first.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting requests, waits for in-flight ones until ctx
// expires, then releases workers, Redis and the database pool.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown HTTP server: %w", err))
		}
	}

	if s.Health != nil {
		s.Health.Stop()
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis client: %w", err))
		}
	}

	if err := s.DB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close database connection: %w", err))
	}

	return errors.Join(errs...)
}
