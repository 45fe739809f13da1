// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - tasks are enqueued (producer) with asynq.Client.
//   - a server runs workers that process them (consumer) with asynq.Server.
package job

import (
	"context"
	"fmt"

	"github.com/deppfellow/foodgram/internal/config"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	// Client is used to enqueue tasks into Redis.
	Client *asynq.Client

	server *asynq.Server
	logger *zerolog.Logger

	// mailer delivers the emails produced by email tasks. Set by InitHandlers.
	mailer Mailer
}

// NewJobService creates a JobService configured to use Redis from cfg.
//
// Queue weights give "critical" tasks the larger share of the 10 workers:
// out of 10 tasks, roughly 6 critical, 3 default, 1 low.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger: asynqLogger{logger: logger},
		},
	)

	return &JobService{
		Client: asynq.NewClient(redisOpt),
		server: server,
		logger: logger,
	}
}

// Start registers task handlers and starts the worker pool.
// It returns once the workers are running.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcome, j.handleWelcomeEmailTask)

	j.logger.Info().Msg("Starting background job server")

	if err := j.server.Start(mux); err != nil {
		return fmt.Errorf("start job server: %w", err)
	}
	return nil
}

// Enqueue pushes a task, logging the assigned ID.
func (j *JobService) Enqueue(ctx context.Context, task *asynq.Task) error {
	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", task.Type(), err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("type", task.Type()).
		Str("queue", info.Queue).
		Msg("task enqueued")
	return nil
}

// Stop waits for running tasks to finish and closes the client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Warn().Err(err).Msg("failed to close job client")
	}
}

// asynqLogger routes asynq's internal logging through zerolog.
type asynqLogger struct {
	logger *zerolog.Logger
}

func (l asynqLogger) Debug(args ...any) {
	l.logger.Debug().Str("component", "asynq").Msg(fmt.Sprint(args...))
}

func (l asynqLogger) Info(args ...any) {
	l.logger.Info().Str("component", "asynq").Msg(fmt.Sprint(args...))
}

func (l asynqLogger) Warn(args ...any) {
	l.logger.Warn().Str("component", "asynq").Msg(fmt.Sprint(args...))
}

func (l asynqLogger) Error(args ...any) {
	l.logger.Error().Str("component", "asynq").Msg(fmt.Sprint(args...))
}

func (l asynqLogger) Fatal(args ...any) {
	l.logger.Fatal().Str("component", "asynq").Msg(fmt.Sprint(args...))
}
