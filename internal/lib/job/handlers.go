package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/foodgram/internal/config"
	"github.com/deppfellow/foodgram/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Mailer sends the emails produced by tasks.
type Mailer interface {
	SendWelcomeEmail(to, firstName, username string) error
}

// InitHandlers wires the email client used by the task handlers.
// It must run before Start.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	j.mailer = email.NewClient(cfg, logger)
}

// SetMailer replaces the mailer, mostly for tests.
func (j *JobService) SetMailer(m Mailer) {
	j.mailer = m
}

func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// Retrying a malformed payload cannot succeed.
		return fmt.Errorf("failed to unmarshal welcome email payload: %v: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().Str("type", "welcome").Str("to", p.To).Logger()
	log.Info().Msg("Processing welcome email task")

	if j.mailer == nil {
		return fmt.Errorf("welcome email: mailer not initialised: %w", asynq.SkipRetry)
	}

	if err := j.mailer.SendWelcomeEmail(p.To, p.FirstName, p.Username); err != nil {
		log.Error().Err(err).Msg("Failed to send welcome email")
		return err
	}

	log.Info().Msg("Successfully sent welcome email")
	return nil
}
