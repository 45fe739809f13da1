package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	sent []WelcomeEmailPayload
	err  error
}

func (m *fakeMailer) SendWelcomeEmail(to, firstName, username string) error {
	m.sent = append(m.sent, WelcomeEmailPayload{To: to, FirstName: firstName, Username: username})
	return m.err
}

func newTestService() *JobService {
	log := zerolog.Nop()
	return &JobService{logger: &log}
}

func TestNewWelcomeEmailTask(t *testing.T) {
	task, err := NewWelcomeEmailTask("ann@example.com", "Ann", "ann")
	require.NoError(t, err)

	assert.Equal(t, TaskWelcome, task.Type())

	var p WelcomeEmailPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, WelcomeEmailPayload{To: "ann@example.com", FirstName: "Ann", Username: "ann"}, p)
}

func TestHandleWelcomeEmailTask(t *testing.T) {
	j := newTestService()
	mailer := &fakeMailer{}
	j.SetMailer(mailer)

	task, err := NewWelcomeEmailTask("ann@example.com", "Ann", "ann")
	require.NoError(t, err)

	require.NoError(t, j.handleWelcomeEmailTask(context.Background(), task))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "ann@example.com", mailer.sent[0].To)

	mailer.err = errors.New("resend down")
	err = j.handleWelcomeEmailTask(context.Background(), task)
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry, "delivery failures are retried")
}

func TestHandleWelcomeEmailTaskSkipsRetry(t *testing.T) {
	j := newTestService()

	bad := asynq.NewTask(TaskWelcome, []byte("{not json"))
	assert.ErrorIs(t, j.handleWelcomeEmailTask(context.Background(), bad), asynq.SkipRetry)

	task, err := NewWelcomeEmailTask("ann@example.com", "Ann", "ann")
	require.NoError(t, err)
	assert.ErrorIs(t, j.handleWelcomeEmailTask(context.Background(), task), asynq.SkipRetry, "no mailer configured")
}
