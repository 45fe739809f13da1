package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskWelcome is the task type sent after registration.
	TaskWelcome = "email:welcome"
)

// WelcomeEmailPayload is the JSON payload of a welcome email task.
type WelcomeEmailPayload struct {
	To        string `json:"to"`
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
}

// NewWelcomeEmailTask builds a welcome email task:
// up to 3 retries on the default queue, killed after 30 seconds.
func NewWelcomeEmailTask(to, firstName, username string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{
		To:        to,
		FirstName: firstName,
		Username:  username,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
