package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task type names
const (
	TypeVerificationEmail = "email:verification"
)

// VerificationEmailPayload contains the data for a verification mail task.
type VerificationEmailPayload struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	VerifyURL string `json:"verify_url"`
}

func NewVerificationEmailTask(payload VerificationEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeVerificationEmail, data, asynq.Queue("mail"), asynq.MaxRetry(5)), nil
}
