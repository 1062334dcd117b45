package tasks

import (
	"context"

	"github.com/hibiken/asynq"
)

// Enqueuer submits mail tasks from the API process. It satisfies
// auth.MailEnqueuer; a nil asynq client (Redis unavailable) is tolerated
// upstream by passing no enqueuer at all.
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(client *asynq.Client) *Enqueuer {
	return &Enqueuer{client: client}
}

func (e *Enqueuer) EnqueueVerificationEmail(ctx context.Context, email, name, verifyURL string) error {
	task, err := NewVerificationEmailTask(VerificationEmailPayload{
		Email:     email,
		Name:      name,
		VerifyURL: verifyURL,
	})
	if err != nil {
		return err
	}
	_, err = e.client.EnqueueContext(ctx, task)
	return err
}
