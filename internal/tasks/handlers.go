package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/Vedant-Rajput22/hostel-complain-info/internal/mailer"
)

type Handler struct {
	mailer *mailer.Mailer
	logger *slog.Logger
}

func NewHandler(m *mailer.Mailer, logger *slog.Logger) *Handler {
	return &Handler{mailer: m, logger: logger}
}

func (h *Handler) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeVerificationEmail, h.HandleVerificationEmail)
}

func (h *Handler) HandleVerificationEmail(ctx context.Context, t *asynq.Task) error {
	var payload VerificationEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	if err := h.mailer.SendVerification(payload.Email, payload.Name, payload.VerifyURL); err != nil {
		h.logger.Error("failed to send verification mail", "email", payload.Email, "error", err)
		return err
	}

	h.logger.Info("sent verification mail", "email", payload.Email)
	return nil
}
