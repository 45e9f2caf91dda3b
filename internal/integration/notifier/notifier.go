// Package notifier delivers reminder messages. Delivery is fire-and-forget;
// the scheduler never retries a failed send.
package notifier

import (
	"context"
	"log/slog"
	"time"

	"coachwell/internal/domain/reminder"
	"coachwell/internal/pkg/config"

	"github.com/google/uuid"
)

// Details is the appointment context attached to a reminder message.
type Details struct {
	AppointmentID uuid.UUID
	DisplayName   string
	SessionTime   time.Time
	JoinURL       *string
}

type Notifier interface {
	Send(ctx context.Context, kind reminder.Kind, contactAddress string, details Details) error
}

// NewNotifier returns the webhook notifier when one is configured and the
// log-only notifier otherwise.
func NewNotifier(cfg config.NotifierConfig, logger *slog.Logger) Notifier {
	if cfg.WebhookURL != "" {
		return NewWebhookNotifier(cfg.WebhookURL)
	}
	return NewLogNotifier(logger)
}
