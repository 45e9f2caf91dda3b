package notifier

import (
	"context"
	"log/slog"

	"coachwell/internal/domain/reminder"
)

// LogNotifier writes reminders to the log stream. Default when no webhook
// is configured, and handy in development.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(
	_ context.Context,
	kind reminder.Kind,
	contactAddress string,
	details Details,
) error {
	n.logger.Info("reminder",
		"kind", string(kind),
		"contact_address", contactAddress,
		"appointment_id", details.AppointmentID,
		"session_time", details.SessionTime,
	)
	return nil
}
