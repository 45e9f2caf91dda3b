package commands

import (
	"context"
	"errors"
	"log/slog"

	"coachwell/internal/domain/appointment"
	"coachwell/internal/infra"
	"coachwell/internal/integration/meeting"
	"coachwell/internal/pkg/errs"

	"github.com/google/uuid"
)

type CancellationCommands interface {
	Cancel(ctx context.Context, appointmentID, requesterID uuid.UUID) error
}

type cancellationUseCaseImpl struct {
	canceller CancellationStore
	scheduler ReminderScheduler
	meetings  meeting.Provider
	logger    *slog.Logger
}

func NewCancellationCommands(
	canceller CancellationStore,
	scheduler ReminderScheduler,
	meetings meeting.Provider,
	logger *slog.Logger,
) CancellationCommands {
	return &cancellationUseCaseImpl{
		canceller: canceller,
		scheduler: scheduler,
		meetings:  meetings,
		logger:    logger,
	}
}

// Cancel validates ownership and state against the locked appointment, then
// commits the freed slot and the cancelled status atomically. A repeat call
// settles on ErrAppointmentNotActive without mutating anything.
func (c *cancellationUseCaseImpl) Cancel(ctx context.Context, appointmentID, requesterID uuid.UUID) error {
	appt, err := c.canceller.CancelBooking(ctx, appointmentID, func(a *appointment.Appointment) error {
		if !a.OwnedBy(requesterID) {
			return ErrForbidden
		}
		if err := a.Cancel(); err != nil {
			return errs.Mark(err, ErrAppointmentNotActive)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrForbidden), errors.Is(err, ErrAppointmentNotActive):
			return err
		case infra.IsKind(err, infra.KindNotFound):
			return errs.Mark(err, ErrAppointmentNotFound)
		default:
			return errs.Mark(err, ErrStoreFailure)
		}
	}

	// Cancellation has succeeded; the cleanup below is best-effort.
	if err := c.scheduler.Cancel(appointmentID); err != nil {
		c.logger.Warn("failed to cancel reminders",
			"appointment_id", appointmentID, "error", err)
	}

	if meetingID := appt.MeetingID(); meetingID != nil {
		if _, err := c.meetings.DeleteMeeting(ctx, *meetingID); err != nil {
			c.logger.Warn("failed to delete meeting",
				"appointment_id", appointmentID, "meeting_id", *meetingID, "error", err)
		}
	}

	return nil
}
