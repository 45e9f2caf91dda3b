package commands

import (
	"context"

	"coachwell/internal/domain/appointment"
	"coachwell/internal/domain/schedule"

	"github.com/google/uuid"
)

// ScheduleStore is the transactional slot store. Transact is a serializable
// read-modify-write on one day's schedule: when two bookers race, exactly
// one fn commits and the other observes the mutated state.
type ScheduleStore interface {
	Get(ctx context.Context, day schedule.Day) (*schedule.DailySchedule, error)
	Transact(ctx context.Context, day schedule.Day, fn func(*schedule.DailySchedule) error) error
}

type AppointmentStore interface {
	Create(ctx context.Context, appt *appointment.Appointment) error
	Get(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
	Update(ctx context.Context, appt *appointment.Appointment) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*appointment.Appointment, error)
	ListUpcoming(ctx context.Context) ([]*appointment.Appointment, error)
}

// CancellationStore loads the appointment, runs validate against it, and on
// success commits the freed slot and the cancelled status as one unit.
type CancellationStore interface {
	CancelBooking(ctx context.Context, id uuid.UUID, validate func(*appointment.Appointment) error) (*appointment.Appointment, error)
}

// ReminderScheduler is the booking side's view of the reminder engine.
// Both calls are best-effort: failures are logged, never propagated.
type ReminderScheduler interface {
	Schedule(appt *appointment.Appointment) error
	Cancel(appointmentID uuid.UUID) error
}
