package memstore

import (
	"context"
	"log/slog"
	"time"

	"coachwell/internal/domain/appointment"
	"coachwell/internal/domain/schedule"
	"coachwell/internal/infra"

	"github.com/google/uuid"
)

type CancellationStore struct {
	store *Store
}

// CancelBooking frees the slot and marks the appointment cancelled under
// one lock acquisition, mirroring the postgres transaction.
func (r *CancellationStore) CancelBooking(
	_ context.Context,
	id uuid.UUID,
	validate func(*appointment.Appointment) error,
) (*appointment.Appointment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.appts[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "appointment not found", nil)
	}

	working := cloneAppointment(stored)
	if err := validate(working); err != nil {
		return nil, err
	}

	day := schedule.DayOf(working.SessionTime())
	at := schedule.ClockTimeOf(working.SessionTime())
	ds := r.store.dayLocked(day)
	if err := ds.Release(at); err != nil {
		slog.Warn("cancellation found no booked slot to release",
			"appointment_id", id, "day", day.String(), "slot_time", at.String())
	}

	r.store.appts[id] = touch(working, time.Now().UTC())
	return working, nil
}
