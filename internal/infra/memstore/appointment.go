package memstore

import (
	"context"
	"sort"
	"time"

	"coachwell/internal/domain/appointment"
	"coachwell/internal/infra"

	"github.com/google/uuid"
)

type AppointmentStore struct {
	store *Store
}

func (r *AppointmentStore) Create(_ context.Context, appt *appointment.Appointment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.appts[appt.ID()] = touch(appt, time.Now().UTC())
	return nil
}

func (r *AppointmentStore) Get(_ context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	appt, ok := r.store.appts[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "appointment not found", nil)
	}
	return cloneAppointment(appt), nil
}

func (r *AppointmentStore) Update(_ context.Context, appt *appointment.Appointment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.appts[appt.ID()]; !ok {
		return infra.WrapRepoErr(infra.KindNotFound, "appointment not found", nil)
	}
	r.store.appts[appt.ID()] = touch(appt, time.Now().UTC())
	return nil
}

func (r *AppointmentStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*appointment.Appointment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*appointment.Appointment
	for _, appt := range r.store.appts {
		if appt.UserID() == userID {
			out = append(out, cloneAppointment(appt))
		}
	}
	// Upcoming before everything else, newest session first within status.
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsUpcoming() != out[j].IsUpcoming() {
			return out[i].IsUpcoming()
		}
		return out[i].SessionTime().After(out[j].SessionTime())
	})
	return out, nil
}

func (r *AppointmentStore) ListUpcoming(_ context.Context) ([]*appointment.Appointment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*appointment.Appointment
	for _, appt := range r.store.appts {
		if appt.IsUpcoming() {
			out = append(out, cloneAppointment(appt))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SessionTime().Before(out[j].SessionTime())
	})
	return out, nil
}
