package memstore

import (
	"context"

	"coachwell/internal/domain/schedule"
	"coachwell/internal/infra"
)

type ScheduleStore struct {
	store *Store
}

func (r *ScheduleStore) Get(_ context.Context, day schedule.Day) (*schedule.DailySchedule, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	ds, ok := r.store.days[day.String()]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "daily schedule not found", nil)
	}
	return ds.Clone(), nil
}

// Transact applies fn to a copy and commits it only on success, so an
// aborted booking leaves the day untouched.
func (r *ScheduleStore) Transact(
	_ context.Context,
	day schedule.Day,
	fn func(*schedule.DailySchedule) error,
) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	working := r.store.dayLocked(day).Clone()
	if err := fn(working); err != nil {
		return err
	}
	r.store.days[day.String()] = working
	return nil
}
