// Package memstore is a process-local implementation of the booking stores.
// It backs DB_DRIVER=memory and the unit suites; a single mutex serializes
// every conflicting write, which satisfies the same single-winner contract
// the postgres row lock provides.
package memstore

import (
	"sync"
	"time"

	"coachwell/internal/domain/appointment"
	"coachwell/internal/domain/schedule"

	"github.com/google/uuid"
)

type Store struct {
	mu    sync.Mutex
	days  map[string]*schedule.DailySchedule
	appts map[uuid.UUID]*appointment.Appointment
}

func New() *Store {
	return &Store{
		days:  make(map[string]*schedule.DailySchedule),
		appts: make(map[uuid.UUID]*appointment.Appointment),
	}
}

// Seed publishes open slots for a day; used by dev mode and tests.
func (s *Store) Seed(day schedule.Day, times ...schedule.ClockTime) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds := s.dayLocked(day)
	for _, at := range times {
		ds.Publish(at)
	}
	s.days[day.String()] = ds
}

func (s *Store) Schedules() *ScheduleStore {
	return &ScheduleStore{store: s}
}

func (s *Store) Appointments() *AppointmentStore {
	return &AppointmentStore{store: s}
}

func (s *Store) Canceller() *CancellationStore {
	return &CancellationStore{store: s}
}

// dayLocked returns the live schedule for a day, creating it lazily.
// Callers must hold mu.
func (s *Store) dayLocked(day schedule.Day) *schedule.DailySchedule {
	if ds, ok := s.days[day.String()]; ok {
		return ds
	}
	ds := schedule.NewDailySchedule(day)
	s.days[day.String()] = ds
	return ds
}

func cloneAppointment(a *appointment.Appointment) *appointment.Appointment {
	var meetingID, joinURL *string
	if p := a.MeetingID(); p != nil {
		v := *p
		meetingID = &v
	}
	if p := a.JoinURL(); p != nil {
		v := *p
		joinURL = &v
	}
	return appointment.Reconstruct(
		a.ID(), a.UserID(), a.DisplayName(), a.ContactAddress(),
		a.SessionTime(), a.Status(), meetingID, joinURL,
		a.CreatedAt(), a.UpdatedAt(),
	)
}

func touch(a *appointment.Appointment, createdAt time.Time) *appointment.Appointment {
	created := a.CreatedAt()
	if created.IsZero() {
		created = createdAt
	}
	var meetingID, joinURL *string
	if p := a.MeetingID(); p != nil {
		v := *p
		meetingID = &v
	}
	if p := a.JoinURL(); p != nil {
		v := *p
		joinURL = &v
	}
	return appointment.Reconstruct(
		a.ID(), a.UserID(), a.DisplayName(), a.ContactAddress(),
		a.SessionTime(), a.Status(), meetingID, joinURL,
		created, createdAt,
	)
}
