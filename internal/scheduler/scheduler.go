// Package scheduler fires time-relative reminders for upcoming appointments.
// Schedule state lives in process memory and is rebuilt from the appointment
// store on startup, so a restart never silently drops pending reminders.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"coachwell/internal/domain/appointment"
	"coachwell/internal/domain/reminder"
	"coachwell/internal/integration/notifier"
	"coachwell/internal/pkg/clock"
	"coachwell/internal/pkg/config"

	"github.com/google/uuid"
)

type AppointmentSource interface {
	ListUpcoming(ctx context.Context) ([]*appointment.Appointment, error)
}

type Scheduler struct {
	mu        sync.Mutex
	schedules map[uuid.UUID]*reminder.Schedule

	notifier notifier.Notifier
	source   AppointmentSource
	cfg      config.SchedulerConfig
	clock    clock.Clock
	logger   *slog.Logger
}

func New(
	n notifier.Notifier,
	source AppointmentSource,
	cfg config.SchedulerConfig,
	clk clock.Clock,
	logger *slog.Logger,
) *Scheduler {
	return &Scheduler{
		schedules: make(map[uuid.UUID]*reminder.Schedule),
		notifier:  n,
		source:    source,
		cfg:       cfg,
		clock:     clk,
		logger:    logger,
	}
}

// Schedule registers reminders for a freshly booked appointment. Kinds
// whose fire time already passed are never scheduled.
func (s *Scheduler) Schedule(appt *appointment.Appointment) error {
	sched := reminder.NewSchedule(
		appt.ID(), appt.UserID(), appt.DisplayName(), appt.ContactAddress(),
		appt.SessionTime(), appt.JoinURL(), s.clock.Now(),
	)

	s.mu.Lock()
	s.schedules[appt.ID()] = sched
	s.mu.Unlock()

	s.logger.Info("reminders scheduled",
		"appointment_id", appt.ID(),
		"session_time", appt.SessionTime(),
		"kinds", sched.PendingKinds())
	return nil
}

// Cancel drops the schedule for a cancelled appointment; no-op if absent.
func (s *Scheduler) Cancel(appointmentID uuid.UUID) error {
	s.mu.Lock()
	_, existed := s.schedules[appointmentID]
	delete(s.schedules, appointmentID)
	s.mu.Unlock()

	if existed {
		s.logger.Info("reminders cancelled", "appointment_id", appointmentID)
	}
	return nil
}

// Tick sends every due reminder and garbage-collects schedules past their
// grace window. The mutex is held for the whole pass, so overlapping ticks
// serialize and a reminder can never be sent twice.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sched := range s.schedules {
		for _, kind := range sched.Due(now) {
			err := s.notifier.Send(ctx, kind, sched.ContactAddress(), notifier.Details{
				AppointmentID: sched.AppointmentID(),
				DisplayName:   sched.DisplayName(),
				SessionTime:   sched.SessionTime(),
				JoinURL:       sched.JoinURL(),
			})
			if err != nil {
				// At-most-once: the flag flips even when delivery failed.
				s.logger.Warn("reminder delivery failed",
					"appointment_id", id, "kind", string(kind), "error", err)
			}
			sched.MarkSent(kind)
		}

		if sched.Expired(now, s.cfg.GracePeriod) {
			delete(s.schedules, id)
			s.logger.Debug("reminder schedule expired", "appointment_id", id)
		}
	}
}

// Rehydrate rebuilds the in-memory schedules from every upcoming
// appointment. Reminders whose window passed while the process was down
// are dropped, logged so operators can see what the restart cost.
func (s *Scheduler) Rehydrate(ctx context.Context) error {
	appts, err := s.source.ListUpcoming(ctx)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	restored := 0
	for _, appt := range appts {
		if !now.Before(appt.SessionTime().Add(s.cfg.GracePeriod)) {
			continue
		}
		for _, kind := range reminder.Kinds() {
			fireAt := appt.SessionTime().Add(-kind.Offset())
			if !fireAt.After(now) && appt.SessionTime().After(now) {
				s.logger.Info("reminder window passed during downtime, dropping",
					"appointment_id", appt.ID(), "kind", string(kind), "fire_at", fireAt)
			}
		}
		if err := s.Schedule(appt); err != nil {
			return err
		}
		restored++
	}

	s.logger.Info("reminder schedules rehydrated",
		"appointments", len(appts), "restored", restored)
	return nil
}

// Run drives Tick until ctx is cancelled. Stopping only pauses delivery;
// sent flags and deletions are idempotent across restarts of the loop.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(ctx, s.clock.Now())
		}
	}
}

// PendingKinds reports the unsent reminder kinds for an appointment.
func (s *Scheduler) PendingKinds(appointmentID uuid.UUID) ([]reminder.Kind, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sched, ok := s.schedules[appointmentID]
	if !ok {
		return nil, false
	}
	return sched.PendingKinds(), true
}
