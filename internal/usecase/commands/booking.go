package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"coachwell/internal/domain/appointment"
	"coachwell/internal/domain/schedule"
	"coachwell/internal/infra"
	"coachwell/internal/integration/meeting"
	"coachwell/internal/pkg/clock"
	"coachwell/internal/pkg/config"
	"coachwell/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrSlotUnavailable      = errs.New("slot unavailable")
	ErrSessionTimeInPast    = errs.New("session time is in the past")
	ErrStoreFailure         = errs.New("store failure")
	ErrDomainValidation     = errs.New("domain validation error")
	ErrAppointmentNotFound  = errs.New("appointment not found")
	ErrForbidden            = errs.New("appointment belongs to another user")
	ErrAppointmentNotActive = errs.New("only upcoming appointments may be cancelled")
)

type Requester struct {
	UserID         uuid.UUID
	DisplayName    string
	ContactAddress string
}

type BookingResult struct {
	AppointmentID uuid.UUID
	JoinURL       *string
}

type BookingCommands interface {
	Book(ctx context.Context, sessionTime time.Time, requester Requester) (*BookingResult, error)
}

type bookingUseCaseImpl struct {
	scheduleStore    ScheduleStore
	appointmentStore AppointmentStore
	scheduler        ReminderScheduler
	meetings         meeting.Provider
	cfg              config.MeetingConfig
	clock            clock.Clock
	logger           *slog.Logger
}

func NewBookingCommands(
	scheduleStore ScheduleStore,
	appointmentStore AppointmentStore,
	scheduler ReminderScheduler,
	meetings meeting.Provider,
	cfg config.MeetingConfig,
	clk clock.Clock,
	logger *slog.Logger,
) BookingCommands {
	return &bookingUseCaseImpl{
		scheduleStore:    scheduleStore,
		appointmentStore: appointmentStore,
		scheduler:        scheduler,
		meetings:         meetings,
		cfg:              cfg,
		clock:            clk,
		logger:           logger,
	}
}

// Book reserves the slot first; everything after the slot transaction
// commits is best-effort and can no longer fail the booking, except
// persisting the appointment itself, which compensates by releasing the
// slot and discarding any provisioned meeting.
func (b *bookingUseCaseImpl) Book(
	ctx context.Context,
	sessionTime time.Time,
	requester Requester,
) (*BookingResult, error) {
	sessionTime = sessionTime.UTC().Truncate(time.Minute)
	if !sessionTime.After(b.clock.Now()) {
		return nil, ErrSessionTimeInPast
	}

	day := schedule.DayOf(sessionTime)
	at := schedule.ClockTimeOf(sessionTime)

	err := b.scheduleStore.Transact(ctx, day, func(ds *schedule.DailySchedule) error {
		return ds.Book(at, schedule.Booker{
			UserID: requester.UserID,
			Name:   requester.DisplayName,
		})
	})
	if err != nil {
		if errors.Is(err, schedule.ErrSlotUnavailable) {
			return nil, errs.Mark(err, ErrSlotUnavailable)
		}
		return nil, errs.Mark(err, ErrStoreFailure)
	}

	appt, err := appointment.NewAppointment(
		requester.UserID, requester.DisplayName, requester.ContactAddress, sessionTime)
	if err != nil {
		b.releaseSlot(ctx, day, at)
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	// The slot is committed; a missing link never rolls it back.
	if m := b.createMeeting(ctx, requester, sessionTime); m != nil {
		appt.AttachMeeting(m.ID, m.JoinURL)
	}

	if err := b.appointmentStore.Create(ctx, appt); err != nil {
		b.releaseSlot(ctx, day, at)
		b.discardMeeting(ctx, appt.MeetingID())
		return nil, errs.Mark(err, ErrStoreFailure)
	}

	if err := b.scheduler.Schedule(appt); err != nil {
		b.logger.Warn("failed to schedule reminders",
			"appointment_id", appt.ID(), "error", err)
	}

	return &BookingResult{
		AppointmentID: appt.ID(),
		JoinURL:       appt.JoinURL(),
	}, nil
}

func (b *bookingUseCaseImpl) createMeeting(
	ctx context.Context,
	requester Requester,
	sessionTime time.Time,
) *meeting.Meeting {
	m, err := b.meetings.CreateMeeting(
		ctx,
		"coaching-session",
		sessionTime,
		b.cfg.DurationMinutes,
		[]string{requester.ContactAddress},
	)
	if err != nil {
		b.logger.Warn("failed to create meeting link, booking continues without one",
			"provider", b.meetings.Name(), "error", err)
		return nil
	}
	return m
}

// discardMeeting tears down a room provisioned for a booking that did not
// survive persistence.
func (b *bookingUseCaseImpl) discardMeeting(ctx context.Context, meetingID *string) {
	if meetingID == nil {
		return
	}
	if _, err := b.meetings.DeleteMeeting(ctx, *meetingID); err != nil {
		b.logger.Warn("failed to delete meeting after booking failure",
			"meeting_id", *meetingID, "error", err)
	}
}

// releaseSlot compensates a reservation whose appointment could not be
// persisted, so the slot does not leak as permanently booked.
func (b *bookingUseCaseImpl) releaseSlot(ctx context.Context, day schedule.Day, at schedule.ClockTime) {
	err := b.scheduleStore.Transact(ctx, day, func(ds *schedule.DailySchedule) error {
		return ds.Release(at)
	})
	if err != nil && !infra.IsKind(err, infra.KindNotFound) {
		b.logger.Error("failed to release slot after booking failure",
			"day", day.String(), "slot_time", at.String(), "error", err)
	}
}
