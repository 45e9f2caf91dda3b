//go:build unit

package commands_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"coachwell/internal/domain/reminder"
	"coachwell/internal/domain/schedule"
	"coachwell/internal/infra/memstore"
	"coachwell/internal/integration/meeting"
	"coachwell/internal/integration/notifier"
	"coachwell/internal/pkg/clock"
	"coachwell/internal/pkg/config"
	"coachwell/internal/scheduler"
	"coachwell/internal/usecase/commands"
	"coachwell/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureNotifier struct {
	sends []reminder.Kind
	ids   []uuid.UUID
}

func (c *captureNotifier) Send(_ context.Context, kind reminder.Kind, _ string, details notifier.Details) error {
	c.sends = append(c.sends, kind)
	c.ids = append(c.ids, details.AppointmentID)
	return nil
}

// Booking, reminding and cancelling against the same store, driven by a
// mock clock instead of real ticks.
func TestBookingReminderFlow(t *testing.T) {
	ctx := context.Background()

	store := memstore.New()
	clk := clock.NewMockClock(time.Now().UTC().Truncate(time.Minute))
	captured := &captureNotifier{}
	cfg := config.NewTestConfig()

	sched := scheduler.New(captured, store.Appointments(), cfg.Scheduler, clk, slog.Default())
	provider := meeting.NewStaticProvider()
	bookings := commands.NewBookingCommands(
		store.Schedules(), store.Appointments(), sched, provider, cfg.Meeting, clk, slog.Default())
	cancellations := commands.NewCancellationCommands(
		store.Canceller(), sched, provider, slog.Default())

	kept := builder.NewAppointmentBuilder()
	kept.SessionTime = clk.Now().Add(48 * time.Hour)
	dropped := builder.NewAppointmentBuilder()
	dropped.SessionTime = clk.Now().Add(48*time.Hour + time.Hour)

	store.Seed(schedule.DayOf(kept.SessionTime), schedule.ClockTimeOf(kept.SessionTime))
	store.Seed(schedule.DayOf(dropped.SessionTime), schedule.ClockTimeOf(dropped.SessionTime))

	keptResult, err := bookings.Book(ctx, kept.SessionTime, kept.BuildRequester())
	require.NoError(t, err)
	droppedResult, err := bookings.Book(ctx, dropped.SessionTime, dropped.BuildRequester())
	require.NoError(t, err)

	// Cancelling one appointment silences only its reminders.
	require.NoError(t, cancellations.Cancel(ctx, droppedResult.AppointmentID, dropped.UserID))

	clk.Add(24 * time.Hour)
	sched.Tick(ctx, clk.Now())

	require.Len(t, captured.sends, 1)
	assert.Equal(t, reminder.KindH24, captured.sends[0])
	assert.Equal(t, keptResult.AppointmentID, captured.ids[0])

	// A restart between ticks must not lose the remaining reminders.
	rehydrated := scheduler.New(captured, store.Appointments(), cfg.Scheduler, clk, slog.Default())
	require.NoError(t, rehydrated.Rehydrate(ctx))

	kinds, ok := rehydrated.PendingKinds(keptResult.AppointmentID)
	require.True(t, ok)
	assert.Equal(t, []reminder.Kind{reminder.KindH1, reminder.KindM15}, kinds)
	_, ok = rehydrated.PendingKinds(droppedResult.AppointmentID)
	assert.False(t, ok, "cancelled appointments never rehydrate")
}
