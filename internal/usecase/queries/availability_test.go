//go:build unit

package queries_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"coachwell/internal/domain/schedule"
	"coachwell/internal/infra"
	"coachwell/internal/infra/memstore"
	"coachwell/internal/pkg/clock"
	"coachwell/internal/pkg/config"
	"coachwell/internal/pkg/errs"
	"coachwell/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustClockTime(t *testing.T, value string) schedule.ClockTime {
	t.Helper()
	ct, err := schedule.NewClockTime(value)
	require.NoError(t, err)
	return ct
}

type availabilityFixture struct {
	store *memstore.Store
	clock *clock.MockClock
	query queries.AvailabilityQueries
}

func newAvailabilityFixture(t *testing.T, reader queries.ScheduleReader) *availabilityFixture {
	t.Helper()

	store := memstore.New()
	clk := clock.NewMockClock(time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC))
	cfg := config.BookingConfig{MaxWindowDays: 7}

	if reader == nil {
		reader = store.Schedules()
	}

	return &availabilityFixture{
		store: store,
		clock: clk,
		query: queries.NewAvailabilityQueries(reader, cfg, clk, slog.Default()),
	}
}

func TestAvailabilityQueries_ListAvailable(t *testing.T) {
	ctx := context.Background()

	t.Run("returns open future slots ascending across days", func(t *testing.T) {
		f := newAvailabilityFixture(t, nil)
		today := schedule.DayOf(f.clock.Now())
		tomorrow := today.Next()

		f.store.Seed(tomorrow, mustClockTime(t, "14:00"), mustClockTime(t, "09:00"))
		f.store.Seed(today, mustClockTime(t, "15:00"), mustClockTime(t, "11:00"))

		slots, err := f.query.ListAvailable(ctx, 7)
		require.NoError(t, err)

		require.Len(t, slots, 4)
		assert.Equal(t, mustClockTime(t, "11:00").Instant(today), slots[0])
		assert.Equal(t, mustClockTime(t, "15:00").Instant(today), slots[1])
		assert.Equal(t, mustClockTime(t, "09:00").Instant(tomorrow), slots[2])
		assert.Equal(t, mustClockTime(t, "14:00").Instant(tomorrow), slots[3])
	})

	t.Run("excludes past and current slots", func(t *testing.T) {
		f := newAvailabilityFixture(t, nil)
		today := schedule.DayOf(f.clock.Now())

		// Clock is 10:00; 09:00 is past, 10:00 is not strictly future.
		f.store.Seed(today, mustClockTime(t, "09:00"), mustClockTime(t, "10:00"), mustClockTime(t, "11:00"))

		slots, err := f.query.ListAvailable(ctx, 1)
		require.NoError(t, err)

		require.Len(t, slots, 1)
		assert.Equal(t, mustClockTime(t, "11:00").Instant(today), slots[0])
	})

	t.Run("excludes booked and blocked slots", func(t *testing.T) {
		f := newAvailabilityFixture(t, nil)
		today := schedule.DayOf(f.clock.Now())
		f.store.Seed(today, mustClockTime(t, "11:00"), mustClockTime(t, "12:00"))

		err := f.store.Schedules().Transact(ctx, today, func(ds *schedule.DailySchedule) error {
			ds.Block(mustClockTime(t, "13:00"))
			return ds.Book(mustClockTime(t, "12:00"), schedule.Booker{UserID: uuid.New(), Name: "Avery Client"})
		})
		require.NoError(t, err)

		slots, err := f.query.ListAvailable(ctx, 1)
		require.NoError(t, err)

		require.Len(t, slots, 1)
		assert.Equal(t, mustClockTime(t, "11:00").Instant(today), slots[0])
	})

	t.Run("days without a schedule contribute nothing", func(t *testing.T) {
		f := newAvailabilityFixture(t, nil)

		slots, err := f.query.ListAvailable(ctx, 7)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("window is clamped to the configured maximum", func(t *testing.T) {
		f := newAvailabilityFixture(t, nil)
		today := schedule.DayOf(f.clock.Now())

		day := today
		for i := 0; i < 10; i++ {
			f.store.Seed(day, mustClockTime(t, "11:00"))
			day = day.Next()
		}

		slots, err := f.query.ListAvailable(ctx, 100)
		require.NoError(t, err)
		assert.Len(t, slots, 7, "only MaxWindowDays days are scanned")

		slots, err = f.query.ListAvailable(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, slots, 7, "zero falls back to the maximum")

		slots, err = f.query.ListAvailable(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, slots, 2)
	})

	t.Run("an unreadable day is skipped, not fatal", func(t *testing.T) {
		inner := memstore.New()
		reader := &flakyReader{inner: inner.Schedules()}
		f := newAvailabilityFixture(t, reader)

		today := schedule.DayOf(f.clock.Now())
		inner.Seed(today, mustClockTime(t, "11:00"))
		inner.Seed(today.Next(), mustClockTime(t, "11:00"))
		reader.failOn = today.Next().String()

		slots, err := f.query.ListAvailable(ctx, 7)
		require.NoError(t, err)
		require.Len(t, slots, 1)
		assert.Equal(t, mustClockTime(t, "11:00").Instant(today), slots[0])
	})
}

// flakyReader fails reads for one specific day.
type flakyReader struct {
	inner  queries.ScheduleReader
	failOn string
}

func (r *flakyReader) Get(ctx context.Context, day schedule.Day) (*schedule.DailySchedule, error) {
	if day.String() == r.failOn {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "read failed", errs.New("disk on fire"))
	}
	return r.inner.Get(ctx, day)
}
