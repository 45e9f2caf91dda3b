//go:build unit

package schedule_test

import (
	"testing"

	"coachwell/internal/domain/schedule"

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

func mustDay(t *testing.T, value string) schedule.Day {
	t.Helper()
	d, err := schedule.NewDay(value)
	require.NoError(t, err)
	return d
}

func TestDailySchedule_Book(t *testing.T) {
	day := mustDay(t, "2026-09-15")
	ten := mustClockTime(t, "10:00")
	booker := schedule.Booker{UserID: uuid.New(), Name: "Avery Client"}

	t.Run("books an available slot", func(t *testing.T) {
		ds := schedule.NewDailySchedule(day)
		ds.Publish(ten)

		require.NoError(t, ds.Book(ten, booker))

		slot, ok := ds.Slot(ten)
		require.True(t, ok)
		assert.Equal(t, schedule.StatusBooked, slot.Status())
		require.NotNil(t, slot.BookedBy())
		assert.Equal(t, booker.UserID, slot.BookedBy().UserID)
	})

	t.Run("rejects a missing slot", func(t *testing.T) {
		ds := schedule.NewDailySchedule(day)

		err := ds.Book(ten, booker)
		assert.ErrorIs(t, err, schedule.ErrSlotUnavailable)
	})

	t.Run("rejects an already booked slot", func(t *testing.T) {
		ds := schedule.NewDailySchedule(day)
		ds.Publish(ten)
		require.NoError(t, ds.Book(ten, booker))

		err := ds.Book(ten, schedule.Booker{UserID: uuid.New(), Name: "Blake Rival"})
		assert.ErrorIs(t, err, schedule.ErrSlotUnavailable)

		slot, _ := ds.Slot(ten)
		assert.Equal(t, booker.UserID, slot.BookedBy().UserID, "loser must not overwrite the winner")
	})

	t.Run("rejects a blocked slot", func(t *testing.T) {
		ds := schedule.NewDailySchedule(day)
		ds.Block(ten)

		err := ds.Book(ten, booker)
		assert.ErrorIs(t, err, schedule.ErrSlotUnavailable)

		slot, _ := ds.Slot(ten)
		assert.Equal(t, schedule.StatusUnavailable, slot.Status())
	})
}

func TestDailySchedule_Release(t *testing.T) {
	day := mustDay(t, "2026-09-15")
	ten := mustClockTime(t, "10:00")
	booker := schedule.Booker{UserID: uuid.New(), Name: "Avery Client"}

	t.Run("frees a booked slot", func(t *testing.T) {
		ds := schedule.NewDailySchedule(day)
		ds.Publish(ten)
		require.NoError(t, ds.Book(ten, booker))

		require.NoError(t, ds.Release(ten))

		slot, ok := ds.Slot(ten)
		require.True(t, ok)
		assert.Equal(t, schedule.StatusAvailable, slot.Status())
		assert.Nil(t, slot.BookedBy())
	})

	t.Run("rejects an available slot", func(t *testing.T) {
		ds := schedule.NewDailySchedule(day)
		ds.Publish(ten)

		assert.ErrorIs(t, ds.Release(ten), schedule.ErrSlotNotBooked)
	})

	t.Run("rejects a blocked slot", func(t *testing.T) {
		ds := schedule.NewDailySchedule(day)
		ds.Block(ten)

		assert.ErrorIs(t, ds.Release(ten), schedule.ErrSlotNotBooked)
	})

	t.Run("rejects a missing slot", func(t *testing.T) {
		ds := schedule.NewDailySchedule(day)

		assert.ErrorIs(t, ds.Release(ten), schedule.ErrSlotNotBooked)
	})
}

func TestDailySchedule_Publish(t *testing.T) {
	day := mustDay(t, "2026-09-15")
	ten := mustClockTime(t, "10:00")
	booker := schedule.Booker{UserID: uuid.New(), Name: "Avery Client"}

	t.Run("republishing a booked slot is a no-op", func(t *testing.T) {
		ds := schedule.NewDailySchedule(day)
		ds.Publish(ten)
		require.NoError(t, ds.Book(ten, booker))

		ds.Publish(ten)

		slot, _ := ds.Slot(ten)
		assert.Equal(t, schedule.StatusBooked, slot.Status(), "seeding must not release bookings")
	})
}

func TestDailySchedule_OpenTimes(t *testing.T) {
	day := mustDay(t, "2026-09-15")
	booker := schedule.Booker{UserID: uuid.New(), Name: "Avery Client"}

	ds := schedule.NewDailySchedule(day)
	for _, v := range []string{"14:00", "09:00", "11:00", "10:00"} {
		ds.Publish(mustClockTime(t, v))
	}
	ds.Block(mustClockTime(t, "12:00"))
	require.NoError(t, ds.Book(mustClockTime(t, "11:00"), booker))

	open := ds.OpenTimes()

	got := make([]string, len(open))
	for i, at := range open {
		got[i] = at.String()
	}
	assert.Equal(t, []string{"09:00", "10:00", "14:00"}, got)
}

func TestDailySchedule_Clone(t *testing.T) {
	day := mustDay(t, "2026-09-15")
	ten := mustClockTime(t, "10:00")
	booker := schedule.Booker{UserID: uuid.New(), Name: "Avery Client"}

	ds := schedule.NewDailySchedule(day)
	ds.Publish(ten)

	clone := ds.Clone()
	require.NoError(t, clone.Book(ten, booker))

	original, _ := ds.Slot(ten)
	assert.Equal(t, schedule.StatusAvailable, original.Status(), "mutating a clone must not touch the original")
}
