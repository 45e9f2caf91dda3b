//go:build unit

package appointment_test

import (
	"testing"
	"time"

	"coachwell/internal/domain/appointment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppointment(t *testing.T) {
	sessionTime := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	t.Run("basic success case", func(t *testing.T) {
		userID := uuid.New()
		actual, err := appointment.NewAppointment(userID, "Avery Client", "avery@example.com", sessionTime)
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, userID, actual.UserID())
		assert.Equal(t, appointment.StatusUpcoming, actual.Status())
		assert.True(t, actual.IsUpcoming())
		assert.Nil(t, actual.MeetingID())
		assert.Nil(t, actual.JoinURL())
	})

	t.Run("rejects empty contact address", func(t *testing.T) {
		_, err := appointment.NewAppointment(uuid.New(), "Avery Client", "", sessionTime)
		assert.ErrorIs(t, err, appointment.ErrEmptyContact)
	})

	t.Run("normalizes session time to UTC", func(t *testing.T) {
		jst := time.FixedZone("JST", 9*60*60)
		actual, err := appointment.NewAppointment(
			uuid.New(), "Avery Client", "avery@example.com", sessionTime.In(jst))
		require.NoError(t, err)

		assert.Equal(t, time.UTC, actual.SessionTime().Location())
		assert.True(t, actual.SessionTime().Equal(sessionTime))
	})
}

func TestAppointment_Cancel(t *testing.T) {
	sessionTime := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	t.Run("cancels an upcoming appointment", func(t *testing.T) {
		appt, err := appointment.NewAppointment(uuid.New(), "Avery Client", "avery@example.com", sessionTime)
		require.NoError(t, err)

		require.NoError(t, appt.Cancel())
		assert.Equal(t, appointment.StatusCancelled, appt.Status())
		assert.False(t, appt.IsUpcoming())
	})

	t.Run("cancelling twice fails", func(t *testing.T) {
		appt, err := appointment.NewAppointment(uuid.New(), "Avery Client", "avery@example.com", sessionTime)
		require.NoError(t, err)
		require.NoError(t, appt.Cancel())

		assert.ErrorIs(t, appt.Cancel(), appointment.ErrNotUpcoming)
		assert.Equal(t, appointment.StatusCancelled, appt.Status())
	})

	t.Run("cancelling a completed appointment fails", func(t *testing.T) {
		appt := appointment.Reconstruct(
			uuid.New(), uuid.New(), "Avery Client", "avery@example.com",
			sessionTime, appointment.StatusCompleted, nil, nil,
			time.Now(), time.Now(),
		)

		assert.ErrorIs(t, appt.Cancel(), appointment.ErrNotUpcoming)
		assert.Equal(t, appointment.StatusCompleted, appt.Status())
	})
}

func TestAppointment_OwnedBy(t *testing.T) {
	sessionTime := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	owner := uuid.New()

	appt, err := appointment.NewAppointment(owner, "Avery Client", "avery@example.com", sessionTime)
	require.NoError(t, err)

	assert.True(t, appt.OwnedBy(owner))
	assert.False(t, appt.OwnedBy(uuid.New()))
}

func TestAppointment_AttachMeeting(t *testing.T) {
	sessionTime := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	appt, err := appointment.NewAppointment(uuid.New(), "Avery Client", "avery@example.com", sessionTime)
	require.NoError(t, err)

	appt.AttachMeeting("room-1", "https://meet.example.com/room-1")

	require.NotNil(t, appt.MeetingID())
	require.NotNil(t, appt.JoinURL())
	assert.Equal(t, "room-1", *appt.MeetingID())
	assert.Equal(t, "https://meet.example.com/room-1", *appt.JoinURL())
}
