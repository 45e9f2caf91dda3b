//go:build e2e

package booking_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	reqdto "coachwell/internal/handler/dto/request"
	"coachwell/internal/handler/dto/response"
	"coachwell/tests/common/authtest"
	"coachwell/tests/common/dbtest"
	"coachwell/tests/common/httptest"
	"coachwell/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	availabilityURL = "/api/availability"
	appointmentsURL = "/api/appointments"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func TestBookingSuite(t *testing.T) {
	suite.Run(t, new(BookingSuite))
}

func (s *BookingSuite) issueToken(userID uuid.UUID, email, name string) string {
	return authtest.IssueToken(s.T(), s.Config.JWT.Secret, userID, email, name)
}

func (s *BookingSuite) seedTomorrowSlot(slotTime string) time.Time {
	t := s.T()
	tomorrow := time.Now().UTC().Add(24 * time.Hour)
	day := tomorrow.Format("2006-01-02")
	dbtest.SeedSlot(t, s.DB, day, slotTime)

	sessionTime, err := time.Parse("2006-01-02 15:04", day+" "+slotTime)
	require.NoError(t, err)
	return sessionTime.UTC()
}

func (s *BookingSuite) TestBookingLifecycle() {
	s.Run("book, conflict, cancel, rebook", func() {
		t := s.T()

		sessionTime := s.seedTomorrowSlot("10:00")
		ownerID := uuid.New()
		ownerToken := s.issueToken(ownerID, "owner@example.com", "Olive Owner")
		rivalToken := s.issueToken(uuid.New(), "rival@example.com", "Riley Rival")

		// The seeded slot is visible.
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, availabilityURL, nil, ownerToken)
		require.Equal(t, http.StatusOK, w.Code)

		var avail response.AvailabilityResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &avail))
		require.Len(t, avail.Slots, 1)
		require.True(t, sessionTime.Equal(avail.Slots[0].UTC()))

		// First booking wins.
		reqBody := reqdto.BookAppointmentRequest{SessionTime: sessionTime}
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, appointmentsURL, reqBody, ownerToken)
		require.Equal(t, http.StatusCreated, w.Code, "booking should succeed: %s", w.Body.String())

		var booked response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &booked))
		require.NotEqual(t, uuid.Nil, booked.AppointmentID)
		require.NotNil(t, booked.JoinURL, "static meeting provider always yields a link")

		// Second booking of the same slot loses.
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, appointmentsURL, reqBody, rivalToken)
		require.Equal(t, http.StatusConflict, w.Code)

		// The slot is gone from availability.
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, availabilityURL, nil, ownerToken)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &avail))
		require.Empty(t, avail.Slots)

		// The booking shows in the owner's history.
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, appointmentsURL, nil, ownerToken)
		require.Equal(t, http.StatusOK, w.Code)

		var history []*response.AppointmentResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &history))
		require.Len(t, history, 1)

		expected := &response.AppointmentResponse{
			ID:          booked.AppointmentID,
			SessionTime: sessionTime,
			Status:      "upcoming",
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.AppointmentResponse{}, "JoinURL", "CreatedAt"),
		}
		if diff := cmp.Diff(expected, history[0], opts...); diff != "" {
			t.Errorf("appointment response mismatch (-want +got):\n%s", diff)
		}

		cancelURL := fmt.Sprintf("%s/%s", appointmentsURL, booked.AppointmentID)

		// A stranger cannot cancel it.
		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, cancelURL, nil, rivalToken)
		require.Equal(t, http.StatusForbidden, w.Code)

		// The owner can.
		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, cancelURL, nil, ownerToken)
		require.Equal(t, http.StatusNoContent, w.Code)

		// Cancelling frees the slot for the rival.
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, appointmentsURL, reqBody, rivalToken)
		require.Equal(t, http.StatusCreated, w.Code)

		// A repeat cancel settles on conflict.
		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, cancelURL, nil, ownerToken)
		require.Equal(t, http.StatusConflict, w.Code)

		// A fresh upcoming booking outranks the cancelled one in the
		// history even though its session is earlier.
		earlier := s.seedTomorrowSlot("09:00")
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, appointmentsURL,
			reqdto.BookAppointmentRequest{SessionTime: earlier}, ownerToken)
		require.Equal(t, http.StatusCreated, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, appointmentsURL, nil, ownerToken)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &history))
		require.Len(t, history, 2)
		require.Equal(t, "upcoming", history[0].Status)
		require.True(t, earlier.Equal(history[0].SessionTime))
		require.Equal(t, "cancelled", history[1].Status)
	})

	s.Run("unauthenticated requests are rejected", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, appointmentsURL, nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, appointmentsURL,
			reqdto.BookAppointmentRequest{SessionTime: time.Now().Add(24 * time.Hour)}, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	s.Run("booking an unpublished slot conflicts", func() {
		t := s.T()

		token := s.issueToken(uuid.New(), "walkin@example.com", "Wren Walkin")
		reqBody := reqdto.BookAppointmentRequest{SessionTime: time.Now().UTC().Add(24 * time.Hour).Truncate(time.Minute)}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, appointmentsURL, reqBody, token)
		require.Equal(t, http.StatusConflict, w.Code)
	})

	s.Run("booking in the past is rejected", func() {
		t := s.T()

		token := s.issueToken(uuid.New(), "late@example.com", "Logan Late")
		reqBody := reqdto.BookAppointmentRequest{SessionTime: time.Now().UTC().Add(-time.Hour)}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, appointmentsURL, reqBody, token)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}
