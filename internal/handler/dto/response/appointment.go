package response

import (
	"time"

	"coachwell/internal/usecase/commands"
	"coachwell/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	JoinURL       *string   `json:"join_url,omitempty"`
}

func FromBookingResult(result *commands.BookingResult) *BookingResponse {
	return &BookingResponse{
		AppointmentID: result.AppointmentID,
		JoinURL:       result.JoinURL,
	}
}

type AppointmentResponse struct {
	ID          uuid.UUID `json:"id"`
	SessionTime time.Time `json:"session_time"`
	Status      string    `json:"status"`
	JoinURL     *string   `json:"join_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromAppointmentView(view *queries.AppointmentView) *AppointmentResponse {
	return &AppointmentResponse{
		ID:          view.ID,
		SessionTime: view.SessionTime,
		Status:      view.Status,
		JoinURL:     view.JoinURL,
		CreatedAt:   view.CreatedAt,
	}
}

type AvailabilityResponse struct {
	Slots []time.Time `json:"slots"`
}
