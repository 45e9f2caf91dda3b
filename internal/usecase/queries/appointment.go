package queries

import (
	"context"
	"time"

	"coachwell/internal/domain/appointment"
	"coachwell/internal/pkg/errs"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type AppointmentView struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	SessionTime time.Time `json:"session_time"`
	Status      string    `json:"status"`
	JoinURL     *string   `json:"join_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type AppointmentReader interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*appointment.Appointment, error)
}

type AppointmentQueries interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*AppointmentView, error)
}

type appointmentQueriesImpl struct {
	appointments AppointmentReader
}

func NewAppointmentQueries(appointments AppointmentReader) AppointmentQueries {
	return &appointmentQueriesImpl{appointments: appointments}
}

func (q *appointmentQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*AppointmentView, error) {
	appts, err := q.appointments.ListByUser(ctx, userID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list user appointments")
	}

	out := make([]*AppointmentView, len(appts))
	for i, a := range appts {
		out[i] = toAppointmentView(a)
	}
	return out, nil
}

func toAppointmentView(a *appointment.Appointment) *AppointmentView {
	return &AppointmentView{
		ID:          a.ID(),
		UserID:      a.UserID(),
		DisplayName: a.DisplayName(),
		SessionTime: a.SessionTime(),
		Status:      string(a.Status()),
		JoinURL:     a.JoinURL(),
		CreatedAt:   a.CreatedAt(),
	}
}
