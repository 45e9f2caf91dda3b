//go:build unit || e2e

package builder

import (
	"time"

	domappt "coachwell/internal/domain/appointment"
	reqdto "coachwell/internal/handler/dto/request"
	"coachwell/internal/usecase/commands"
	"coachwell/internal/usecase/queries"

	"github.com/google/uuid"
)

type AppointmentBuilder struct {
	UserID         uuid.UUID
	DisplayName    string
	ContactAddress string
	SessionTime    time.Time
	JoinURL        *string
}

func NewAppointmentBuilder() *AppointmentBuilder {
	return &AppointmentBuilder{
		UserID:         uuid.New(),
		DisplayName:    "Avery Client",
		ContactAddress: "avery@example.com",
		SessionTime:    time.Now().UTC().Truncate(time.Minute).Add(48 * time.Hour),
	}
}

func (b *AppointmentBuilder) With(mutate func(*AppointmentBuilder)) *AppointmentBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *AppointmentBuilder) BuildDomain() (*domappt.Appointment, error) {
	appt, err := domappt.NewAppointment(b.UserID, b.DisplayName, b.ContactAddress, b.SessionTime)
	if err != nil {
		return nil, err
	}
	if b.JoinURL != nil {
		appt.AttachMeeting("meeting-"+appt.ID().String(), *b.JoinURL)
	}
	return appt, nil
}

func (b *AppointmentBuilder) BuildRequester() commands.Requester {
	return commands.Requester{
		UserID:         b.UserID,
		DisplayName:    b.DisplayName,
		ContactAddress: b.ContactAddress,
	}
}

func (b *AppointmentBuilder) BuildBookRequestDTO() reqdto.BookAppointmentRequest {
	return reqdto.BookAppointmentRequest{
		SessionTime: b.SessionTime,
	}
}

func (b *AppointmentBuilder) BuildView() *queries.AppointmentView {
	return &queries.AppointmentView{
		ID:          uuid.New(),
		UserID:      b.UserID,
		DisplayName: b.DisplayName,
		SessionTime: b.SessionTime,
		Status:      string(domappt.StatusUpcoming),
		JoinURL:     b.JoinURL,
		CreatedAt:   time.Now().UTC(),
	}
}
