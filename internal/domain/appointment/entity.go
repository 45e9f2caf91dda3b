package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Appointment links a user to a booked session time. Status only moves
// Upcoming -> Completed or Upcoming -> Cancelled; both are terminal.
type Appointment struct {
	id             uuid.UUID
	userID         uuid.UUID
	displayName    string
	contactAddress string
	sessionTime    time.Time
	status         Status
	meetingID      *string
	joinURL        *string
	createdAt      time.Time
	updatedAt      time.Time
}

func NewAppointment(
	userID uuid.UUID,
	displayName string,
	contactAddress string,
	sessionTime time.Time,
) (*Appointment, error) {
	if contactAddress == "" {
		return nil, ErrEmptyContact
	}
	return &Appointment{
		id:             uuid.New(),
		userID:         userID,
		displayName:    displayName,
		contactAddress: contactAddress,
		sessionTime:    sessionTime.UTC(),
		status:         StatusUpcoming,
	}, nil
}

func Reconstruct(
	id, userID uuid.UUID,
	displayName, contactAddress string,
	sessionTime time.Time,
	status Status,
	meetingID, joinURL *string,
	createdAt, updatedAt time.Time,
) *Appointment {
	return &Appointment{
		id:             id,
		userID:         userID,
		displayName:    displayName,
		contactAddress: contactAddress,
		sessionTime:    sessionTime,
		status:         status,
		meetingID:      meetingID,
		joinURL:        joinURL,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// AttachMeeting records the meeting link resolved after the slot committed.
// Booking succeeds without one, so this is optional by design of the flow.
func (a *Appointment) AttachMeeting(meetingID, joinURL string) {
	a.meetingID = &meetingID
	a.joinURL = &joinURL
}

func (a *Appointment) Cancel() error {
	if a.status != StatusUpcoming {
		return ErrNotUpcoming
	}
	a.status = StatusCancelled
	return nil
}

func (a *Appointment) IsUpcoming() bool {
	return a.status == StatusUpcoming
}

func (a *Appointment) OwnedBy(userID uuid.UUID) bool {
	return a.userID == userID
}

func (a *Appointment) ID() uuid.UUID          { return a.id }
func (a *Appointment) UserID() uuid.UUID      { return a.userID }
func (a *Appointment) DisplayName() string    { return a.displayName }
func (a *Appointment) ContactAddress() string { return a.contactAddress }
func (a *Appointment) SessionTime() time.Time { return a.sessionTime }
func (a *Appointment) Status() Status         { return a.status }
func (a *Appointment) MeetingID() *string     { return a.meetingID }
func (a *Appointment) JoinURL() *string       { return a.joinURL }
func (a *Appointment) CreatedAt() time.Time   { return a.createdAt }
func (a *Appointment) UpdatedAt() time.Time   { return a.updatedAt }
