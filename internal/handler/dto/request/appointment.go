package request

import "time"

type BookAppointmentRequest struct {
	SessionTime time.Time `json:"session_time" binding:"required"`
}
