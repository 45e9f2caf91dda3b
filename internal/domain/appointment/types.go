package appointment

import "errors"

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var (
	ErrInvalidStatus = errors.New("invalid appointment status")
	ErrNotUpcoming   = errors.New("only upcoming appointments may be cancelled")
	ErrEmptyContact  = errors.New("contact address is required")
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusUpcoming, StatusCompleted, StatusCancelled:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
