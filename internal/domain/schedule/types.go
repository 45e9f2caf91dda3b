package schedule

import (
	"errors"
)

type SlotStatus string

const (
	StatusAvailable   SlotStatus = "available"
	StatusBooked      SlotStatus = "booked"
	StatusUnavailable SlotStatus = "unavailable"
)

var (
	ErrInvalidDay       = errors.New("invalid day format")
	ErrInvalidClockTime = errors.New("invalid clock time format")
	ErrSlotUnavailable  = errors.New("slot is not available")
	ErrSlotNotBooked    = errors.New("slot is not booked")
	ErrInvalidStatus    = errors.New("invalid slot status")
)

func ParseSlotStatus(s string) (SlotStatus, error) {
	switch SlotStatus(s) {
	case StatusAvailable, StatusBooked, StatusUnavailable:
		return SlotStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
