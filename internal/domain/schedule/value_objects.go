package schedule

import (
	"time"
)

const (
	dayLayout  = "2006-01-02"
	timeLayout = "15:04"
)

// Day is a calendar date in UTC, the unit of transactional locking.
type Day struct {
	value string
}

func NewDay(value string) (Day, error) {
	if _, err := time.Parse(dayLayout, value); err != nil {
		return Day{}, ErrInvalidDay
	}
	return Day{value: value}, nil
}

func DayOf(t time.Time) Day {
	return Day{value: t.UTC().Format(dayLayout)}
}

func (d Day) String() string {
	return d.value
}

func (d Day) Next() Day {
	t, _ := time.Parse(dayLayout, d.value)
	return DayOf(t.Add(24 * time.Hour))
}

// ClockTime is a slot's time of day (HH:MM, UTC).
type ClockTime struct {
	value string
}

func NewClockTime(value string) (ClockTime, error) {
	if _, err := time.Parse(timeLayout, value); err != nil {
		return ClockTime{}, ErrInvalidClockTime
	}
	return ClockTime{value: value}, nil
}

func ClockTimeOf(t time.Time) ClockTime {
	return ClockTime{value: t.UTC().Format(timeLayout)}
}

func (c ClockTime) String() string {
	return c.value
}

// Instant resolves the slot's absolute time on the given day.
func (c ClockTime) Instant(d Day) time.Time {
	t, _ := time.Parse(dayLayout+" "+timeLayout, d.String()+" "+c.value)
	return t.UTC()
}

func (c ClockTime) Before(other ClockTime) bool {
	return c.value < other.value
}
