package schedule

import (
	"sort"

	"github.com/google/uuid"
)

type Booker struct {
	UserID uuid.UUID
	Name   string
}

type Slot struct {
	time     ClockTime
	status   SlotStatus
	bookedBy *Booker
}

func NewSlot(at ClockTime, status SlotStatus, bookedBy *Booker) Slot {
	return Slot{time: at, status: status, bookedBy: bookedBy}
}

func (s Slot) Time() ClockTime    { return s.time }
func (s Slot) Status() SlotStatus { return s.status }

func (s Slot) BookedBy() *Booker {
	if s.bookedBy == nil {
		return nil
	}
	b := *s.bookedBy
	return &b
}

// DailySchedule owns every slot of one calendar date. Mutations go through
// Book/Release so a slot can never move from Unavailable to Booked.
type DailySchedule struct {
	date  Day
	slots map[ClockTime]Slot
}

func NewDailySchedule(date Day) *DailySchedule {
	return &DailySchedule{
		date:  date,
		slots: make(map[ClockTime]Slot),
	}
}

func ReconstructDailySchedule(date Day, slots []Slot) *DailySchedule {
	ds := NewDailySchedule(date)
	for _, s := range slots {
		ds.slots[s.time] = s
	}
	return ds
}

func (d *DailySchedule) Date() Day { return d.date }

func (d *DailySchedule) Slot(at ClockTime) (Slot, bool) {
	s, ok := d.slots[at]
	return s, ok
}

func (d *DailySchedule) Slots() []Slot {
	out := make([]Slot, 0, len(d.slots))
	for _, s := range d.slots {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].time.Before(out[j].time) })
	return out
}

// Publish adds an open slot; re-publishing an existing time is a no-op so
// seeding is idempotent.
func (d *DailySchedule) Publish(at ClockTime) {
	if _, ok := d.slots[at]; ok {
		return
	}
	d.slots[at] = Slot{time: at, status: StatusAvailable}
}

func (d *DailySchedule) Block(at ClockTime) {
	d.slots[at] = Slot{time: at, status: StatusUnavailable}
}

func (d *DailySchedule) Book(at ClockTime, by Booker) error {
	s, ok := d.slots[at]
	if !ok || s.status != StatusAvailable {
		return ErrSlotUnavailable
	}
	s.status = StatusBooked
	s.bookedBy = &by
	d.slots[at] = s
	return nil
}

func (d *DailySchedule) Release(at ClockTime) error {
	s, ok := d.slots[at]
	if !ok || s.status != StatusBooked {
		return ErrSlotNotBooked
	}
	s.status = StatusAvailable
	s.bookedBy = nil
	d.slots[at] = s
	return nil
}

// OpenTimes returns the times of every Available slot, ascending.
func (d *DailySchedule) OpenTimes() []ClockTime {
	out := make([]ClockTime, 0, len(d.slots))
	for at, s := range d.slots {
		if s.status == StatusAvailable {
			out = append(out, at)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

func (d *DailySchedule) Clone() *DailySchedule {
	clone := NewDailySchedule(d.date)
	for at, s := range d.slots {
		if s.bookedBy != nil {
			b := *s.bookedBy
			s.bookedBy = &b
		}
		clone.slots[at] = s
	}
	return clone
}
