package reminder

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindH24 Kind = "24h"
	KindH1  Kind = "1h"
	KindM15 Kind = "15m"
)

// Kinds lists every reminder kind, furthest-out first.
func Kinds() []Kind {
	return []Kind{KindH24, KindH1, KindM15}
}

func (k Kind) Offset() time.Duration {
	switch k {
	case KindH24:
		return 24 * time.Hour
	case KindH1:
		return time.Hour
	case KindM15:
		return 15 * time.Minute
	default:
		return 0
	}
}

type Entry struct {
	FireAt time.Time
	Sent   bool
}

// Schedule tracks the pending reminders of one upcoming appointment.
// Each entry independently moves sent=false -> sent=true, never back.
type Schedule struct {
	appointmentID  uuid.UUID
	userID         uuid.UUID
	displayName    string
	contactAddress string
	sessionTime    time.Time
	joinURL        *string
	entries        map[Kind]*Entry
}

// NewSchedule computes fire-at times for every kind and drops any whose
// window already passed; a late kind is never scheduled, there is no
// catch-up send.
func NewSchedule(
	appointmentID, userID uuid.UUID,
	displayName, contactAddress string,
	sessionTime time.Time,
	joinURL *string,
	now time.Time,
) *Schedule {
	entries := make(map[Kind]*Entry)
	for _, k := range Kinds() {
		fireAt := sessionTime.Add(-k.Offset())
		if !fireAt.After(now) {
			continue
		}
		entries[k] = &Entry{FireAt: fireAt}
	}
	return &Schedule{
		appointmentID:  appointmentID,
		userID:         userID,
		displayName:    displayName,
		contactAddress: contactAddress,
		sessionTime:    sessionTime,
		joinURL:        joinURL,
		entries:        entries,
	}
}

func (s *Schedule) AppointmentID() uuid.UUID { return s.appointmentID }
func (s *Schedule) UserID() uuid.UUID        { return s.userID }
func (s *Schedule) DisplayName() string      { return s.displayName }
func (s *Schedule) ContactAddress() string   { return s.contactAddress }
func (s *Schedule) SessionTime() time.Time   { return s.sessionTime }

func (s *Schedule) JoinURL() *string {
	if s.joinURL == nil {
		return nil
	}
	u := *s.joinURL
	return &u
}

func (s *Schedule) Entry(k Kind) (Entry, bool) {
	e, ok := s.entries[k]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

func (s *Schedule) PendingKinds() []Kind {
	out := make([]Kind, 0, len(s.entries))
	for k, e := range s.entries {
		if !e.Sent {
			out = append(out, k)
		}
	}
	sortKinds(out)
	return out
}

// Due returns the unsent kinds whose fire-at has passed, furthest-out first.
func (s *Schedule) Due(now time.Time) []Kind {
	out := make([]Kind, 0, len(s.entries))
	for k, e := range s.entries {
		if !e.Sent && !e.FireAt.After(now) {
			out = append(out, k)
		}
	}
	sortKinds(out)
	return out
}

func (s *Schedule) MarkSent(k Kind) {
	if e, ok := s.entries[k]; ok {
		e.Sent = true
	}
}

// Expired reports whether the session's grace window has elapsed and the
// schedule can be garbage collected.
func (s *Schedule) Expired(now time.Time, grace time.Duration) bool {
	return !now.Before(s.sessionTime.Add(grace))
}

func sortKinds(ks []Kind) {
	sort.Slice(ks, func(i, j int) bool { return ks[i].Offset() > ks[j].Offset() })
}
