package domain

import (
	"fmt"
	"time"
)

// Candidate is a proposed meeting start and length
type Candidate struct {
	Start           time.Time
	DurationMinutes int
}

// End returns the end of the candidate body
func (c Candidate) End() time.Time {
	return c.Start.Add(time.Duration(c.DurationMinutes) * time.Minute)
}

// CandidateSlot is a generated slot tagged with admissibility.
// Unavailable slots are kept so they can be shown grayed out.
type CandidateSlot struct {
	Start           time.Time
	DurationMinutes int
	Available       bool
	Label           string
}

// Candidate returns the slot as an evaluation candidate
func (s CandidateSlot) Candidate() Candidate {
	return Candidate{Start: s.Start, DurationMinutes: s.DurationMinutes}
}

// End returns the end of the slot body
func (s CandidateSlot) End() time.Time {
	return s.Candidate().End()
}

// TimeFilter ограничение поиска по времени суток
type TimeFilter string

const (
	TimeFilterAny       TimeFilter = "any"
	TimeFilterMorning   TimeFilter = "morning"
	TimeFilterAfternoon TimeFilter = "afternoon"
)

// ParseTimeFilter parses a time-of-day filter, empty means any
func ParseTimeFilter(s string) (TimeFilter, error) {
	switch f := TimeFilter(s); f {
	case "":
		return TimeFilterAny, nil
	case TimeFilterAny, TimeFilterMorning, TimeFilterAfternoon:
		return f, nil
	default:
		return "", fmt.Errorf("%w: time filter must be any, morning or afternoon, got %q", ErrValidation, s)
	}
}

// Matches returns true if the local hour of t passes the filter
func (f TimeFilter) Matches(t time.Time) bool {
	switch f {
	case TimeFilterMorning:
		return t.Hour() < 12
	case TimeFilterAfternoon:
		return t.Hour() >= 12
	default:
		return true
	}
}
