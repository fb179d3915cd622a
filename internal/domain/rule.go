package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// RuleKind is the dimension a rule constrains
type RuleKind string

const (
	RuleKindAvailability RuleKind = "availability"
	RuleKindBuffer       RuleKind = "buffer"
	RuleKindRestriction  RuleKind = "restriction"
)

// RestrictionKind is the variant of a restriction rule
type RestrictionKind string

const (
	RestrictionDateRange     RestrictionKind = "date-range"
	RestrictionDailyLimit    RestrictionKind = "daily-limit"
	RestrictionAdvanceNotice RestrictionKind = "advance-notice"
	RestrictionSameDay       RestrictionKind = "same-day"
)

// Conditions is the kind-specific payload of a rule
type Conditions interface {
	Kind() RuleKind
	Validate() error
}

// RestrictionConditions is implemented by every restriction variant
type RestrictionConditions interface {
	Conditions
	RestrictionKind() RestrictionKind
}

// Rule is a host scheduling rule.
// A rule that is inactive, has no conditions or fails validation is ignored by evaluation.
type Rule struct {
	ID         int64
	HostID     int64
	Name       string
	Active     bool
	Conditions Conditions

	// QuarantineReason is set when stored conditions could not be decoded
	QuarantineReason string
}

// Kind returns the rule kind, empty for rules without conditions
func (r *Rule) Kind() RuleKind {
	if r.Conditions == nil {
		return ""
	}
	return r.Conditions.Kind()
}

// IsQuarantined returns true if the rule was disabled because of malformed data
func (r *Rule) IsQuarantined() bool {
	return r.QuarantineReason != ""
}

// Usable returns true if the rule takes part in evaluation
func (r *Rule) Usable() bool {
	return r.Active && !r.IsQuarantined() && r.Conditions != nil && r.Conditions.Validate() == nil
}

// WeekdaySet is a set of weekdays
type WeekdaySet uint8

// NewWeekdaySet builds a set from weekdays
func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s = s.With(d)
	}
	return s
}

// Weekdays is Monday through Friday
var Weekdays = NewWeekdaySet(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday)

// With returns the set with d added
func (s WeekdaySet) With(d time.Weekday) WeekdaySet {
	if d < time.Sunday || d > time.Saturday {
		return s
	}
	return s | 1<<uint(d)
}

// Has returns true if d is in the set
func (s WeekdaySet) Has(d time.Weekday) bool {
	return d >= time.Sunday && d <= time.Saturday && s&(1<<uint(d)) != 0
}

// IsEmpty returns true if no weekday is set
func (s WeekdaySet) IsEmpty() bool {
	return s == 0
}

// Names returns lowercase weekday names in Monday-first order
func (s WeekdaySet) Names() []string {
	names := make([]string, 0, 7)
	for i := 1; i <= 7; i++ {
		d := time.Weekday(i % 7)
		if s.Has(d) {
			names = append(names, strings.ToLower(d.String()))
		}
	}
	return names
}

// ParseWeekday parses a weekday name ("monday", "Mon")
func ParseWeekday(name string) (time.Weekday, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if n == full || (len(n) == 3 && strings.HasPrefix(full, n)) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("%w: unknown weekday %q", ErrValidation, name)
}

// ParseWeekdaySet parses a list of weekday names
func ParseWeekdaySet(names []string) (WeekdaySet, error) {
	var s WeekdaySet
	for _, name := range names {
		d, err := ParseWeekday(name)
		if err != nil {
			return 0, err
		}
		s = s.With(d)
	}
	return s, nil
}

// AvailabilityConditions admits slots on the given weekdays within [Start, End)
// evaluated in the rule's own timezone
type AvailabilityConditions struct {
	Days     WeekdaySet
	Start    types.TimeString
	End      types.TimeString
	Timezone string
	Location *time.Location
}

// NewAvailabilityConditions resolves the timezone and validates the window
func NewAvailabilityConditions(days WeekdaySet, start, end types.TimeString, timezone string) (*AvailabilityConditions, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", ErrConfiguration, timezone)
	}

	c := &AvailabilityConditions{
		Days:     days,
		Start:    start,
		End:      end,
		Timezone: timezone,
		Location: loc,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Kind implements Conditions
func (c *AvailabilityConditions) Kind() RuleKind { return RuleKindAvailability }

// Validate implements Conditions
func (c *AvailabilityConditions) Validate() error {
	if c.Days.IsEmpty() {
		return fmt.Errorf("%w: availability rule has no days", ErrConfiguration)
	}
	if c.Location == nil {
		return fmt.Errorf("%w: availability rule has no resolved timezone", ErrConfiguration)
	}
	start, err := c.Start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: availability start: %v", ErrConfiguration, err)
	}
	end, err := c.End.Minutes()
	if err != nil {
		return fmt.Errorf("%w: availability end: %v", ErrConfiguration, err)
	}
	if start >= end {
		return fmt.Errorf("%w: availability window %s-%s is empty", ErrConfiguration, c.Start, c.End)
	}
	return nil
}

// Contains returns true if [start, start+duration) lies inside the window on an allowed day
func (c *AvailabilityConditions) Contains(start time.Time, durationMinutes int) bool {
	local := start.In(c.Location)
	if !c.Days.Has(local.Weekday()) {
		return false
	}

	windowStart, err := c.Start.Minutes()
	if err != nil {
		return false
	}
	windowEnd, err := c.End.Minutes()
	if err != nil {
		return false
	}

	startMin := local.Hour()*60 + local.Minute()
	if local.Second() != 0 || local.Nanosecond() != 0 {
		// Неполная минута не может начинаться ровно на границе окна
		startMin++
	}
	return startMin >= windowStart && startMin+durationMinutes <= windowEnd
}

// BufferConditions requires MinBufferMinutes of free time around existing bookings
type BufferConditions struct {
	MinBufferMinutes int
	AllMeetingTypes  bool
	MeetingTypeIDs   []int64
}

// Kind implements Conditions
func (c *BufferConditions) Kind() RuleKind { return RuleKindBuffer }

// Validate implements Conditions
func (c *BufferConditions) Validate() error {
	if c.MinBufferMinutes < 0 {
		return fmt.Errorf("%w: negative buffer %d", ErrConfiguration, c.MinBufferMinutes)
	}
	if !c.AllMeetingTypes && len(c.MeetingTypeIDs) == 0 {
		return fmt.Errorf("%w: buffer rule applies to no meeting types", ErrConfiguration)
	}
	return nil
}

// AppliesTo returns true if the rule covers the meeting type (0 = ad-hoc, covered only by "all")
func (c *BufferConditions) AppliesTo(meetingTypeID int64) bool {
	if c.AllMeetingTypes {
		return true
	}
	if meetingTypeID == 0 {
		return false
	}
	for _, id := range c.MeetingTypeIDs {
		if id == meetingTypeID {
			return true
		}
	}
	return false
}

// DateRangeBlock rejects every slot whose calendar day is within [From, To]
type DateRangeBlock struct {
	From CivilDate
	To   CivilDate
}

// Kind implements Conditions
func (c *DateRangeBlock) Kind() RuleKind { return RuleKindRestriction }

// RestrictionKind implements RestrictionConditions
func (c *DateRangeBlock) RestrictionKind() RestrictionKind { return RestrictionDateRange }

// Validate implements Conditions
func (c *DateRangeBlock) Validate() error {
	if c.From.IsZero() || c.To.IsZero() {
		return fmt.Errorf("%w: date range block needs both dates", ErrConfiguration)
	}
	if c.To.Before(c.From) {
		return fmt.Errorf("%w: date range %s..%s is reversed", ErrConfiguration, c.From, c.To)
	}
	return nil
}

// DailyLimit rejects slots on days that already hold MaxBookingsPerDay bookings
type DailyLimit struct {
	MaxBookingsPerDay int
}

// Kind implements Conditions
func (c *DailyLimit) Kind() RuleKind { return RuleKindRestriction }

// RestrictionKind implements RestrictionConditions
func (c *DailyLimit) RestrictionKind() RestrictionKind { return RestrictionDailyLimit }

// Validate implements Conditions
func (c *DailyLimit) Validate() error {
	if c.MaxBookingsPerDay < 1 {
		return fmt.Errorf("%w: daily limit must be at least 1, got %d", ErrConfiguration, c.MaxBookingsPerDay)
	}
	return nil
}

// AdvanceNoticeRestriction rejects slots starting sooner than Hours from now
type AdvanceNoticeRestriction struct {
	Hours int
}

// Kind implements Conditions
func (c *AdvanceNoticeRestriction) Kind() RuleKind { return RuleKindRestriction }

// RestrictionKind implements RestrictionConditions
func (c *AdvanceNoticeRestriction) RestrictionKind() RestrictionKind { return RestrictionAdvanceNotice }

// Validate implements Conditions
func (c *AdvanceNoticeRestriction) Validate() error {
	if c.Hours < 0 {
		return fmt.Errorf("%w: negative advance notice %d", ErrConfiguration, c.Hours)
	}
	return nil
}

// SameDayRestriction rejects slots on the current calendar day when Disallow is set
type SameDayRestriction struct {
	Disallow bool
}

// Kind implements Conditions
func (c *SameDayRestriction) Kind() RuleKind { return RuleKindRestriction }

// RestrictionKind implements RestrictionConditions
func (c *SameDayRestriction) RestrictionKind() RestrictionKind { return RestrictionSameDay }

// Validate implements Conditions
func (c *SameDayRestriction) Validate() error { return nil }
