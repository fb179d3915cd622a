package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekdaySet(t *testing.T) {
	set, err := ParseWeekdaySet([]string{"monday", "Fri", " WEDNESDAY "})
	require.NoError(t, err)

	assert.True(t, set.Has(time.Monday))
	assert.True(t, set.Has(time.Wednesday))
	assert.True(t, set.Has(time.Friday))
	assert.False(t, set.Has(time.Sunday))
	assert.Equal(t, []string{"monday", "wednesday", "friday"}, set.Names())

	_, err = ParseWeekdaySet([]string{"funday"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAvailabilityConditions_Contains(t *testing.T) {
	cond, err := NewAvailabilityConditions(Weekdays, "09:00", "17:00", "America/New_York")
	require.NoError(t, err)

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	tests := []struct {
		name     string
		start    time.Time
		duration int
		want     bool
	}{
		{"window start", time.Date(2024, 6, 3, 9, 0, 0, 0, ny), 30, true},
		{"ends exactly at window end", time.Date(2024, 6, 3, 16, 30, 0, 0, ny), 30, true},
		{"tail crosses window end", time.Date(2024, 6, 3, 16, 45, 0, 0, ny), 30, false},
		{"before window", time.Date(2024, 6, 3, 8, 45, 0, 0, ny), 30, false},
		{"weekend", time.Date(2024, 6, 8, 10, 0, 0, 0, ny), 30, false},
		{"same instant in utc", time.Date(2024, 6, 3, 13, 0, 0, 0, time.UTC), 30, true},
		{"utc instant outside ny window", time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC), 30, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cond.Contains(tt.start, tt.duration))
		})
	}
}

func TestAvailabilityConditions_Validate(t *testing.T) {
	_, err := NewAvailabilityConditions(Weekdays, "17:00", "09:00", "UTC")
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = NewAvailabilityConditions(0, "09:00", "17:00", "UTC")
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = NewAvailabilityConditions(Weekdays, "09:00", "17:00", "Mars/Olympus")
	assert.ErrorIs(t, err, ErrConfiguration)

	cond := &AvailabilityConditions{Days: Weekdays, Start: "09:00", End: "17:00"}
	assert.Error(t, cond.Validate(), "unresolved location must not validate")
}

func TestBufferConditions_AppliesTo(t *testing.T) {
	all := &BufferConditions{MinBufferMinutes: 15, AllMeetingTypes: true}
	assert.True(t, all.AppliesTo(7))
	assert.True(t, all.AppliesTo(0))

	some := &BufferConditions{MinBufferMinutes: 15, MeetingTypeIDs: []int64{3, 7}}
	assert.True(t, some.AppliesTo(7))
	assert.False(t, some.AppliesTo(4))
	assert.False(t, some.AppliesTo(0), "ad-hoc meetings are covered only by rules for all types")

	assert.Error(t, (&BufferConditions{MinBufferMinutes: 10}).Validate())
	assert.Error(t, (&BufferConditions{MinBufferMinutes: -1, AllMeetingTypes: true}).Validate())
}

func TestRule_Usable(t *testing.T) {
	cond, err := NewAvailabilityConditions(Weekdays, "09:00", "17:00", "UTC")
	require.NoError(t, err)

	tests := []struct {
		name string
		rule Rule
		want bool
	}{
		{"active valid", Rule{Active: true, Conditions: cond}, true},
		{"inactive", Rule{Active: false, Conditions: cond}, false},
		{"no conditions", Rule{Active: true}, false},
		{"quarantined", Rule{Active: true, Conditions: cond, QuarantineReason: "bad json"}, false},
		{"invalid conditions", Rule{Active: true, Conditions: &DailyLimit{MaxBookingsPerDay: 0}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.Usable())
		})
	}
}

func TestDateRangeBlock_Validate(t *testing.T) {
	from, err := ParseCivilDate("2024-12-24")
	require.NoError(t, err)
	to, err := ParseCivilDate("2024-12-26")
	require.NoError(t, err)

	assert.NoError(t, (&DateRangeBlock{From: from, To: to}).Validate())
	assert.ErrorIs(t, (&DateRangeBlock{From: to, To: from}).Validate(), ErrConfiguration)
	assert.ErrorIs(t, (&DateRangeBlock{From: from}).Validate(), ErrConfiguration)
}
