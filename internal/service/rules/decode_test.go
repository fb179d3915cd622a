package rules

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

type logMock struct {
	warnings []string
}

func (l *logMock) Warn(format string, v ...interface{}) {
	l.warnings = append(l.warnings, format)
}

func TestDecode_StoredJSON(t *testing.T) {
	payload := `[
		{"id": 1, "hostId": 10, "name": "Business Hours", "type": "availability", "active": true,
		 "conditions": {"days": ["monday","tuesday","wednesday","thursday","friday"],
		                "timeRange": {"start": "09:00", "end": "17:00"}, "timezone": "America/New_York"}},
		{"id": 2, "hostId": 10, "name": "No Back-to-Back Meetings", "type": "buffer", "active": true,
		 "conditions": {"minBuffer": 15, "applyToMeetingTypes": ["all"]}},
		{"id": 3, "hostId": 10, "name": "Holidays", "type": "restriction", "active": true,
		 "conditions": {"restrictionType": "date-range", "startDate": "2024-12-24", "endDate": "2024-12-26"}},
		{"id": 4, "hostId": 10, "name": "Limit", "type": "restriction", "active": true,
		 "conditions": {"restrictionType": "daily-limit", "maxBookingsPerDay": 5}},
		{"id": 5, "hostId": 10, "name": "Notice", "type": "restriction", "active": false,
		 "conditions": {"restrictionType": "advance-notice", "minAdvanceNotice": 24}},
		{"id": 6, "hostId": 10, "name": "Same day", "type": "restriction", "active": true,
		 "conditions": {"restrictionType": "same-day"}}
	]`

	var raws []RawRule
	require.NoError(t, json.Unmarshal([]byte(payload), &raws))

	log := &logMock{}
	decoded := DecodeAll(raws, log)
	require.Len(t, decoded, 6)
	assert.Empty(t, log.warnings)

	avail, ok := decoded[0].Conditions.(*domain.AvailabilityConditions)
	require.True(t, ok)
	assert.Equal(t, domain.Weekdays, avail.Days)
	assert.Equal(t, "America/New_York", avail.Location.String())
	assert.True(t, decoded[0].Usable())

	buffer, ok := decoded[1].Conditions.(*domain.BufferConditions)
	require.True(t, ok)
	assert.Equal(t, 15, buffer.MinBufferMinutes)
	assert.True(t, buffer.AllMeetingTypes)

	block, ok := decoded[2].Conditions.(*domain.DateRangeBlock)
	require.True(t, ok)
	assert.Equal(t, domain.CivilDate{Year: 2024, Month: time.December, Day: 24}, block.From)
	assert.Equal(t, domain.CivilDate{Year: 2024, Month: time.December, Day: 26}, block.To)

	assert.Equal(t, &domain.DailyLimit{MaxBookingsPerDay: 5}, decoded[3].Conditions)
	assert.Equal(t, &domain.AdvanceNoticeRestriction{Hours: 24}, decoded[4].Conditions)
	assert.False(t, decoded[4].Usable())
	assert.Equal(t, &domain.SameDayRestriction{Disallow: true}, decoded[5].Conditions)
}

func TestDecodeAll_QuarantinesMalformed(t *testing.T) {
	raws := []RawRule{
		{ID: 1, Type: "availability", Active: true, Conditions: RawConditions{Days: []string{"monday"}}},
		{ID: 2, Type: "availability", Active: true, Conditions: RawConditions{
			Days: []string{"monday"}, TimeRange: &RawTimeRange{Start: "09:00", End: "17:00"}, Timezone: "Nowhere/City",
		}},
		{ID: 3, Type: "buffer", Active: true, Conditions: RawConditions{MinBuffer: ptr.Ptr(10), ApplyToMeetingTypes: []string{"specific"}}},
		{ID: 4, Type: "restriction", Active: true, Conditions: RawConditions{RestrictionType: "blackout"}},
		{ID: 5, Type: "holiday", Active: true},
		{ID: 6, Type: "restriction", Active: true, Conditions: RawConditions{RestrictionType: "daily-limit", MaxBookingsPerDay: ptr.Ptr(0)}},
		{ID: 7, Type: "availability", Active: true, Conditions: RawConditions{
			Days: []string{"monday"}, TimeRange: &RawTimeRange{Start: "18:00", End: "09:00"},
		}},
	}

	log := &logMock{}
	decoded := DecodeAll(raws, log)
	require.Len(t, decoded, len(raws))
	assert.Len(t, log.warnings, len(raws))

	for _, rule := range decoded {
		assert.True(t, rule.IsQuarantined(), "rule %d", rule.ID)
		assert.False(t, rule.Usable(), "rule %d", rule.ID)
		assert.Nil(t, rule.Conditions)
		assert.True(t, rule.Active, "active flag is preserved")
	}
}

func TestDecode_BufferSpecificTypes(t *testing.T) {
	rule, err := Decode(RawRule{ID: 1, Type: "buffer", Active: true, Conditions: RawConditions{
		MinBuffer:           ptr.Ptr(30),
		ApplyToMeetingTypes: []string{"specific"},
		MeetingTypeIDs:      []int64{4, 5},
	}})
	require.NoError(t, err)

	cond := rule.Conditions.(*domain.BufferConditions)
	assert.False(t, cond.AllMeetingTypes)
	assert.True(t, cond.AppliesTo(5))
	assert.False(t, cond.AppliesTo(6))
}

func TestDecode_DefaultsAndErrors(t *testing.T) {
	rule, err := Decode(RawRule{Type: "availability", Active: true, Conditions: RawConditions{
		Days: []string{"sat", "sun"}, TimeRange: &RawTimeRange{Start: "10:00", End: "14:00"},
	}})
	require.NoError(t, err)
	assert.Equal(t, time.UTC, rule.Conditions.(*domain.AvailabilityConditions).Location)

	rule, err = Decode(RawRule{Type: "restriction", Active: true, Conditions: RawConditions{
		RestrictionType: "date-range", StartDate: "2024-07-04",
	}})
	require.NoError(t, err)
	block := rule.Conditions.(*domain.DateRangeBlock)
	assert.Equal(t, block.From, block.To)

	rule, err = Decode(RawRule{Type: "restriction", Conditions: RawConditions{
		RestrictionType: "same-day", DisallowSameDay: ptr.Ptr(false),
	}})
	require.NoError(t, err)
	assert.Equal(t, &domain.SameDayRestriction{Disallow: false}, rule.Conditions)

	_, err = Decode(RawRule{Type: "unknown"})
	assert.ErrorIs(t, err, ErrUnknownRuleType)
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	_, err = Decode(RawRule{Type: "restriction"})
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = Decode(RawRule{Type: "buffer"})
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestDecode_YAML(t *testing.T) {
	doc := `
- id: 1
  type: availability
  active: true
  conditions:
    days: [monday, wednesday]
    timeRange: {start: "08:30", end: "12:00"}
    timezone: Europe/Berlin
- id: 2
  type: restriction
  active: true
  conditions:
    restrictionType: advance-notice
    minAdvanceNotice: 2
`
	var raws []RawRule
	require.NoError(t, yaml.Unmarshal([]byte(doc), &raws))

	decoded := DecodeAll(raws, nil)
	require.Len(t, decoded, 2)

	avail := decoded[0].Conditions.(*domain.AvailabilityConditions)
	assert.True(t, avail.Days.Has(time.Wednesday))
	assert.False(t, avail.Days.Has(time.Tuesday))
	assert.Equal(t, "08:30", avail.Start.String())
	assert.Equal(t, &domain.AdvanceNoticeRestriction{Hours: 2}, decoded[1].Conditions)
}

func TestDecodeJSON(t *testing.T) {
	raw := RawRule{ID: 7, HostID: 10, Name: "Buffer", Type: "buffer", Active: true}

	rule, err := DecodeJSON(raw, []byte(`{"minBuffer": 20, "applyToMeetingTypes": ["all"]}`))
	require.NoError(t, err)
	assert.Equal(t, &domain.BufferConditions{MinBufferMinutes: 20, AllMeetingTypes: true}, rule.Conditions)

	rule, err = DecodeJSON(raw, []byte(`{"minBuffer": "twenty"}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	quarantined := Quarantine(rule, err)
	assert.Equal(t, int64(7), quarantined.ID)
	assert.True(t, quarantined.IsQuarantined())
	assert.False(t, quarantined.Usable())
}
