package rules

// RawTimeRange окно времени в формате хранения
type RawTimeRange struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// RawConditions условия правила в формате хранения (JSONB колонка conditions).
// Набор заполненных полей зависит от типа правила
type RawConditions struct {
	// availability
	Days      []string      `json:"days,omitempty" yaml:"days,omitempty"`
	TimeRange *RawTimeRange `json:"timeRange,omitempty" yaml:"timeRange,omitempty"`
	Timezone  string        `json:"timezone,omitempty" yaml:"timezone,omitempty"`

	// buffer
	MinBuffer           *int     `json:"minBuffer,omitempty" yaml:"minBuffer,omitempty"`
	ApplyToMeetingTypes []string `json:"applyToMeetingTypes,omitempty" yaml:"applyToMeetingTypes,omitempty"`
	MeetingTypeIDs      []int64  `json:"meetingTypeIds,omitempty" yaml:"meetingTypeIds,omitempty"`

	// restriction
	RestrictionType   string `json:"restrictionType,omitempty" yaml:"restrictionType,omitempty"`
	Description       string `json:"description,omitempty" yaml:"description,omitempty"`
	StartDate         string `json:"startDate,omitempty" yaml:"startDate,omitempty"`
	EndDate           string `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	MaxBookingsPerDay *int   `json:"maxBookingsPerDay,omitempty" yaml:"maxBookingsPerDay,omitempty"`
	MinAdvanceNotice  *int   `json:"minAdvanceNotice,omitempty" yaml:"minAdvanceNotice,omitempty"`
	DisallowSameDay   *bool  `json:"disallowSameDay,omitempty" yaml:"disallowSameDay,omitempty"`
}

// RawRule правило в формате хранения
type RawRule struct {
	ID         int64         `json:"id" yaml:"id"`
	HostID     int64         `json:"hostId" yaml:"hostId"`
	Name       string        `json:"name" yaml:"name"`
	Type       string        `json:"type" yaml:"type"`
	Active     bool          `json:"active" yaml:"active"`
	Conditions RawConditions `json:"conditions" yaml:"conditions"`
}

const applyToAll = "all"
