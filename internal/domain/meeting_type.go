package domain

import (
	"fmt"
	"time"
)

// Platform is the conferencing channel of a meeting
type Platform string

const (
	PlatformGoogleMeet Platform = "google-meet"
	PlatformZoom       Platform = "zoom"
	PlatformTeams      Platform = "teams"
	PlatformPhone      Platform = "phone"
)

// ParsePlatform validates a platform value
func ParsePlatform(s string) (Platform, error) {
	switch p := Platform(s); p {
	case PlatformGoogleMeet, PlatformZoom, PlatformTeams, PlatformPhone:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown meeting platform %q", ErrValidation, s)
	}
}

// NeedsMeetingLink returns true for video platforms that require a generated join link
func (p Platform) NeedsMeetingLink() bool {
	return p == PlatformGoogleMeet || p == PlatformZoom || p == PlatformTeams
}

// RequiresPhone returns true if the guest must leave a phone number
func (p Platform) RequiresPhone() bool {
	return p == PlatformPhone
}

// AnswerKind is the input kind of a custom question
type AnswerKind string

const (
	AnswerKindText     AnswerKind = "text"
	AnswerKindTextarea AnswerKind = "textarea"
)

// CustomQuestion is a host-defined question asked during booking
type CustomQuestion struct {
	ID         string
	Text       string
	Required   bool
	AnswerKind AnswerKind
}

// MeetingType is a bookable meeting template owned by a host.
// Read-only for the scheduling core.
type MeetingType struct {
	ID                    int64 // 0 = ad-hoc meeting, persisted as NULL
	HostID                int64
	Name                  string
	Description           string
	DurationMinutes       int
	BufferBeforeMinutes   int
	BufferAfterMinutes    int
	AdvanceNoticeMinutes  int
	MaxAdvanceBookingDays int
	Platform              Platform
	Active                bool
	Questions             []CustomQuestion
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// NewAdHocMeetingType builds the "custom meeting" type from a guest-chosen duration and platform
func NewAdHocMeetingType(hostID int64, durationMinutes int, platform Platform) (*MeetingType, error) {
	if durationMinutes < MinAdHocDurationMinutes || durationMinutes > MaxAdHocDurationMinutes {
		return nil, fmt.Errorf("%w: custom duration must be between %d and %d minutes",
			ErrValidation, MinAdHocDurationMinutes, MaxAdHocDurationMinutes)
	}
	if _, err := ParsePlatform(string(platform)); err != nil {
		return nil, err
	}

	return &MeetingType{
		HostID:                hostID,
		Name:                  AdHocMeetingName,
		Description:           "Customized meeting based on your preferences",
		DurationMinutes:       durationMinutes,
		BufferBeforeMinutes:   AdHocBufferMinutes,
		BufferAfterMinutes:    AdHocBufferMinutes,
		AdvanceNoticeMinutes:  AdHocAdvanceNoticeMinutes,
		MaxAdvanceBookingDays: AdHocMaxAdvanceBookingDays,
		Platform:              platform,
		Active:                true,
	}, nil
}

// IsAdHoc returns true for meetings without a stored meeting type
func (m *MeetingType) IsAdHoc() bool {
	return m.ID == 0
}

// Validate checks the numeric invariants of a meeting type
func (m *MeetingType) Validate() error {
	if m.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %d", ErrConfiguration, m.DurationMinutes)
	}
	if m.BufferBeforeMinutes < 0 || m.BufferAfterMinutes < 0 {
		return fmt.Errorf("%w: buffers must not be negative", ErrConfiguration)
	}
	if m.AdvanceNoticeMinutes < 0 {
		return fmt.Errorf("%w: advance notice must not be negative", ErrConfiguration)
	}
	if m.MaxAdvanceBookingDays < 1 {
		return fmt.Errorf("%w: max advance booking must be at least 1 day", ErrConfiguration)
	}
	return nil
}

// ConflictMarginMinutes is the margin kept around existing bookings for this type
func (m *MeetingType) ConflictMarginMinutes() int {
	return max(m.BufferBeforeMinutes, m.BufferAfterMinutes)
}

// Question returns a question by id
func (m *MeetingType) Question(id string) (CustomQuestion, bool) {
	for _, q := range m.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return CustomQuestion{}, false
}

// MeetingTypeRef ссылка на тип встречи: сохраненный по ID или произвольный (ID = 0)
type MeetingTypeRef struct {
	ID                    int64
	CustomDurationMinutes int
	CustomPlatform        Platform
}

// IsCustom returns true if the reference describes an ad-hoc meeting
func (r MeetingTypeRef) IsCustom() bool {
	return r.ID == 0
}
