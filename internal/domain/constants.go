package domain

import "github.com/m04kA/SMC-SchedulingService/pkg/types"

// Default search envelope and generation values
const (
	DefaultEnvelopeStart types.TimeString = "09:00"
	DefaultEnvelopeEnd   types.TimeString = "17:00"

	DefaultGranularityMinutes = 15
	DefaultHorizonDays        = 14
)

// Ad-hoc ("custom") meeting defaults, applied when a guest picks duration and platform
const (
	AdHocMeetingName           = "Custom Meeting"
	AdHocBufferMinutes         = 5
	AdHocAdvanceNoticeMinutes  = 60
	AdHocMaxAdvanceBookingDays = 30
	MinAdHocDurationMinutes    = 15
	MaxAdHocDurationMinutes    = 480 // 8 hours
)

// Business validation constants
const (
	MaxGuestNameLength = 200
	MaxNotesLength     = 1000
	MaxAnswerLength    = 2000
	MaxHorizonDays     = 90
)

// Time format constants
const (
	TimeFormat  = "15:04"      // HH:MM
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	LabelFormat = "3:04 PM"    // slot display label
)

// ActiveStatuses statuses that occupy time on the host's calendar
var ActiveStatuses = []BookingStatus{
	StatusConfirmed,
	StatusPending,
}
