package availability

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// monday 2024-06-03
var monday = domain.CivilDate{Year: 2024, Month: time.June, Day: 3}

func at(day domain.CivilDate, hour, minute int) time.Time {
	return time.Date(day.Year, day.Month, day.Day, hour, minute, 0, 0, time.UTC)
}

func newMeetingType(duration int) *domain.MeetingType {
	return &domain.MeetingType{
		ID:                    1,
		HostID:                10,
		Name:                  "Intro call",
		DurationMinutes:       duration,
		MaxAdvanceBookingDays: 60,
		Platform:              domain.PlatformGoogleMeet,
		Active:                true,
	}
}

func weekdayRule(t *testing.T, tz string) domain.Rule {
	t.Helper()
	cond, err := domain.NewAvailabilityConditions(domain.Weekdays, "09:00", "17:00", tz)
	require.NoError(t, err)
	return domain.Rule{ID: 1, HostID: 10, Name: "Business hours", Active: true, Conditions: cond}
}

func bufferRule(minutes int) domain.Rule {
	return domain.Rule{
		ID:         2,
		HostID:     10,
		Name:       "Buffer",
		Active:     true,
		Conditions: &domain.BufferConditions{MinBufferMinutes: minutes, AllMeetingTypes: true},
	}
}

func restrictionRule(cond domain.Conditions) domain.Rule {
	return domain.Rule{ID: 3, HostID: 10, Name: "Restriction", Active: true, Conditions: cond}
}

func booking(start time.Time, duration int) domain.Booking {
	return domain.Booking{
		ID:              uuid.New(),
		HostID:          10,
		GuestName:       "Guest",
		GuestEmail:      "guest@example.com",
		StartTime:       start,
		DurationMinutes: duration,
		Status:          domain.StatusConfirmed,
	}
}

func newGenerator(t *testing.T, now time.Time, policy ZeroAvailabilityPolicy) *Generator {
	t.Helper()
	g, err := NewGenerator(DefaultConfig(), NewEvaluator(policy, &FixedTimeProvider{At: now}))
	require.NoError(t, err)
	return g
}

// saturdayNoon момент до всех тестовых слотов
var saturdayNoon = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func availabilityByLabel(slots []domain.CandidateSlot) map[string]bool {
	result := make(map[string]bool, len(slots))
	for _, s := range slots {
		result[s.Start.Format(domain.TimeFormat)] = s.Available
	}
	return result
}
