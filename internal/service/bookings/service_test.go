package bookings

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

type repoMock struct {
	booking *domain.Booking
	err     error
}

func (r *repoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.booking, nil
}

type logMock struct{}

func (l *logMock) Info(format string, v ...interface{})  {}
func (l *logMock) Warn(format string, v ...interface{})  {}
func (l *logMock) Error(format string, v ...interface{}) {}

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:              uuid.MustParse("8f14e45f-ceea-467f-a0e6-5c1a2f4b7a10"),
		HostID:          10,
		MeetingTypeID:   ptr.Ptr(int64(3)),
		MeetingName:     "Intro call",
		GuestName:       "Ann Lee",
		GuestEmail:      "ann@example.com",
		StartTime:       time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
		Status:          domain.StatusConfirmed,
		Platform:        domain.PlatformGoogleMeet,
		MeetingLink:     ptr.Ptr("https://meet.google.com/abc-defg-hij"),
		Answers:         []domain.QuestionAnswer{{QuestionID: "q1", Question: "Topic?", Answer: "Pricing"}},
		CreatedAt:       time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestService_GetByID(t *testing.T) {
	b := confirmedBooking()
	svc := NewService(&repoMock{booking: b}, &logMock{})

	resp, err := svc.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID.String(), resp.ID)
	assert.Equal(t, time.Date(2024, 6, 3, 10, 30, 0, 0, time.UTC), resp.EndTime)
	assert.Equal(t, "confirmed", resp.Status)
	require.Len(t, resp.Answers, 1)
	assert.Equal(t, "Pricing", resp.Answers[0].Answer)

	svc = NewService(&repoMock{err: bookingRepo.ErrBookingNotFound}, &logMock{})
	_, err = svc.GetByID(context.Background(), b.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	svc = NewService(&repoMock{err: errors.New("connection refused")}, &logMock{})
	_, err = svc.GetByID(context.Background(), b.ID)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_CalendarInvite(t *testing.T) {
	b := confirmedBooking()
	svc := NewService(&repoMock{booking: b}, &logMock{})
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC) }

	data, err := svc.CalendarInvite(context.Background(), b.ID)
	require.NoError(t, err)

	cal, err := ical.ParseCalendar(bytes.NewReader(data))
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, "Intro call with Ann Lee", ev.GetProperty(ical.ComponentPropertySummary).Value)
	assert.Equal(t, "https://meet.google.com/abc-defg-hij", ev.GetProperty(ical.ComponentPropertyLocation).Value)

	start, err := ev.GetStartAt()
	require.NoError(t, err)
	assert.True(t, start.Equal(b.StartTime))
	end, err := ev.GetEndAt()
	require.NoError(t, err)
	assert.True(t, end.Equal(b.EndTime()))
	assert.Contains(t, string(data), "METHOD:REQUEST")
}

func TestService_CalendarInvite_Cancelled(t *testing.T) {
	b := confirmedBooking()
	b.Status = domain.StatusCancelled
	svc := NewService(&repoMock{booking: b}, &logMock{})

	_, err := svc.CalendarInvite(context.Background(), b.ID)
	assert.ErrorIs(t, err, ErrBookingCancelled)
}
