package scheduling

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	meetingTypeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/meetingtype"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
)

type ruleRepoMock struct {
	rules []domain.Rule
	err   error
}

func (m *ruleRepoMock) GetActiveByHost(ctx context.Context, hostID int64) ([]domain.Rule, error) {
	return m.rules, m.err
}

type meetingTypeRepoMock struct {
	mt  *domain.MeetingType
	err error
}

func (m *meetingTypeRepoMock) GetByID(ctx context.Context, hostID, id int64) (*domain.MeetingType, error) {
	return m.mt, m.err
}

type bookingRepoMock struct {
	bookings []domain.Booking
	err      error
	from, to time.Time
}

func (m *bookingRepoMock) GetByHostAndRange(ctx context.Context, hostID int64, from, to time.Time) ([]domain.Booking, error) {
	m.from, m.to = from, to
	return m.bookings, m.err
}

type committerMock struct {
	req *create_booking.Request
	err error
}

func (m *committerMock) Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error) {
	m.req = req
	if m.err != nil {
		return nil, m.err
	}
	return &create_booking.Response{Booking: req.Draft.ToBooking()}, nil
}

type linksMock struct {
	link *string
	err  error

	revoked   []string
	revokeErr error
}

func (m *linksMock) CreateMeetingLink(ctx context.Context, platform domain.Platform, title string, start time.Time, durationMinutes int) (*string, error) {
	return m.link, m.err
}

func (m *linksMock) RevokeMeetingLink(ctx context.Context, platform domain.Platform, link string) error {
	m.revoked = append(m.revoked, link)
	return m.revokeErr
}

type logMock struct {
	warnings []string
}

func (l *logMock) Info(format string, v ...interface{}) {}
func (l *logMock) Warn(format string, v ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, v...))
}
func (l *logMock) Error(format string, v ...interface{}) {}

func validMeetingType() *domain.MeetingType {
	return &domain.MeetingType{
		ID:                    1,
		HostID:                10,
		Name:                  "Intro call",
		DurationMinutes:       30,
		MaxAdvanceBookingDays: 30,
		Platform:              domain.PlatformZoom,
		Active:                true,
	}
}

func TestGetActiveRules_LogsQuarantined(t *testing.T) {
	log := &logMock{}
	rules := &ruleRepoMock{rules: []domain.Rule{
		{ID: 1, Active: true, Conditions: &domain.DailyLimit{MaxBookingsPerDay: 2}},
		{ID: 2, Active: true, QuarantineReason: "unknown rule type"},
	}}
	svc := NewService(rules, nil, nil, nil, nil, log)

	got, err := svc.GetActiveRules(context.Background(), 10)
	require.NoError(t, err)

	assert.Len(t, got, 2)
	require.Len(t, log.warnings, 1)
	assert.Contains(t, log.warnings[0], "id=2")
}

func TestGetActiveRules_StorageError(t *testing.T) {
	svc := NewService(&ruleRepoMock{err: errors.New("timeout")}, nil, nil, nil, nil, &logMock{})

	_, err := svc.GetActiveRules(context.Background(), 10)
	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, domain.ErrCollaborator)
}

func TestGetMeetingType(t *testing.T) {
	inactive := validMeetingType()
	inactive.Active = false
	invalid := validMeetingType()
	invalid.DurationMinutes = 0

	tests := []struct {
		name    string
		repo    *meetingTypeRepoMock
		wantErr error
	}{
		{name: "ok", repo: &meetingTypeRepoMock{mt: validMeetingType()}},
		{name: "not found", repo: &meetingTypeRepoMock{err: meetingTypeRepo.ErrMeetingTypeNotFound}, wantErr: domain.ErrNotFound},
		{name: "inactive", repo: &meetingTypeRepoMock{mt: inactive}, wantErr: domain.ErrNotFound},
		{name: "invalid", repo: &meetingTypeRepoMock{mt: invalid}, wantErr: domain.ErrConfiguration},
		{name: "storage", repo: &meetingTypeRepoMock{err: errors.New("timeout")}, wantErr: domain.ErrCollaborator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(nil, tt.repo, nil, nil, nil, &logMock{})

			mt, err := svc.GetMeetingType(context.Background(), 10, 1)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, mt)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(1), mt.ID)
		})
	}
}

func TestGetBookings(t *testing.T) {
	repo := &bookingRepoMock{bookings: []domain.Booking{{ID: uuid.New()}}}
	svc := NewService(nil, nil, repo, nil, nil, &logMock{})

	from := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 3)
	got, err := svc.GetBookings(context.Background(), 10, from, to)
	require.NoError(t, err)

	assert.Len(t, got, 1)
	assert.Equal(t, from, repo.from)
	assert.Equal(t, to, repo.to)

	repo.err = errors.New("timeout")
	_, err = svc.GetBookings(context.Background(), 10, from, to)
	assert.ErrorIs(t, err, domain.ErrCollaborator)
}

func TestCreateBooking_Delegates(t *testing.T) {
	committer := &committerMock{}
	svc := NewService(nil, nil, nil, committer, nil, &logMock{})

	draft := &domain.BookingDraft{
		BookingID:   uuid.New(),
		HostID:      10,
		MeetingType: validMeetingType(),
		Slot:        domain.Candidate{Start: time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC), DurationMinutes: 30},
		Guest:       domain.GuestDetails{Name: "Ada", Email: "ada@example.com"},
	}

	b, err := svc.CreateBooking(context.Background(), 10, draft)
	require.NoError(t, err)
	assert.Equal(t, draft.BookingID, b.ID)
	assert.Equal(t, int64(10), committer.req.HostID)

	committer.err = create_booking.ErrSlotConflict
	_, err = svc.CreateBooking(context.Background(), 10, draft)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreateMeetingLink(t *testing.T) {
	link := "https://zoom.example.com/j/1"
	svc := NewService(nil, nil, nil, nil, &linksMock{link: &link}, &logMock{})

	got, err := svc.CreateMeetingLink(context.Background(), domain.PlatformZoom, "Intro", time.Now(), 30)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, link, *got)

	svc = NewService(nil, nil, nil, nil, &linksMock{err: errors.New("gateway down")}, &logMock{})
	_, err = svc.CreateMeetingLink(context.Background(), domain.PlatformZoom, "Intro", time.Now(), 30)
	assert.ErrorIs(t, err, ErrMeetingLink)
	assert.ErrorIs(t, err, domain.ErrCollaborator)
}

func TestRevokeMeetingLink(t *testing.T) {
	links := &linksMock{}
	svc := NewService(nil, nil, nil, nil, links, &logMock{})

	require.NoError(t, svc.RevokeMeetingLink(context.Background(), domain.PlatformGoogleMeet, "https://meet.google.com/abc"))
	assert.Equal(t, []string{"https://meet.google.com/abc"}, links.revoked)

	links.revokeErr = errors.New("calendar unavailable")
	err := svc.RevokeMeetingLink(context.Background(), domain.PlatformGoogleMeet, "https://meet.google.com/abc")
	assert.ErrorIs(t, err, ErrMeetingLink)
}

func TestResolveMeetingType(t *testing.T) {
	svc := NewService(nil, &meetingTypeRepoMock{mt: validMeetingType()}, nil, nil, nil, &logMock{})

	stored, err := svc.ResolveMeetingType(context.Background(), 10, domain.MeetingTypeRef{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, "Intro call", stored.Name)

	custom, err := svc.ResolveMeetingType(context.Background(), 10, domain.MeetingTypeRef{
		CustomDurationMinutes: 45,
		CustomPlatform:        domain.PlatformPhone,
	})
	require.NoError(t, err)
	assert.True(t, custom.IsAdHoc())
	assert.Equal(t, 45, custom.DurationMinutes)
	assert.Equal(t, domain.AdHocBufferMinutes, custom.BufferBeforeMinutes)

	_, err = svc.ResolveMeetingType(context.Background(), 10, domain.MeetingTypeRef{
		CustomDurationMinutes: 5,
		CustomPlatform:        domain.PlatformPhone,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
