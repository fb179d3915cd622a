package find_next_available

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
)

// Суббота 2024-06-01 12:00 UTC
var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type schedulingMock struct {
	rules    []domain.Rule
	bookings []domain.Booking
	from, to time.Time
}

func (m *schedulingMock) ResolveMeetingType(ctx context.Context, hostID int64, ref domain.MeetingTypeRef) (*domain.MeetingType, error) {
	return &domain.MeetingType{
		ID:                    ref.ID,
		HostID:                hostID,
		Name:                  "Intro call",
		DurationMinutes:       30,
		MaxAdvanceBookingDays: 60,
		Platform:              domain.PlatformTeams,
		Active:                true,
	}, nil
}

func (m *schedulingMock) GetActiveRules(ctx context.Context, hostID int64) ([]domain.Rule, error) {
	return m.rules, nil
}

func (m *schedulingMock) GetBookings(ctx context.Context, hostID int64, from, to time.Time) ([]domain.Booking, error) {
	m.from, m.to = from, to
	return m.bookings, nil
}

type metricsMock struct {
	results []string
}

func (m *metricsMock) IncNextAvailableSearch(result string) {
	m.results = append(m.results, result)
}

type logMock struct{}

func (l *logMock) Info(format string, v ...interface{})  {}
func (l *logMock) Warn(format string, v ...interface{})  {}
func (l *logMock) Error(format string, v ...interface{}) {}

func newUseCase(t *testing.T) (*UseCase, *schedulingMock, *metricsMock) {
	t.Helper()

	cond, err := domain.NewAvailabilityConditions(domain.Weekdays, "09:00", "17:00", "UTC")
	require.NoError(t, err)

	svc := &schedulingMock{rules: []domain.Rule{{ID: 1, HostID: 10, Active: true, Conditions: cond}}}
	m := &metricsMock{}

	evaluator := availability.NewEvaluator(availability.ZeroAvailabilityAdmit, &availability.FixedTimeProvider{At: testNow})
	generator, err := availability.NewGenerator(availability.DefaultConfig(), evaluator)
	require.NoError(t, err)

	return NewUseCase(svc, generator, 0, m, &logMock{}), svc, m
}

func TestExecute_Filters(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want time.Time
	}{
		{
			name: "any day starts from today",
			req:  Request{},
			want: time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "friday only",
			req:  Request{Days: domain.NewWeekdaySet(time.Friday)},
			want: time.Date(2024, 6, 7, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "afternoon",
			req:  Request{Time: domain.TimeFilterAfternoon},
			want: time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC),
		},
		{
			name: "from past date is clamped to today",
			req:  Request{From: domain.CivilDate{Year: 2024, Month: time.May, Day: 1}},
			want: time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "from future date",
			req:  Request{From: domain.CivilDate{Year: 2024, Month: time.June, Day: 5}},
			want: time.Date(2024, 6, 5, 9, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, m := newUseCase(t)

			req := tt.req
			req.HostID = 10
			req.MeetingType = domain.MeetingTypeRef{ID: 1}

			resp, err := uc.Execute(context.Background(), &req)
			require.NoError(t, err)

			require.True(t, resp.Found)
			assert.Equal(t, tt.want, resp.Slot.Start)
			assert.True(t, resp.Slot.Available)
			assert.Equal(t, []string{metrics.SearchResultFound}, m.results)
		})
	}
}

func TestExecute_NotFound(t *testing.T) {
	uc, _, m := newUseCase(t)

	// Только выходные в горизонте
	resp, err := uc.Execute(context.Background(), &Request{
		HostID:      10,
		MeetingType: domain.MeetingTypeRef{ID: 1},
		HorizonDays: 2,
	})
	require.NoError(t, err)

	assert.False(t, resp.Found)
	assert.True(t, resp.Slot.Start.IsZero())
	assert.Equal(t, []string{metrics.SearchResultNotFound}, m.results)
}

func TestExecute_BookingRangeCoversHorizon(t *testing.T) {
	uc, svc, _ := newUseCase(t)

	_, err := uc.Execute(context.Background(), &Request{HostID: 10, MeetingType: domain.MeetingTypeRef{ID: 1}})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC), svc.from)
	assert.Equal(t, time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC), svc.to)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc, _, _ := newUseCase(t)

	tests := []struct {
		name string
		req  Request
	}{
		{"no host", Request{MeetingType: domain.MeetingTypeRef{ID: 1}}},
		{"horizon too large", Request{HostID: 10, MeetingType: domain.MeetingTypeRef{ID: 1}, HorizonDays: 91}},
		{"negative horizon", Request{HostID: 10, MeetingType: domain.MeetingTypeRef{ID: 1}, HorizonDays: -1}},
		{"unknown time filter", Request{HostID: 10, MeetingType: domain.MeetingTypeRef{ID: 1}, Time: "evening"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}
