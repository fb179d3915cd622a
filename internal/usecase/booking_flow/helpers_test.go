package booking_flow

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	flowStore "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/flow"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/find_next_available"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

const hostID int64 = 10

var (
	// Суббота 2024-06-01 12:00 UTC
	testNow   = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	monday    = domain.CivilDate{Year: 2024, Month: time.June, Day: 3}
	mondayTen = time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
)

// schedulingFake хранит правила и бронирования хоста в памяти
type schedulingFake struct {
	mu sync.Mutex

	meetingType *domain.MeetingType
	rules       []domain.Rule
	bookings    []domain.Booking

	rulesErr    error
	bookingsErr error
	createErr   error
	linkErr     error

	drafts    []*domain.BookingDraft
	linkCalls int
	revoked   []string
	revokeErr error
}

func (s *schedulingFake) ResolveMeetingType(ctx context.Context, host int64, ref domain.MeetingTypeRef) (*domain.MeetingType, error) {
	if ref.IsCustom() {
		return domain.NewAdHocMeetingType(host, ref.CustomDurationMinutes, ref.CustomPlatform)
	}
	if s.meetingType == nil || s.meetingType.ID != ref.ID {
		return nil, domain.ErrNotFound
	}
	return s.meetingType, nil
}

func (s *schedulingFake) GetActiveRules(ctx context.Context, host int64) ([]domain.Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Rule(nil), s.rules...), s.rulesErr
}

func (s *schedulingFake) GetBookings(ctx context.Context, host int64, from, to time.Time) ([]domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bookingsErr != nil {
		return nil, s.bookingsErr
	}
	return append([]domain.Booking(nil), s.bookings...), nil
}

func (s *schedulingFake) CreateBooking(ctx context.Context, host int64, draft *domain.BookingDraft) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts = append(s.drafts, draft)
	if s.createErr != nil {
		return nil, s.createErr
	}
	b := draft.ToBooking()
	s.bookings = append(s.bookings, *b)
	return b, nil
}

func (s *schedulingFake) CreateMeetingLink(ctx context.Context, platform domain.Platform, title string, start time.Time, durationMinutes int) (*string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.linkCalls++
	if s.linkErr != nil {
		return nil, s.linkErr
	}
	link := "https://meet.google.com/abc-defg-hij"
	return &link, nil
}

func (s *schedulingFake) RevokeMeetingLink(ctx context.Context, platform domain.Platform, link string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked = append(s.revoked, link)
	return s.revokeErr
}

// addBooking добавляет бронирование как будто его зафиксировал другой гость
func (s *schedulingFake) addBooking(start time.Time, duration int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = append(s.bookings, domain.Booking{
		ID:              uuid.New(),
		HostID:          hostID,
		StartTime:       start,
		DurationMinutes: duration,
		Status:          domain.StatusConfirmed,
	})
}

type logMock struct{}

func (l *logMock) Info(format string, v ...interface{})  {}
func (l *logMock) Warn(format string, v ...interface{})  {}
func (l *logMock) Error(format string, v ...interface{}) {}

type metricsMock struct{}

func (m *metricsMock) AddSlotsGenerated(total, available int) {}
func (m *metricsMock) IncNextAvailableSearch(result string)  {}

func testMeetingType(platform domain.Platform) *domain.MeetingType {
	return &domain.MeetingType{
		ID:                    1,
		HostID:                hostID,
		Name:                  "Intro call",
		DurationMinutes:       30,
		MaxAdvanceBookingDays: 30,
		Platform:              platform,
		Active:                true,
		Questions: []domain.CustomQuestion{
			{ID: "topic", Text: "What would you like to discuss?", Required: true, AnswerKind: domain.AnswerKindTextarea},
			{ID: "company", Text: "Company", AnswerKind: domain.AnswerKindText},
		},
	}
}

func weekdayRule(t *testing.T) domain.Rule {
	t.Helper()
	cond, err := domain.NewAvailabilityConditions(domain.Weekdays, "09:00", "17:00", "UTC")
	require.NoError(t, err)
	return domain.Rule{ID: 1, HostID: hostID, Name: "Business hours", Active: true, Conditions: cond}
}

func validForm() DetailsForm {
	return DetailsForm{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Answers: map[string]string{"topic": "Analytical engine"},
	}
}

// newTestUseCase собирает сценарий на настоящих генераторе и запросах слотов
func newTestUseCase(t *testing.T, svc *schedulingFake) *UseCase {
	t.Helper()

	evaluator := availability.NewEvaluator(availability.ZeroAvailabilityAdmit, &availability.FixedTimeProvider{At: testNow})
	generator, err := availability.NewGenerator(availability.DefaultConfig(), evaluator)
	require.NoError(t, err)

	slots := get_available_slots.NewUseCase(svc, generator, &metricsMock{}, &logMock{})
	search := find_next_available.NewUseCase(svc, generator, 14, &metricsMock{}, &logMock{})
	store := flowStore.NewStore[*Flow](time.Hour)

	return NewUseCase(svc, slots, search, evaluator, generator, store, &logMock{})
}

func newFixture(t *testing.T, platform domain.Platform) (*UseCase, *schedulingFake) {
	t.Helper()
	svc := &schedulingFake{
		meetingType: testMeetingType(platform),
		rules:       []domain.Rule{weekdayRule(t)},
	}
	return newTestUseCase(t, svc), svc
}

// startAtSlot запускает сценарий и доводит его до ввода данных на слоте start
func startAtSlot(t *testing.T, uc *UseCase, start time.Time) uuid.UUID {
	t.Helper()

	id, view, err := uc.Start(context.Background(), &StartRequest{HostID: hostID, MeetingType: domain.MeetingTypeRef{ID: 1}})
	require.NoError(t, err)
	require.Equal(t, StepSelectingDateTime, view.Step)

	_, err = uc.SelectDate(context.Background(), id, domain.CivilDateOf(start))
	require.NoError(t, err)

	view, err = uc.SelectSlot(id, start)
	require.NoError(t, err)
	require.Equal(t, StepEnteringDetails, view.Step)

	return id
}
