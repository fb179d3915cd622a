package booking_flow

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/find_next_available"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

// SchedulingService интерфейс доступа к данным хоста и фиксации бронирования
type SchedulingService interface {
	ResolveMeetingType(ctx context.Context, hostID int64, ref domain.MeetingTypeRef) (*domain.MeetingType, error)
	GetActiveRules(ctx context.Context, hostID int64) ([]domain.Rule, error)
	GetBookings(ctx context.Context, hostID int64, from, to time.Time) ([]domain.Booking, error)
	CreateBooking(ctx context.Context, hostID int64, draft *domain.BookingDraft) (*domain.Booking, error)
	CreateMeetingLink(ctx context.Context, platform domain.Platform, title string, start time.Time, durationMinutes int) (*string, error)
	RevokeMeetingLink(ctx context.Context, platform domain.Platform, link string) error
}

// SlotsQuery интерфейс получения слотов дня
type SlotsQuery interface {
	Execute(ctx context.Context, req *get_available_slots.Request) (*get_available_slots.Response, error)
}

// NextAvailableQuery интерфейс поиска ближайшего слота
type NextAvailableQuery interface {
	Execute(ctx context.Context, req *find_next_available.Request) (*find_next_available.Response, error)
}

// Evaluator интерфейс повторной проверки слота перед фиксацией
type Evaluator interface {
	Evaluate(candidate domain.Candidate, meetingType *domain.MeetingType, rules []domain.Rule, bookings []domain.Booking) availability.Reason
}

// Calendar источник текущего дня и часового пояса хоста
type Calendar interface {
	Today() domain.CivilDate
	Location() *time.Location
}

// Store хранилище сценариев
type Store interface {
	Put(value *Flow) uuid.UUID
	Get(id uuid.UUID) (*Flow, error)
	Delete(id uuid.UUID)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
