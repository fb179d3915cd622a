package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// SchedulingService интерфейс доступа к данным хоста
type SchedulingService interface {
	ResolveMeetingType(ctx context.Context, hostID int64, ref domain.MeetingTypeRef) (*domain.MeetingType, error)
	GetActiveRules(ctx context.Context, hostID int64) ([]domain.Rule, error)
	GetBookings(ctx context.Context, hostID int64, from, to time.Time) ([]domain.Booking, error)
}

// SlotGenerator интерфейс генератора слотов
type SlotGenerator interface {
	GenerateSlots(date domain.CivilDate, meetingType *domain.MeetingType, rules []domain.Rule, bookings []domain.Booking, granularityMinutes int) ([]domain.CandidateSlot, error)
	Today() domain.CivilDate
	Location() *time.Location
	Granularity() int
}

// Metrics интерфейс метрик генерации слотов
type Metrics interface {
	AddSlotsGenerated(total, available int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
