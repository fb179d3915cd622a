package find_next_available

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
)

// SchedulingService интерфейс доступа к данным хоста
type SchedulingService interface {
	ResolveMeetingType(ctx context.Context, hostID int64, ref domain.MeetingTypeRef) (*domain.MeetingType, error)
	GetActiveRules(ctx context.Context, hostID int64) ([]domain.Rule, error)
	GetBookings(ctx context.Context, hostID int64, from, to time.Time) ([]domain.Booking, error)
}

// SlotSearcher интерфейс поиска ближайшего слота
type SlotSearcher interface {
	FindNext(from domain.CivilDate, meetingType *domain.MeetingType, rules []domain.Rule, bookings []domain.Booking, opts availability.SearchOptions) (domain.CandidateSlot, bool, error)
	Today() domain.CivilDate
	Location() *time.Location
}

// Metrics интерфейс метрик поиска
type Metrics interface {
	IncNextAvailableSearch(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
