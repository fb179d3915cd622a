package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByHostAndRange(ctx context.Context, hostID int64, from, to time.Time) ([]domain.Booking, error)
	LockHost(ctx context.Context, hostID int64) error
}

// RuleRepository интерфейс репозитория правил
type RuleRepository interface {
	GetActiveByHost(ctx context.Context, hostID int64) ([]domain.Rule, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Evaluator интерфейс проверки допустимости слота
type Evaluator interface {
	Evaluate(candidate domain.Candidate, meetingType *domain.MeetingType, rules []domain.Rule, bookings []domain.Booking) availability.Reason
}

// Metrics интерфейс метрик коммита
type Metrics interface {
	IncBookingCommit(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
