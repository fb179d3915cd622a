package scheduling

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
)

// RuleRepository интерфейс репозитория правил
type RuleRepository interface {
	GetActiveByHost(ctx context.Context, hostID int64) ([]domain.Rule, error)
}

// MeetingTypeRepository интерфейс репозитория типов встреч
type MeetingTypeRepository interface {
	GetByID(ctx context.Context, hostID, id int64) (*domain.MeetingType, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByHostAndRange(ctx context.Context, hostID int64, from, to time.Time) ([]domain.Booking, error)
}

// BookingCommitter фиксирует черновик бронирования
type BookingCommitter interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
}

// MeetingLinkCreator создает и отзывает ссылки на конференции
type MeetingLinkCreator interface {
	CreateMeetingLink(ctx context.Context, platform domain.Platform, title string, start time.Time, durationMinutes int) (*string, error)
	RevokeMeetingLink(ctx context.Context, platform domain.Platform, link string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
