package get_booking_calendar

import (
	"context"

	"github.com/google/uuid"
)

type BookingService interface {
	CalendarInvite(ctx context.Context, id uuid.UUID) ([]byte, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
