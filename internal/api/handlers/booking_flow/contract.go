package booking_flow

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingFlow "github.com/m04kA/SMC-SchedulingService/internal/usecase/booking_flow"
)

type BookingFlowUseCase interface {
	Start(ctx context.Context, req *bookingFlow.StartRequest) (uuid.UUID, bookingFlow.View, error)
	Get(id uuid.UUID) (bookingFlow.View, error)
	SelectDate(ctx context.Context, id uuid.UUID, date domain.CivilDate) (bookingFlow.View, error)
	SelectSlot(id uuid.UUID, start time.Time) (bookingFlow.View, error)
	SubmitDetails(ctx context.Context, id uuid.UUID, form bookingFlow.DetailsForm) (bookingFlow.View, error)
	Back(id uuid.UUID) (bookingFlow.View, error)
	Done(id uuid.UUID) (bookingFlow.View, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
