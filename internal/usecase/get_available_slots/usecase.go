package get_available_slots

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
)

// UseCase use case для получения слотов дня
type UseCase struct {
	scheduling SchedulingService
	generator  SlotGenerator
	metrics    Metrics
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduling SchedulingService,
	generator SlotGenerator,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduling: scheduling,
		generator:  generator,
		metrics:    metrics,
		logger:     logger,
	}
}

// Execute выполняет use case получения слотов дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: host=%d, meeting_type=%d, date=%s",
		req.HostID, req.MeetingType.ID, req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем тип встречи
	meetingType, err := uc.scheduling.ResolveMeetingType(ctx, req.HostID, req.MeetingType)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: failed to resolve meeting type: %v", err)
		return nil, err
	}

	// 3. Валидация даты с учетом окна бронирования типа встречи
	if err := ValidateDate(req.Date, uc.generator.Today(), meetingType.MaxAdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем правила хоста
	rules, err := uc.scheduling.GetActiveRules(ctx, req.HostID)
	if err != nil {
		return nil, err
	}

	// 5. Получаем бронирования, влияющие на слоты дня
	from, to := availability.DayWindow(req.Date, uc.generator.Location())
	bookings, err := uc.scheduling.GetBookings(ctx, req.HostID, from, to)
	if err != nil {
		return nil, err
	}

	// 6. Генерируем слоты
	granularity := req.GranularityMinutes
	if granularity == 0 {
		granularity = uc.generator.Granularity()
	}

	slots, err := uc.generator.GenerateSlots(req.Date, meetingType, rules, bookings, granularity)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, err
	}

	available := availability.CountAvailable(slots)
	uc.metrics.AddSlotsGenerated(len(slots), available)
	uc.logger.Info("GetAvailableSlots: generated %d slots, %d available", len(slots), available)

	return &Response{
		Date:           req.Date,
		MeetingType:    meetingType,
		Slots:          slots,
		AvailableCount: available,
	}, nil
}
