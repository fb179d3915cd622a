package find_next_available

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
)

// UseCase use case для поиска ближайшего свободного слота
type UseCase struct {
	scheduling SchedulingService
	searcher   SlotSearcher
	horizon    int
	metrics    Metrics
	logger     Logger
}

// NewUseCase создает новый экземпляр use case.
// defaultHorizonDays используется, когда запрос не задает горизонт
func NewUseCase(
	scheduling SchedulingService,
	searcher SlotSearcher,
	defaultHorizonDays int,
	metrics Metrics,
	logger Logger,
) *UseCase {
	if defaultHorizonDays <= 0 {
		defaultHorizonDays = domain.DefaultHorizonDays
	}
	return &UseCase{
		scheduling: scheduling,
		searcher:   searcher,
		horizon:    defaultHorizonDays,
		metrics:    metrics,
		logger:     logger,
	}
}

// Execute выполняет use case поиска ближайшего слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("FindNextAvailable: host=%d, meeting_type=%d, from=%s, days=%v, time=%s, horizon=%d",
		req.HostID, req.MeetingType.ID, req.From, req.Days.Names(), req.Time, req.HorizonDays)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("FindNextAvailable: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем тип встречи
	meetingType, err := uc.scheduling.ResolveMeetingType(ctx, req.HostID, req.MeetingType)
	if err != nil {
		uc.logger.Warn("FindNextAvailable: failed to resolve meeting type: %v", err)
		return nil, err
	}

	// 3. Поиск не начинается раньше сегодняшнего дня
	from := req.From
	if today := uc.searcher.Today(); from.IsZero() || from.Before(today) {
		from = today
	}

	horizon := req.HorizonDays
	if horizon == 0 {
		horizon = uc.horizon
	}

	// 4. Получаем правила хоста
	rules, err := uc.scheduling.GetActiveRules(ctx, req.HostID)
	if err != nil {
		return nil, err
	}

	// 5. Получаем бронирования на весь горизонт поиска одним запросом
	rangeFrom, _ := availability.DayWindow(from, uc.searcher.Location())
	_, rangeTo := availability.DayWindow(from.AddDays(horizon-1), uc.searcher.Location())
	bookings, err := uc.scheduling.GetBookings(ctx, req.HostID, rangeFrom, rangeTo)
	if err != nil {
		return nil, err
	}

	// 6. Ищем ближайший слот
	slot, found, err := uc.searcher.FindNext(from, meetingType, rules, bookings, availability.SearchOptions{
		Days:        req.Days,
		Time:        req.Time,
		HorizonDays: horizon,
	})
	if err != nil {
		uc.logger.Error("FindNextAvailable: search failed: %v", err)
		return nil, err
	}

	if !found {
		uc.logger.Info("FindNextAvailable: no slot within %d days from %s", horizon, from)
		uc.metrics.IncNextAvailableSearch(metrics.SearchResultNotFound)
		return &Response{MeetingType: meetingType}, nil
	}

	uc.logger.Info("FindNextAvailable: found slot %s", slot.Start)
	uc.metrics.IncNextAvailableSearch(metrics.SearchResultFound)

	return &Response{
		MeetingType: meetingType,
		Slot:        slot,
		Found:       true,
	}, nil
}
