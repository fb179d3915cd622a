package booking_flow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// UseCase use case управления сценариями бронирования
type UseCase struct {
	deps  *deps
	store Store
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduling SchedulingService,
	slots SlotsQuery,
	search NextAvailableQuery,
	evaluator Evaluator,
	calendar Calendar,
	store Store,
	logger Logger,
) *UseCase {
	return &UseCase{
		deps: &deps{
			scheduling: scheduling,
			slots:      slots,
			search:     search,
			evaluator:  evaluator,
			calendar:   calendar,
			logger:     logger,
		},
		store: store,
	}
}

// Start запускает сценарий для типа встречи хоста
func (uc *UseCase) Start(ctx context.Context, req *StartRequest) (uuid.UUID, View, error) {
	uc.deps.logger.Info("BookingFlow: start host=%d, meeting_type=%d, next_available=%t",
		req.HostID, req.MeetingType.ID, req.NextAvailable != nil)

	// 1. Валидация входных данных
	if err := validateStart(req); err != nil {
		uc.deps.logger.Warn("BookingFlow: validation failed: %v", err)
		return uuid.Nil, View{}, err
	}

	// 2. Получаем тип встречи
	meetingType, err := uc.deps.scheduling.ResolveMeetingType(ctx, req.HostID, req.MeetingType)
	if err != nil {
		uc.deps.logger.Warn("BookingFlow: failed to resolve meeting type: %v", err)
		return uuid.Nil, View{}, err
	}

	var mode *NextAvailableMode
	if req.NextAvailable != nil {
		m := *req.NextAvailable
		if m.Time == "" {
			m.Time = domain.TimeFilterAny
		}
		mode = &m
	}

	// 3. Сохраняем сценарий
	f := newFlow(uc.deps, req.HostID, meetingType, mode)
	id := uc.store.Put(f)

	uc.deps.logger.Info("BookingFlow: flow=%s started", id)
	return id, f.View(), nil
}

// Get возвращает состояние сценария
func (uc *UseCase) Get(id uuid.UUID) (View, error) {
	f, err := uc.store.Get(id)
	if err != nil {
		return View{}, err
	}
	return f.View(), nil
}

// SelectDate передает событие выбора даты
func (uc *UseCase) SelectDate(ctx context.Context, id uuid.UUID, date domain.CivilDate) (View, error) {
	f, err := uc.store.Get(id)
	if err != nil {
		return View{}, err
	}
	return f.SelectDate(ctx, date)
}

// SelectSlot передает событие выбора слота
func (uc *UseCase) SelectSlot(id uuid.UUID, start time.Time) (View, error) {
	f, err := uc.store.Get(id)
	if err != nil {
		return View{}, err
	}
	return f.SelectSlot(start)
}

// SubmitDetails передает событие отправки данных гостя
func (uc *UseCase) SubmitDetails(ctx context.Context, id uuid.UUID, form DetailsForm) (View, error) {
	f, err := uc.store.Get(id)
	if err != nil {
		return View{}, err
	}
	return f.SubmitDetails(ctx, form)
}

// Back передает событие возврата
func (uc *UseCase) Back(id uuid.UUID) (View, error) {
	f, err := uc.store.Get(id)
	if err != nil {
		return View{}, err
	}
	return f.Back()
}

// Done закрывает подтвержденный сценарий и удаляет его из хранилища
func (uc *UseCase) Done(id uuid.UUID) (View, error) {
	f, err := uc.store.Get(id)
	if err != nil {
		return View{}, err
	}

	view, err := f.Done()
	if err != nil {
		return view, err
	}

	uc.store.Delete(id)
	uc.deps.logger.Info("BookingFlow: flow=%s closed", id)
	return view, nil
}

// validateStart валидирует параметры запуска сценария
func validateStart(req *StartRequest) error {
	if req.HostID <= 0 {
		return fmt.Errorf("%w: hostID must be positive", ErrInvalidInput)
	}

	if req.MeetingType.ID < 0 {
		return fmt.Errorf("%w: meetingTypeID must not be negative", ErrInvalidInput)
	}

	if req.NextAvailable != nil {
		if _, err := domain.ParseTimeFilter(string(req.NextAvailable.Time)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	return nil
}
