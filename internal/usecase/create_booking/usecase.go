package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

// UseCase use case для фиксации бронирования
type UseCase struct {
	bookingRepo BookingRepository
	ruleRepo    RuleRepository
	txManager   TransactionManager
	evaluator   Evaluator
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	ruleRepo RuleRepository,
	txManager TransactionManager,
	evaluator Evaluator,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		ruleRepo:    ruleRepo,
		txManager:   txManager,
		evaluator:   evaluator,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute выполняет use case фиксации бронирования.
// Все проверки повторяются внутри сериализуемой транзакции под блокировкой хоста,
// поэтому из конкурирующих попыток на пересекающиеся слоты успешна ровно одна
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.IncBookingCommit(metrics.CommitResultRejected)
		return nil, err
	}

	draft := req.Draft
	candidate := draft.Slot
	uc.logger.Info("CreateBooking: host=%d, booking=%s, meeting_type=%d, start=%s, duration=%d",
		req.HostID, draft.BookingID, draft.MeetingType.ID, candidate.Start.Format(time.RFC3339), candidate.DurationMinutes)

	var result *domain.Booking

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Сериализуем коммиты одного хоста
		if err := uc.bookingRepo.LockHost(txCtx, req.HostID); err != nil {
			uc.logger.Error("CreateBooking: failed to lock host=%d: %v", req.HostID, err)
			return fmt.Errorf("%w: failed to lock host: %v", ErrInternal, err)
		}

		// 2.2. Перечитываем правила, они могли измениться после выбора слота
		rules, err := uc.ruleRepo.GetActiveByHost(txCtx, req.HostID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get rules: %v", err)
			return fmt.Errorf("%w: failed to get rules: %v", ErrInternal, err)
		}

		// 2.3. Получаем активные бронирования вокруг слота с блокировкой (FOR UPDATE)
		from, to := availability.CandidateWindow(candidate)
		bookings, err := uc.bookingRepo.GetByHostAndRange(txCtx, req.HostID, from, to)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 2.4. Полная повторная проверка слота
		if err := uc.recheck(candidate, draft.MeetingType, rules, bookings); err != nil {
			return err
		}

		// 2.5. Создаем бронирование
		created, err := uc.bookingRepo.Create(txCtx, draft.ToBooking())
		if err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrSlotNotAvailable):
				uc.logger.Warn("CreateBooking: exclusion constraint rejected booking=%s", draft.BookingID)
				return fmt.Errorf("%w: %v", ErrSlotConflict, err)
			case errors.Is(err, bookingRepo.ErrDuplicateBooking):
				uc.logger.Warn("CreateBooking: booking=%s already exists", draft.BookingID)
				return ErrAlreadyCommitted
			case txmanager.IsSerializationFailure(err):
				return err
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Конкурентная транзакция зафиксировала пересекающийся слот раньше
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateBooking: serialization failure for host=%d: %v", req.HostID, err)
			err = fmt.Errorf("%w: %v", ErrSlotConflict, err)
		} else if !errors.Is(err, domain.ErrAdmissibility) && !errors.Is(err, domain.ErrConflict) &&
			!errors.Is(err, domain.ErrCollaborator) {
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
			err = fmt.Errorf("%w: %v", ErrInternal, err)
		}
		uc.metrics.IncBookingCommit(commitResult(err))
		return nil, err
	}

	uc.logger.Info("CreateBooking: booking=%s created for host=%d", result.ID, result.HostID)
	uc.metrics.IncBookingCommit(metrics.CommitResultCreated)

	return &Response{Booking: result}, nil
}

// recheck повторяет оценку слота на свежих данных.
// Если слот проходит правила без учета бронирований, отказ считается конфликтом
func (uc *UseCase) recheck(
	candidate domain.Candidate,
	meetingType *domain.MeetingType,
	rules []domain.Rule,
	bookings []domain.Booking,
) error {
	reason := uc.evaluator.Evaluate(candidate, meetingType, rules, bookings)
	if reason == availability.ReasonAdmissible {
		return nil
	}

	if uc.evaluator.Evaluate(candidate, meetingType, rules, nil) == availability.ReasonAdmissible {
		uc.logger.Warn("CreateBooking: slot %s taken, reason=%s", candidate.Start, reason)
		return fmt.Errorf("%w: reason=%s", ErrSlotConflict, reason)
	}

	uc.logger.Warn("CreateBooking: slot %s is not admissible, reason=%s", candidate.Start, reason)
	return fmt.Errorf("%w: reason=%s", ErrSlotNotAdmissible, reason)
}

// commitResult возвращает метку метрики для ошибки коммита
func commitResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrConflict):
		return metrics.CommitResultConflict
	case errors.Is(err, domain.ErrAdmissibility), errors.Is(err, domain.ErrValidation):
		return metrics.CommitResultRejected
	default:
		return metrics.CommitResultError
	}
}
