package booking_flow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/find_next_available"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

// deps коллабораторы, общие для всех сценариев
type deps struct {
	scheduling SchedulingService
	slots      SlotsQuery
	search     NextAvailableQuery
	evaluator  Evaluator
	calendar   Calendar
	logger     Logger
}

// Flow сценарий бронирования одного гостя.
// SelectingDateTime -> EnteringDetails -> Confirmed, Failed достижим из EnteringDetails.
// События одного сценария выполняются последовательно
type Flow struct {
	mu   sync.Mutex
	deps *deps

	hostID        int64
	meetingType   *domain.MeetingType
	nextAvailable *NextAvailableMode

	step      Step
	date      domain.CivilDate
	slots     []domain.CandidateSlot
	noneFound bool
	slot      *domain.CandidateSlot
	form      DetailsForm
	failure   *Failure
	booking   *domain.Booking
}

func newFlow(d *deps, hostID int64, meetingType *domain.MeetingType, mode *NextAvailableMode) *Flow {
	return &Flow{
		deps:          d,
		hostID:        hostID,
		meetingType:   meetingType,
		nextAvailable: mode,
		step:          StepSelectingDateTime,
	}
}

// Step возвращает текущий шаг
func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// View возвращает снимок состояния
func (f *Flow) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.view()
}

func (f *Flow) view() View {
	v := View{
		Step:           f.step,
		HostID:         f.hostID,
		MeetingType:    f.meetingType,
		NextAvailable:  f.nextAvailable,
		Date:           f.date,
		Slots:          append([]domain.CandidateSlot(nil), f.slots...),
		AvailableCount: availability.CountAvailable(f.slots),
		NoneFound:      f.noneFound,
		Form:           f.form,
		Booking:        f.booking,
	}
	if f.slot != nil {
		slot := *f.slot
		v.SelectedSlot = &slot
	}
	if f.failure != nil {
		failure := *f.failure
		v.Failure = &failure
	}
	return v
}

// SelectDate выбирает дату и генерирует слоты.
// В режиме ближайшего слота ищет первый свободный слот начиная с даты и сразу переходит к вводу данных
func (f *Flow) SelectDate(ctx context.Context, date domain.CivilDate) (View, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepSelectingDateTime {
		return f.view(), f.illegal("SelectDate")
	}

	if err := get_available_slots.ValidateDate(date, f.deps.calendar.Today(), f.meetingType.MaxAdvanceBookingDays); err != nil {
		return f.view(), err
	}

	if f.nextAvailable != nil {
		if err := f.selectNextAvailable(ctx, date); err != nil {
			return f.view(), err
		}
		return f.view(), nil
	}

	resp, err := f.deps.slots.Execute(ctx, &get_available_slots.Request{
		HostID:      f.hostID,
		MeetingType: f.meetingTypeRef(),
		Date:        date,
	})
	if err != nil {
		// Текущий шаг сохраняется, запрос можно повторить
		f.deps.logger.Warn("BookingFlow: failed to load slots for %s: %v", date, err)
		return f.view(), err
	}

	f.date = date
	f.slots = resp.Slots
	f.slot = nil
	f.noneFound = false

	return f.view(), nil
}

func (f *Flow) selectNextAvailable(ctx context.Context, date domain.CivilDate) error {
	resp, err := f.deps.search.Execute(ctx, &find_next_available.Request{
		HostID:      f.hostID,
		MeetingType: f.meetingTypeRef(),
		From:        date,
		Days:        f.nextAvailable.Days,
		Time:        f.nextAvailable.Time,
	})
	if err != nil {
		f.deps.logger.Warn("BookingFlow: next available search from %s failed: %v", date, err)
		return err
	}

	f.date = date
	f.slot = nil

	if !resp.Found {
		f.slots = nil
		f.noneFound = true
		return nil
	}

	slot := resp.Slot
	f.date = domain.CivilDateOf(slot.Start.In(f.deps.calendar.Location()))
	f.slots = []domain.CandidateSlot{slot}
	f.slot = &slot
	f.noneFound = false
	f.step = StepEnteringDetails

	return nil
}

// SelectSlot выбирает один из доступных слотов текущей даты
func (f *Flow) SelectSlot(start time.Time) (View, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepSelectingDateTime || f.date.IsZero() {
		return f.view(), f.illegal("SelectSlot")
	}

	for i := range f.slots {
		if f.slots[i].Start.Equal(start) {
			if !f.slots[i].Available {
				return f.view(), fmt.Errorf("%w: %s is unavailable", ErrSlotNotOffered, f.slots[i].Label)
			}
			slot := f.slots[i]
			f.slot = &slot
			f.step = StepEnteringDetails
			return f.view(), nil
		}
	}

	return f.view(), fmt.Errorf("%w: no slot starts at %s", ErrSlotNotOffered, start.Format(time.RFC3339))
}

// SubmitDetails проверяет данные гостя, перепроверяет слот на свежих данных и фиксирует бронирование.
// Любая ошибка переводит сценарий в Failed, бронирование при этом не создается
func (f *Flow) SubmitDetails(ctx context.Context, form DetailsForm) (View, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case f.step == StepEnteringDetails:
	case f.step == StepFailed && f.failure != nil && f.failure.Kind.Recoverable():
	default:
		return f.view(), f.illegal("SubmitDetails")
	}

	f.form = normalizeDetails(form)
	f.failure = nil

	// 1. Валидация данных гостя
	if fields := validateDetails(f.form, f.meetingType); fields != nil {
		err := fmt.Errorf("%w: %s", ErrInvalidDetails, describeFields(fields))
		f.fail(FailureValidation, err, fields)
		return f.view(), err
	}

	// 2. Повторная проверка слота на свежих правилах и бронированиях
	candidate := f.slot.Candidate()
	if err := f.recheck(ctx, candidate); err != nil {
		f.fail(failureKindOf(err), err, nil)
		return f.view(), err
	}

	// 3. Черновик с новым ID на каждую попытку
	draft := &domain.BookingDraft{
		BookingID:   uuid.New(),
		HostID:      f.hostID,
		MeetingType: f.meetingType,
		Slot:        candidate,
		Guest: domain.GuestDetails{
			Name:  f.form.Name,
			Email: f.form.Email,
			Phone: f.form.Phone,
		},
		Answers: buildAnswers(f.form, f.meetingType),
		Notes:   f.form.Notes,
	}

	// 4. Ссылка на конференцию только для видеоплатформ, ошибка провайдера не блокирует бронирование
	if f.meetingType.Platform.NeedsMeetingLink() {
		title := fmt.Sprintf("%s with %s", f.meetingType.Name, draft.Guest.Name)
		link, err := f.deps.scheduling.CreateMeetingLink(ctx, f.meetingType.Platform, title, candidate.Start, candidate.DurationMinutes)
		if err != nil {
			f.deps.logger.Warn("BookingFlow: meeting link for booking=%s not created: %v", draft.BookingID, err)
		}
		draft.MeetingLink = link
	}

	// 5. Фиксация
	booking, err := f.deps.scheduling.CreateBooking(ctx, f.hostID, draft)
	if err != nil {
		f.revokeLink(ctx, draft)
		f.fail(failureKindOf(err), err, nil)
		return f.view(), err
	}

	f.deps.logger.Info("BookingFlow: booking=%s confirmed for host=%d", booking.ID, f.hostID)
	f.booking = booking
	f.step = StepConfirmed

	return f.view(), nil
}

// revokeLink отзывает ссылку незафиксированного бронирования, чтобы у хоста не осталось пустой встречи
func (f *Flow) revokeLink(ctx context.Context, draft *domain.BookingDraft) {
	if draft.MeetingLink == nil {
		return
	}
	// Отмена запроса не должна оставлять событие в календаре
	ctx = context.WithoutCancel(ctx)
	if err := f.deps.scheduling.RevokeMeetingLink(ctx, f.meetingType.Platform, *draft.MeetingLink); err != nil {
		f.deps.logger.Warn("BookingFlow: meeting link for booking=%s not revoked: %v", draft.BookingID, err)
	}
}

// recheck повторяет оценку слота перед фиксацией.
// Отказ из-за бронирований считается конфликтом, остальные отказы - недопустимостью
func (f *Flow) recheck(ctx context.Context, candidate domain.Candidate) error {
	rules, err := f.deps.scheduling.GetActiveRules(ctx, f.hostID)
	if err != nil {
		return err
	}

	from, to := availability.CandidateWindow(candidate)
	bookings, err := f.deps.scheduling.GetBookings(ctx, f.hostID, from, to)
	if err != nil {
		return err
	}

	reason := f.deps.evaluator.Evaluate(candidate, f.meetingType, rules, bookings)
	if reason == availability.ReasonAdmissible {
		return nil
	}

	if f.deps.evaluator.Evaluate(candidate, f.meetingType, rules, nil) == availability.ReasonAdmissible {
		return fmt.Errorf("%w: slot %s was taken, reason=%s", domain.ErrConflict, f.slot.Label, reason)
	}
	return fmt.Errorf("%w: slot %s, reason=%s", domain.ErrAdmissibility, f.slot.Label, reason)
}

// Back возвращает сценарий на шаг назад.
// После недопустимости или конфликта слот сбрасывается и дату нужно выбрать заново
func (f *Flow) Back() (View, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.step {
	case StepEnteringDetails:
		f.slot = nil
		f.step = StepSelectingDateTime

	case StepFailed:
		if f.failure != nil && f.failure.Kind.Recoverable() {
			f.failure = nil
			f.step = StepEnteringDetails
			break
		}
		// Слоты устарели: список перестраивается повторным SelectDate
		f.failure = nil
		f.slot = nil
		f.slots = nil
		f.noneFound = false
		f.step = StepSelectingDateTime

	default:
		return f.view(), f.illegal("Back")
	}

	return f.view(), nil
}

// Done закрывает подтвержденный сценарий
func (f *Flow) Done() (View, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepConfirmed {
		return f.view(), f.illegal("Done")
	}

	f.step = StepClosed
	return f.view(), nil
}

func (f *Flow) fail(kind FailureKind, err error, fields map[string]string) {
	if kind == FailureCollaborator {
		f.deps.logger.Error("BookingFlow: submit failed for host=%d: %v", f.hostID, err)
	} else {
		f.deps.logger.Warn("BookingFlow: submit rejected for host=%d, kind=%s: %v", f.hostID, kind, err)
	}

	f.failure = &Failure{
		Kind:   kind,
		Reason: failureReason(kind, fields),
		Fields: fields,
	}
	f.step = StepFailed
}

// failureReason сообщение для гостя
func failureReason(kind FailureKind, fields map[string]string) string {
	switch kind {
	case FailureConflict:
		return "This time slot is no longer available. Please choose another time."
	case FailureAdmissibility:
		return "This time slot can no longer be booked. Please choose another time."
	case FailureCollaborator:
		return "We could not complete your booking right now. Please try again."
	default:
		if len(fields) > 0 {
			return "Please correct " + describeFields(fields)
		}
		return "Please check your details and try again."
	}
}

func (f *Flow) illegal(event string) error {
	return fmt.Errorf("%w: %s in step %s", ErrIllegalTransition, event, f.step)
}

// meetingTypeRef ссылка на тип встречи сценария для запросов слотов
func (f *Flow) meetingTypeRef() domain.MeetingTypeRef {
	if f.meetingType.IsAdHoc() {
		return domain.MeetingTypeRef{
			CustomDurationMinutes: f.meetingType.DurationMinutes,
			CustomPlatform:        f.meetingType.Platform,
		}
	}
	return domain.MeetingTypeRef{ID: f.meetingType.ID}
}

// IsIllegalTransition returns true if err was caused by an event not allowed in the current step
func IsIllegalTransition(err error) bool {
	return errors.Is(err, ErrIllegalTransition)
}
