package availability

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// ZeroAvailabilityPolicy поведение при отсутствии активных правил доступности
type ZeroAvailabilityPolicy string

const (
	ZeroAvailabilityAdmit ZeroAvailabilityPolicy = "admit"
	ZeroAvailabilityDeny  ZeroAvailabilityPolicy = "deny"
)

// Reason измерение, по которому слот отклонен
type Reason string

const (
	ReasonAdmissible   Reason = ""
	ReasonAvailability Reason = "availability"
	ReasonBuffer       Reason = "buffer"
	ReasonRestriction  Reason = "restriction"
	ReasonConflict     Reason = "conflict"
	ReasonNotice       Reason = "notice"
	ReasonHorizon      Reason = "horizon"
)

// Evaluator проверяет кандидата по набору правил хоста и существующим бронированиям.
// Методы не выполняют ввод-вывод и не паникуют на некорректных правилах:
// такие правила просто не участвуют в проверке
type Evaluator struct {
	policy       ZeroAvailabilityPolicy
	timeProvider TimeProvider
}

// NewEvaluator создает новый экземпляр Evaluator
func NewEvaluator(policy ZeroAvailabilityPolicy, timeProvider TimeProvider) *Evaluator {
	if policy != ZeroAvailabilityDeny {
		policy = ZeroAvailabilityAdmit
	}
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &Evaluator{
		policy:       policy,
		timeProvider: timeProvider,
	}
}

// Now возвращает текущее время провайдера
func (e *Evaluator) Now() time.Time {
	return e.timeProvider.Now()
}

// IsAdmissible возвращает true, если кандидат проходит все активные правила и не конфликтует с бронированиями
func (e *Evaluator) IsAdmissible(
	candidate domain.Candidate,
	meetingType *domain.MeetingType,
	rules []domain.Rule,
	bookings []domain.Booking,
) bool {
	return e.Evaluate(candidate, meetingType, rules, bookings) == ReasonAdmissible
}

// Evaluate возвращает первое измерение, по которому кандидат отклонен, или ReasonAdmissible
func (e *Evaluator) Evaluate(
	candidate domain.Candidate,
	meetingType *domain.MeetingType,
	rules []domain.Rule,
	bookings []domain.Booking,
) Reason {
	if candidate.DurationMinutes <= 0 {
		return ReasonAvailability
	}

	now := e.timeProvider.Now()

	// Окно бронирования типа встречи
	if meetingType != nil {
		if reason := checkBookingWindow(candidate, meetingType, now); reason != ReasonAdmissible {
			return reason
		}
	}

	if !e.availabilityAdmits(candidate, rules) {
		return ReasonAvailability
	}

	active := domain.ActiveBookings(bookings)

	if !buffersAdmit(candidate, meetingType, rules, active) {
		return ReasonBuffer
	}

	if !restrictionsAdmit(candidate, rules, active, now) {
		return ReasonRestriction
	}

	// Базовая проверка пересечения с отступом типа встречи
	margin := 0
	if meetingType != nil {
		margin = meetingType.ConflictMarginMinutes()
	}
	if HasConflict(candidate, active, margin) {
		return ReasonConflict
	}

	return ReasonAdmissible
}

// checkBookingWindow проверяет минимальное время до встречи и максимальную дальность бронирования
func checkBookingWindow(candidate domain.Candidate, meetingType *domain.MeetingType, now time.Time) Reason {
	earliest := now.Add(time.Duration(meetingType.AdvanceNoticeMinutes) * time.Minute)
	if candidate.Start.Before(earliest) {
		return ReasonNotice
	}

	if meetingType.MaxAdvanceBookingDays > 0 {
		latest := now.AddDate(0, 0, meetingType.MaxAdvanceBookingDays)
		if candidate.Start.After(latest) {
			return ReasonHorizon
		}
	}

	return ReasonAdmissible
}

// availabilityAdmits допускает кандидата, если хотя бы одно правило доступности содержит его целиком
func (e *Evaluator) availabilityAdmits(candidate domain.Candidate, rules []domain.Rule) bool {
	usable := 0
	for i := range rules {
		if !rules[i].Usable() {
			continue
		}
		cond, ok := rules[i].Conditions.(*domain.AvailabilityConditions)
		if !ok {
			continue
		}
		usable++
		if cond.Contains(candidate.Start, candidate.DurationMinutes) {
			return true
		}
	}

	if usable == 0 {
		return e.policy == ZeroAvailabilityAdmit
	}
	return false
}

// buffersAdmit проверяет каждое применимое правило буфера
func buffersAdmit(candidate domain.Candidate, meetingType *domain.MeetingType, rules []domain.Rule, bookings []domain.Booking) bool {
	var meetingTypeID int64
	if meetingType != nil {
		meetingTypeID = meetingType.ID
	}

	for i := range rules {
		if !rules[i].Usable() {
			continue
		}
		cond, ok := rules[i].Conditions.(*domain.BufferConditions)
		if !ok || !cond.AppliesTo(meetingTypeID) {
			continue
		}
		if HasConflict(candidate, bookings, cond.MinBufferMinutes) {
			return false
		}
	}
	return true
}

// restrictionsAdmit проверяет все ограничения.
// Календарный день кандидата берется в его собственной локации
func restrictionsAdmit(candidate domain.Candidate, rules []domain.Rule, bookings []domain.Booking, now time.Time) bool {
	loc := candidate.Start.Location()
	day := domain.CivilDateOf(candidate.Start)

	for i := range rules {
		if !rules[i].Usable() {
			continue
		}

		switch cond := rules[i].Conditions.(type) {
		case *domain.DateRangeBlock:
			if day.Within(cond.From, cond.To) {
				return false
			}

		case *domain.DailyLimit:
			if countBookingsOnDay(bookings, day, loc) >= cond.MaxBookingsPerDay {
				return false
			}

		case *domain.AdvanceNoticeRestriction:
			if candidate.Start.Sub(now) < time.Duration(cond.Hours)*time.Hour {
				return false
			}

		case *domain.SameDayRestriction:
			if cond.Disallow && day == domain.CivilDateOf(now.In(loc)) {
				return false
			}
		}
	}
	return true
}

// countBookingsOnDay подсчитывает бронирования, начинающиеся в указанный календарный день
func countBookingsOnDay(bookings []domain.Booking, day domain.CivilDate, loc *time.Location) int {
	count := 0
	for i := range bookings {
		if domain.CivilDateOf(bookings[i].StartTime.In(loc)) == day {
			count++
		}
	}
	return count
}
