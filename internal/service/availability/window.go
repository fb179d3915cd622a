package availability

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// DayWindow возвращает интервал бронирований, влияющих на слоты календарного дня:
// сам день и по одному соседнему дню с каждой стороны
func DayWindow(date domain.CivilDate, loc *time.Location) (from, to time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	return date.AddDays(-1).In(loc), date.AddDays(2).In(loc)
}

// CandidateWindow возвращает DayWindow для календарного дня кандидата в его собственной локации
func CandidateWindow(candidate domain.Candidate) (from, to time.Time) {
	return DayWindow(domain.CivilDateOf(candidate.Start), candidate.Start.Location())
}
