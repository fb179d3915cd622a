package availability

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Conflicts проверяет пару встреч на конфликт с учетом буфера.
// Встречи конфликтуют, если |a.start - b.start| < minBuffer + max(a.duration, b.duration).
// Формула симметрична и намеренно не заменяется точным пересечением интервалов
func Conflicts(a, b domain.Candidate, minBufferMinutes int) bool {
	diff := a.Start.Sub(b.Start)
	if diff < 0 {
		diff = -diff
	}
	margin := time.Duration(minBufferMinutes+max(a.DurationMinutes, b.DurationMinutes)) * time.Minute
	return diff < margin
}

// HasConflict возвращает true, если кандидат конфликтует хотя бы с одним активным бронированием
func HasConflict(candidate domain.Candidate, bookings []domain.Booking, minBufferMinutes int) bool {
	for i := range bookings {
		if !bookings[i].IsActive() {
			continue
		}
		if Conflicts(candidate, bookings[i].Candidate(), minBufferMinutes) {
			return true
		}
	}
	return false
}
