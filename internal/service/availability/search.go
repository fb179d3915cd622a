package availability

import (
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// SearchOptions фильтры поиска ближайшего слота
type SearchOptions struct {
	// Days допустимые дни недели, пустое множество - любые дни
	Days domain.WeekdaySet
	// Time фильтр времени суток, пустое значение - любое время
	Time domain.TimeFilter
	// HorizonDays количество просматриваемых дней, 0 - значение из конфигурации
	HorizonDays int
	// GranularityMinutes шаг генерации, 0 - значение из конфигурации
	GranularityMinutes int
}

// FindNext просматривает дни начиная с from (включительно) и возвращает самый ранний доступный слот.
// found=false означает, что горизонт исчерпан и слотов нет
func (g *Generator) FindNext(
	from domain.CivilDate,
	meetingType *domain.MeetingType,
	rules []domain.Rule,
	bookings []domain.Booking,
	opts SearchOptions,
) (domain.CandidateSlot, bool, error) {
	horizon := opts.HorizonDays
	if horizon == 0 {
		horizon = g.horizonDays
	}
	if horizon < 0 || horizon > domain.MaxHorizonDays {
		return domain.CandidateSlot{}, false, ErrInvalidHorizon
	}

	granularity := opts.GranularityMinutes
	if granularity == 0 {
		granularity = g.granularity
	}

	for offset := 0; offset < horizon; offset++ {
		day := from.AddDays(offset)
		if !opts.Days.IsEmpty() && !opts.Days.Has(day.Weekday()) {
			continue
		}

		slots, err := g.GenerateSlots(day, meetingType, rules, bookings, granularity)
		if err != nil {
			return domain.CandidateSlot{}, false, err
		}

		// Слоты дня уже упорядочены по времени начала
		for _, slot := range slots {
			if slot.Available && opts.Time.Matches(slot.Start) {
				return slot, true, nil
			}
		}
	}

	return domain.CandidateSlot{}, false, nil
}
