package find_next_available

import "github.com/m04kA/SMC-SchedulingService/internal/domain"

// Request модель запроса на поиск ближайшего свободного слота
type Request struct {
	HostID      int64                 // ID хоста
	MeetingType domain.MeetingTypeRef // Сохраненный или произвольный тип встречи
	From        domain.CivilDate      // Первый просматриваемый день, нулевое значение - сегодня
	Days        domain.WeekdaySet     // Допустимые дни недели, пустое множество - любые
	Time        domain.TimeFilter     // Фильтр времени суток
	HorizonDays int                   // Количество просматриваемых дней, 0 - значение по умолчанию
}

// Response модель ответа поиска.
// Found=false - явное пустое состояние, Slot в этом случае нулевой
type Response struct {
	MeetingType *domain.MeetingType
	Slot        domain.CandidateSlot
	Found       bool
}
