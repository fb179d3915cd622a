package get_available_slots

import "github.com/m04kA/SMC-SchedulingService/internal/domain"

// Request модель запроса на получение слотов дня
type Request struct {
	HostID             int64                 // ID хоста
	MeetingType        domain.MeetingTypeRef // Сохраненный или произвольный тип встречи
	Date               domain.CivilDate      // Дата в часовом поясе хоста
	GranularityMinutes int                   // Шаг генерации, 0 - значение по умолчанию
}

// Response модель ответа со слотами дня
type Response struct {
	Date           domain.CivilDate
	MeetingType    *domain.MeetingType
	Slots          []domain.CandidateSlot // Все слоты окна, включая недоступные
	AvailableCount int
}
