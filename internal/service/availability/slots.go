package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Config параметры генерации слотов
type Config struct {
	EnvelopeStart      types.TimeString
	EnvelopeEnd        types.TimeString
	GranularityMinutes int
	HorizonDays        int
	// Location часовой пояс хоста, в котором строятся даты и окно поиска
	Location *time.Location
}

// DefaultConfig возвращает конфигурацию по умолчанию (09:00-17:00, шаг 15 минут, UTC)
func DefaultConfig() Config {
	return Config{
		EnvelopeStart:      domain.DefaultEnvelopeStart,
		EnvelopeEnd:        domain.DefaultEnvelopeEnd,
		GranularityMinutes: domain.DefaultGranularityMinutes,
		HorizonDays:        domain.DefaultHorizonDays,
		Location:           time.UTC,
	}
}

// Generator перечисляет слоты дня и ищет ближайший свободный слот
type Generator struct {
	evaluator     *Evaluator
	location      *time.Location
	envelopeStart int
	envelopeEnd   int
	granularity   int
	horizonDays   int
}

// NewGenerator создает генератор слотов
func NewGenerator(cfg Config, evaluator *Evaluator) (*Generator, error) {
	start, err := cfg.EnvelopeStart.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	end, err := cfg.EnvelopeEnd.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	if start >= end {
		return nil, ErrInvalidEnvelope
	}
	if cfg.GranularityMinutes <= 0 {
		return nil, ErrInvalidGranularity
	}
	if cfg.HorizonDays <= 0 || cfg.HorizonDays > domain.MaxHorizonDays {
		return nil, ErrInvalidHorizon
	}

	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}

	return &Generator{
		evaluator:     evaluator,
		location:      loc,
		envelopeStart: start,
		envelopeEnd:   end,
		granularity:   cfg.GranularityMinutes,
		horizonDays:   cfg.HorizonDays,
	}, nil
}

// Evaluator возвращает используемый Evaluator
func (g *Generator) Evaluator() *Evaluator {
	return g.evaluator
}

// Location возвращает часовой пояс хоста
func (g *Generator) Location() *time.Location {
	return g.location
}

// Granularity возвращает шаг генерации по умолчанию
func (g *Generator) Granularity() int {
	return g.granularity
}

// Today возвращает текущий календарный день в часовом поясе хоста
func (g *Generator) Today() domain.CivilDate {
	return domain.CivilDateOf(g.evaluator.Now().In(g.location))
}

// GenerateSlots перечисляет слоты дня с шагом granularityMinutes внутри окна поиска.
// Слот попадает в результат, только если start+duration не выходит за конец окна.
// Недоступные слоты сохраняются с Available=false
func (g *Generator) GenerateSlots(
	date domain.CivilDate,
	meetingType *domain.MeetingType,
	rules []domain.Rule,
	bookings []domain.Booking,
	granularityMinutes int,
) ([]domain.CandidateSlot, error) {
	if meetingType == nil || meetingType.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if granularityMinutes <= 0 {
		return nil, ErrInvalidGranularity
	}

	duration := meetingType.DurationMinutes
	if duration >= g.envelopeEnd-g.envelopeStart {
		return []domain.CandidateSlot{}, nil
	}

	midnight := date.In(g.location)
	slots := make([]domain.CandidateSlot, 0, (g.envelopeEnd-g.envelopeStart)/granularityMinutes+1)

	for startMin := g.envelopeStart; startMin+duration <= g.envelopeEnd; startMin += granularityMinutes {
		start := atMinute(midnight, startMin, g.location)
		candidate := domain.Candidate{Start: start, DurationMinutes: duration}

		slots = append(slots, domain.CandidateSlot{
			Start:           start,
			DurationMinutes: duration,
			Available:       g.evaluator.IsAdmissible(candidate, meetingType, rules, bookings),
			Label:           start.Format(domain.LabelFormat),
		})
	}

	return slots, nil
}

// atMinute возвращает момент minutes минут от начала дня по настенным часам
func atMinute(midnight time.Time, minutes int, loc *time.Location) time.Time {
	return time.Date(midnight.Year(), midnight.Month(), midnight.Day(), minutes/60, minutes%60, 0, 0, loc)
}

// CountAvailable подсчитывает доступные слоты
func CountAvailable(slots []domain.CandidateSlot) int {
	count := 0
	for _, s := range slots {
		if s.Available {
			count++
		}
	}
	return count
}
