package rules

import (
	"encoding/json"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

var (
	// ErrUnknownRuleType возвращается для неизвестного типа правила
	ErrUnknownRuleType = fmt.Errorf("%w: unknown rule type", domain.ErrConfiguration)

	// ErrUnknownRestriction возвращается для неизвестного вида ограничения
	ErrUnknownRestriction = fmt.Errorf("%w: unknown restriction type", domain.ErrConfiguration)

	// ErrMissingField возвращается, когда обязательное поле условий не заполнено
	ErrMissingField = fmt.Errorf("%w: missing condition field", domain.ErrConfiguration)
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Decode преобразует правило из формата хранения в доменное правило.
// Условия проверяются сразу, некорректное правило возвращается с ошибкой
func Decode(raw RawRule) (domain.Rule, error) {
	rule := domain.Rule{
		ID:     raw.ID,
		HostID: raw.HostID,
		Name:   raw.Name,
		Active: raw.Active,
	}

	cond, err := decodeConditions(domain.RuleKind(raw.Type), raw.Conditions)
	if err != nil {
		return rule, err
	}
	if err := cond.Validate(); err != nil {
		return rule, err
	}

	rule.Conditions = cond
	return rule, nil
}

// DecodeJSON декодирует правило, условия которого хранятся в JSON
func DecodeJSON(raw RawRule, conditions []byte) (domain.Rule, error) {
	if len(conditions) > 0 {
		if err := json.Unmarshal(conditions, &raw.Conditions); err != nil {
			return domain.Rule{ID: raw.ID, HostID: raw.HostID, Name: raw.Name, Active: raw.Active},
				fmt.Errorf("%w: conditions json: %v", domain.ErrConfiguration, err)
		}
	}
	return Decode(raw)
}

// Quarantine помечает правило как некорректное, оно перестает участвовать в проверке
func Quarantine(rule domain.Rule, reason error) domain.Rule {
	rule.Conditions = nil
	rule.QuarantineReason = reason.Error()
	return rule
}

// DecodeAll декодирует правила хоста.
// Правило с некорректными условиями не отбрасывается, а помечается как карантинное
// и не участвует в проверке слотов
func DecodeAll(raws []RawRule, logger Logger) []domain.Rule {
	result := make([]domain.Rule, 0, len(raws))
	for _, raw := range raws {
		rule, err := Decode(raw)
		if err != nil {
			rule = Quarantine(rule, err)
			if logger != nil {
				logger.Warn("rules: quarantined rule id=%d host=%d: %v", raw.ID, raw.HostID, err)
			}
		}
		result = append(result, rule)
	}
	return result
}

func decodeConditions(kind domain.RuleKind, raw RawConditions) (domain.Conditions, error) {
	switch kind {
	case domain.RuleKindAvailability:
		return decodeAvailability(raw)
	case domain.RuleKindBuffer:
		return decodeBuffer(raw)
	case domain.RuleKindRestriction:
		return decodeRestriction(raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRuleType, kind)
	}
}

func decodeAvailability(raw RawConditions) (domain.Conditions, error) {
	if len(raw.Days) == 0 {
		return nil, fmt.Errorf("%w: days", ErrMissingField)
	}
	if raw.TimeRange == nil {
		return nil, fmt.Errorf("%w: timeRange", ErrMissingField)
	}

	days, err := domain.ParseWeekdaySet(raw.Days)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfiguration, err)
	}

	start, err := types.NewTimeStringFromString(raw.TimeRange.Start)
	if err != nil {
		return nil, fmt.Errorf("%w: timeRange.start: %v", domain.ErrConfiguration, err)
	}
	end, err := types.NewTimeStringFromString(raw.TimeRange.End)
	if err != nil {
		return nil, fmt.Errorf("%w: timeRange.end: %v", domain.ErrConfiguration, err)
	}

	timezone := raw.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	return domain.NewAvailabilityConditions(days, start, end, timezone)
}

func decodeBuffer(raw RawConditions) (domain.Conditions, error) {
	if raw.MinBuffer == nil {
		return nil, fmt.Errorf("%w: minBuffer", ErrMissingField)
	}

	cond := &domain.BufferConditions{
		MinBufferMinutes: *raw.MinBuffer,
		MeetingTypeIDs:   raw.MeetingTypeIDs,
	}

	// Пустой список применимости означает все типы встреч
	if len(raw.ApplyToMeetingTypes) == 0 {
		cond.AllMeetingTypes = true
	}
	for _, v := range raw.ApplyToMeetingTypes {
		if v == applyToAll {
			cond.AllMeetingTypes = true
		}
	}

	return cond, nil
}

func decodeRestriction(raw RawConditions) (domain.Conditions, error) {
	switch domain.RestrictionKind(raw.RestrictionType) {
	case domain.RestrictionDateRange:
		from, err := domain.ParseCivilDate(raw.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: startDate: %v", domain.ErrConfiguration, err)
		}
		to := from
		if raw.EndDate != "" {
			if to, err = domain.ParseCivilDate(raw.EndDate); err != nil {
				return nil, fmt.Errorf("%w: endDate: %v", domain.ErrConfiguration, err)
			}
		}
		return &domain.DateRangeBlock{From: from, To: to}, nil

	case domain.RestrictionDailyLimit:
		if raw.MaxBookingsPerDay == nil {
			return nil, fmt.Errorf("%w: maxBookingsPerDay", ErrMissingField)
		}
		return &domain.DailyLimit{MaxBookingsPerDay: *raw.MaxBookingsPerDay}, nil

	case domain.RestrictionAdvanceNotice:
		if raw.MinAdvanceNotice == nil {
			return nil, fmt.Errorf("%w: minAdvanceNotice", ErrMissingField)
		}
		return &domain.AdvanceNoticeRestriction{Hours: *raw.MinAdvanceNotice}, nil

	case domain.RestrictionSameDay:
		// Правило same-day без явного флага запрещает бронирование на сегодня
		disallow := true
		if raw.DisallowSameDay != nil {
			disallow = *raw.DisallowSameDay
		}
		return &domain.SameDayRestriction{Disallow: disallow}, nil

	case "":
		return nil, fmt.Errorf("%w: restrictionType", ErrMissingField)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRestriction, raw.RestrictionType)
	}
}
