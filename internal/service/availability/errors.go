package availability

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrInvalidDuration возвращается при неположительной длительности встречи
	ErrInvalidDuration = fmt.Errorf("%w: duration must be positive", domain.ErrInvalidInput)

	// ErrInvalidGranularity возвращается при неположительном шаге генерации
	ErrInvalidGranularity = fmt.Errorf("%w: granularity must be positive", domain.ErrInvalidInput)

	// ErrInvalidHorizon возвращается при горизонте поиска вне допустимого диапазона
	ErrInvalidHorizon = fmt.Errorf("%w: horizon must be between 1 and %d days", domain.ErrInvalidInput, domain.MaxHorizonDays)

	// ErrInvalidEnvelope возвращается при некорректных границах окна поиска
	ErrInvalidEnvelope = fmt.Errorf("%w: search envelope start must be before end", domain.ErrConfiguration)
)
