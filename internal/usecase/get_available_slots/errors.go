package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("get_available_slots: invalid input data: %w", domain.ErrValidation)

	// ErrDateInPast возвращается, когда дата раньше сегодняшней
	ErrDateInPast = fmt.Errorf("get_available_slots: date is in the past: %w", domain.ErrValidation)

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение maxAdvanceBookingDays
	ErrDateTooFarInFuture = fmt.Errorf("get_available_slots: date is too far in the future: %w", domain.ErrValidation)
)
