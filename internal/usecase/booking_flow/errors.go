package booking_flow

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrIllegalTransition возвращается, когда событие недопустимо в текущем шаге.
	// Состояние сценария при этом не меняется
	ErrIllegalTransition = errors.New("booking_flow: illegal transition")

	// ErrSlotNotOffered возвращается при выборе слота, которого нет среди доступных слотов даты
	ErrSlotNotOffered = fmt.Errorf("booking_flow: slot is not offered: %w", domain.ErrValidation)

	// ErrInvalidDetails возвращается при некорректных данных гостя
	ErrInvalidDetails = fmt.Errorf("booking_flow: invalid guest details: %w", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных параметрах запуска сценария
	ErrInvalidInput = fmt.Errorf("booking_flow: invalid input data: %w", domain.ErrValidation)
)
