package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_booking: invalid input data: %w", domain.ErrValidation)

	// ErrSlotNotAdmissible возвращается, когда слот перестал проходить правила хоста
	ErrSlotNotAdmissible = fmt.Errorf("create_booking: %w", domain.ErrAdmissibility)

	// ErrSlotConflict возвращается, когда слот занят бронированием, зафиксированным раньше
	ErrSlotConflict = fmt.Errorf("create_booking: %w", domain.ErrConflict)

	// ErrAlreadyCommitted возвращается при повторной фиксации того же черновика
	ErrAlreadyCommitted = fmt.Errorf("create_booking: booking already committed: %w", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("create_booking: internal error: %w", domain.ErrCollaborator)
)
