package find_next_available

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// ErrInvalidInput возвращается при некорректных входных данных
var ErrInvalidInput = fmt.Errorf("find_next_available: invalid input data: %w", domain.ErrValidation)
