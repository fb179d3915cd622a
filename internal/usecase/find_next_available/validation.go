package find_next_available

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.HostID <= 0 {
		return fmt.Errorf("%w: hostID must be positive", ErrInvalidInput)
	}

	if req.MeetingType.ID < 0 {
		return fmt.Errorf("%w: meetingTypeID must not be negative", ErrInvalidInput)
	}

	if req.HorizonDays < 0 || req.HorizonDays > domain.MaxHorizonDays {
		return fmt.Errorf("%w: horizon must be between 1 and %d days", ErrInvalidInput, domain.MaxHorizonDays)
	}

	if _, err := domain.ParseTimeFilter(string(req.Time)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return nil
}
