package get_available_slots

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

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.GranularityMinutes < 0 {
		return fmt.Errorf("%w: granularity must not be negative", ErrInvalidInput)
	}

	return nil
}

// ValidateDate проверяет, что дата лежит в [today, today+maxAdvanceBookingDays]
func ValidateDate(date, today domain.CivilDate, maxAdvanceBookingDays int) error {
	if date.Before(today) {
		return fmt.Errorf("%w: %s", ErrDateInPast, date)
	}

	if maxAdvanceBookingDays > 0 && date.After(today.AddDays(maxAdvanceBookingDays)) {
		return fmt.Errorf("%w: %s is more than %d days ahead", ErrDateTooFarInFuture, date, maxAdvanceBookingDays)
	}

	return nil
}
