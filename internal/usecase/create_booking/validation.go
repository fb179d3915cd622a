package create_booking

import (
	"fmt"

	"github.com/google/uuid"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil || req.Draft == nil {
		return fmt.Errorf("%w: draft is required", ErrInvalidInput)
	}

	if req.HostID <= 0 {
		return fmt.Errorf("%w: hostID must be positive", ErrInvalidInput)
	}

	draft := req.Draft
	if draft.HostID != req.HostID {
		return fmt.Errorf("%w: draft belongs to host %d", ErrInvalidInput, draft.HostID)
	}

	if draft.MeetingType == nil {
		return fmt.Errorf("%w: meeting type is required", ErrInvalidInput)
	}

	if draft.BookingID == uuid.Nil {
		return fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}

	// Проверяем, что слот выбран
	if draft.Slot.Start.IsZero() || draft.Slot.DurationMinutes <= 0 {
		return fmt.Errorf("%w: slot is required", ErrInvalidInput)
	}

	if draft.Guest.Name == "" || draft.Guest.Email == "" {
		return fmt.Errorf("%w: guest name and email are required", ErrInvalidInput)
	}

	return nil
}
