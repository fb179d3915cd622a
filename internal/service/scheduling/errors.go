package scheduling

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrMeetingTypeNotFound возвращается, когда тип встречи не найден или выключен
	ErrMeetingTypeNotFound = fmt.Errorf("scheduling: meeting type %w", domain.ErrNotFound)

	// ErrInvalidMeetingType возвращается, когда сохраненный тип встречи нарушает инварианты
	ErrInvalidMeetingType = fmt.Errorf("scheduling: invalid meeting type: %w", domain.ErrConfiguration)

	// ErrStorage возвращается при ошибке чтения хранилища
	ErrStorage = fmt.Errorf("scheduling: storage error: %w", domain.ErrCollaborator)

	// ErrMeetingLink возвращается, когда провайдер не смог создать ссылку
	ErrMeetingLink = fmt.Errorf("scheduling: meeting link error: %w", domain.ErrCollaborator)
)
