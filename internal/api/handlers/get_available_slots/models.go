package get_available_slots

import (
	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date           string                        `json:"date"`
	HostID         int64                         `json:"hostId"`
	MeetingType    *handlers.MeetingTypeResponse `json:"meetingType"`
	Slots          []handlers.SlotResponse       `json:"slots"`
	AvailableCount int                           `json:"availableCount"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(hostID int64, resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	return &AvailableSlotsResponse{
		Date:           resp.Date.String(),
		HostID:         hostID,
		MeetingType:    handlers.FromDomainMeetingType(resp.MeetingType),
		Slots:          handlers.FromDomainSlots(resp.Slots),
		AvailableCount: resp.AvailableCount,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(hostID int64, ref domain.MeetingTypeRef, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := domain.ParseCivilDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		HostID:      hostID,
		MeetingType: ref,
		Date:        date,
	}, nil
}
