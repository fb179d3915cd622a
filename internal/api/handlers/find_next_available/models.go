package find_next_available

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	findNextAvailable "github.com/m04kA/SMC-SchedulingService/internal/usecase/find_next_available"
)

// NextAvailableResponse HTTP response model.
// found=false - явное пустое состояние, slot = null
type NextAvailableResponse struct {
	HostID      int64                         `json:"hostId"`
	MeetingType *handlers.MeetingTypeResponse `json:"meetingType"`
	Found       bool                          `json:"found"`
	Slot        *handlers.SlotResponse        `json:"slot"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(hostID int64, resp *findNextAvailable.Response) *NextAvailableResponse {
	out := &NextAvailableResponse{
		HostID:      hostID,
		MeetingType: handlers.FromDomainMeetingType(resp.MeetingType),
		Found:       resp.Found,
	}
	if resp.Found {
		slot := handlers.FromDomainSlot(resp.Slot)
		out.Slot = &slot
	}
	return out
}

// ToUseCaseRequest создает запрос use case из query параметров:
// from (YYYY-MM-DD), days (monday,friday), time (any|morning|afternoon), horizon (дни)
func ToUseCaseRequest(hostID int64, ref domain.MeetingTypeRef, query url.Values) (*findNextAvailable.Request, error) {
	req := &findNextAvailable.Request{
		HostID:      hostID,
		MeetingType: ref,
	}

	if from := query.Get("from"); from != "" {
		date, err := domain.ParseCivilDate(from)
		if err != nil {
			return nil, err
		}
		req.From = date
	}

	if days := query.Get("days"); days != "" {
		set, err := domain.ParseWeekdaySet(strings.Split(days, ","))
		if err != nil {
			return nil, err
		}
		req.Days = set
	}

	filter, err := domain.ParseTimeFilter(query.Get("time"))
	if err != nil {
		return nil, err
	}
	req.Time = filter

	if horizon := query.Get("horizon"); horizon != "" {
		n, err := strconv.Atoi(horizon)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid horizon %q", domain.ErrValidation, horizon)
		}
		req.HorizonDays = n
	}

	return req, nil
}
