package booking_flow

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	bookingFlow "github.com/m04kA/SMC-SchedulingService/internal/usecase/booking_flow"
)

// CustomMeetingRequest параметры произвольной встречи
type CustomMeetingRequest struct {
	DurationMinutes int    `json:"durationMinutes"`
	Platform        string `json:"platform"`
}

// NextAvailableRequest параметры режима ближайшего слота
type NextAvailableRequest struct {
	Days []string `json:"days"`
	Time string   `json:"time"`
}

// StartFlowRequest HTTP request model для запуска сценария
type StartFlowRequest struct {
	MeetingTypeID *int64                `json:"meetingTypeId"`
	Custom        *CustomMeetingRequest `json:"custom"`
	NextAvailable *NextAvailableRequest `json:"nextAvailable"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *StartFlowRequest) ToUseCaseRequest(hostID int64) (*bookingFlow.StartRequest, error) {
	req := &bookingFlow.StartRequest{HostID: hostID}

	switch {
	case r.MeetingTypeID != nil && r.Custom != nil:
		return nil, fmt.Errorf("%w: meetingTypeId and custom are mutually exclusive", domain.ErrValidation)
	case r.MeetingTypeID != nil:
		if *r.MeetingTypeID <= 0 {
			return nil, fmt.Errorf("%w: meetingTypeId must be positive", domain.ErrValidation)
		}
		req.MeetingType = domain.MeetingTypeRef{ID: *r.MeetingTypeID}
	case r.Custom != nil:
		platform, err := domain.ParsePlatform(r.Custom.Platform)
		if err != nil {
			return nil, err
		}
		req.MeetingType = domain.MeetingTypeRef{
			CustomDurationMinutes: r.Custom.DurationMinutes,
			CustomPlatform:        platform,
		}
	default:
		return nil, fmt.Errorf("%w: meetingTypeId or custom is required", domain.ErrValidation)
	}

	if r.NextAvailable != nil {
		days, err := domain.ParseWeekdaySet(r.NextAvailable.Days)
		if err != nil {
			return nil, err
		}
		filter, err := domain.ParseTimeFilter(r.NextAvailable.Time)
		if err != nil {
			return nil, err
		}
		req.NextAvailable = &bookingFlow.NextAvailableMode{Days: days, Time: filter}
	}

	return req, nil
}

// SelectDateRequest выбор даты
type SelectDateRequest struct {
	Date string `json:"date"`
}

// SelectSlotRequest выбор слота по времени начала (RFC3339)
type SelectSlotRequest struct {
	StartTime time.Time `json:"startTime"`
}

// DetailsRequest данные гостя
type DetailsRequest struct {
	Name    string            `json:"name"`
	Email   string            `json:"email"`
	Phone   string            `json:"phone"`
	Answers map[string]string `json:"answers"`
	Notes   string            `json:"notes"`
}

// ToDetailsForm конвертирует HTTP запрос в форму use case
func (r *DetailsRequest) ToDetailsForm() bookingFlow.DetailsForm {
	return bookingFlow.DetailsForm{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Answers: r.Answers,
		Notes:   r.Notes,
	}
}

// FailureResponse причина ошибки сценария
type FailureResponse struct {
	Kind   string            `json:"kind"`
	Reason string            `json:"reason"`
	Fields map[string]string `json:"fields,omitempty"`
}

// NextAvailableResponse режим ближайшего слота
type NextAvailableResponse struct {
	Days []string `json:"days"`
	Time string   `json:"time"`
}

// FormResponse введенные гостем данные
type FormResponse struct {
	Name    string            `json:"name"`
	Email   string            `json:"email"`
	Phone   string            `json:"phone,omitempty"`
	Answers map[string]string `json:"answers,omitempty"`
	Notes   string            `json:"notes,omitempty"`
}

// FlowResponse HTTP response model состояния сценария
type FlowResponse struct {
	FlowID         string                        `json:"flowId"`
	Step           string                        `json:"step"`
	HostID         int64                         `json:"hostId"`
	MeetingType    *handlers.MeetingTypeResponse `json:"meetingType"`
	NextAvailable  *NextAvailableResponse        `json:"nextAvailable,omitempty"`
	Date           *string                       `json:"date"`
	Slots          []handlers.SlotResponse       `json:"slots"`
	AvailableCount int                           `json:"availableCount"`
	NoneFound      bool                          `json:"noneFound"`
	SelectedSlot   *handlers.SlotResponse        `json:"selectedSlot"`
	Form           *FormResponse                 `json:"form,omitempty"`
	Failure        *FailureResponse              `json:"failure"`
	Booking        *models.BookingResponse       `json:"booking"`
	InviteURL      string                        `json:"inviteUrl,omitempty"`
}

// FlowErrorResponse ошибка события вместе с текущим состоянием сценария
type FlowErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
	Flow   *FlowResponse     `json:"flow,omitempty"`
}

// FromView конвертирует снимок сценария в HTTP response
func FromView(id uuid.UUID, v bookingFlow.View) *FlowResponse {
	resp := &FlowResponse{
		FlowID:         id.String(),
		Step:           string(v.Step),
		HostID:         v.HostID,
		MeetingType:    handlers.FromDomainMeetingType(v.MeetingType),
		Slots:          handlers.FromDomainSlots(v.Slots),
		AvailableCount: v.AvailableCount,
		NoneFound:      v.NoneFound,
	}

	if v.NextAvailable != nil {
		resp.NextAvailable = &NextAvailableResponse{
			Days: v.NextAvailable.Days.Names(),
			Time: string(v.NextAvailable.Time),
		}
	}
	if !v.Date.IsZero() {
		date := v.Date.String()
		resp.Date = &date
	}
	if v.SelectedSlot != nil {
		slot := handlers.FromDomainSlot(*v.SelectedSlot)
		resp.SelectedSlot = &slot
	}
	if v.Form.Name != "" || v.Form.Email != "" {
		resp.Form = &FormResponse{
			Name:    v.Form.Name,
			Email:   v.Form.Email,
			Phone:   v.Form.Phone,
			Answers: v.Form.Answers,
			Notes:   v.Form.Notes,
		}
	}
	if v.Failure != nil {
		resp.Failure = &FailureResponse{
			Kind:   string(v.Failure.Kind),
			Reason: v.Failure.Reason,
			Fields: v.Failure.Fields,
		}
	}
	if v.Booking != nil {
		resp.Booking = models.FromDomainBooking(v.Booking)
		resp.InviteURL = "/api/v1/bookings/" + v.Booking.ID.String() + "/calendar.ics"
	}

	return resp
}
