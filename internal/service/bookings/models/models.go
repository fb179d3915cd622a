package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// AnswerResponse ответ гостя на вопрос
type AnswerResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              string           `json:"id"`
	HostID          int64            `json:"hostId"`
	MeetingTypeID   *int64           `json:"meetingTypeId"`
	MeetingName     string           `json:"meetingName"`
	GuestName       string           `json:"guestName"`
	GuestEmail      string           `json:"guestEmail"`
	GuestPhone      *string          `json:"guestPhone,omitempty"`
	StartTime       time.Time        `json:"startTime"`
	EndTime         time.Time        `json:"endTime"`
	DurationMinutes int              `json:"durationMinutes"`
	Status          string           `json:"status"`
	Platform        string           `json:"platform"`
	MeetingLink     *string          `json:"meetingLink"`
	Notes           *string          `json:"notes,omitempty"`
	Answers         []AnswerResponse `json:"answers"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// FromDomainBooking конвертирует domain модель в response
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	answers := make([]AnswerResponse, 0, len(b.Answers))
	for _, a := range b.Answers {
		answers = append(answers, AnswerResponse{Question: a.Question, Answer: a.Answer})
	}

	return &BookingResponse{
		ID:              b.ID.String(),
		HostID:          b.HostID,
		MeetingTypeID:   b.MeetingTypeID,
		MeetingName:     b.MeetingName,
		GuestName:       b.GuestName,
		GuestEmail:      b.GuestEmail,
		GuestPhone:      b.GuestPhone,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime(),
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		Platform:        string(b.Platform),
		MeetingLink:     b.MeetingLink,
		Notes:           b.Notes,
		Answers:         answers,
		CreatedAt:       b.CreatedAt,
	}
}
