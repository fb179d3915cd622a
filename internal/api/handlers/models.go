package handlers

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// SlotResponse модель слота
type SlotResponse struct {
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Label           string    `json:"label"`
	Available       bool      `json:"available"`
}

// FromDomainSlot конвертирует слот в response
func FromDomainSlot(s domain.CandidateSlot) SlotResponse {
	return SlotResponse{
		StartTime:       s.Start,
		EndTime:         s.End(),
		DurationMinutes: s.DurationMinutes,
		Label:           s.Label,
		Available:       s.Available,
	}
}

// FromDomainSlots конвертирует список слотов, nil превращается в пустой массив
func FromDomainSlots(slots []domain.CandidateSlot) []SlotResponse {
	out := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, FromDomainSlot(s))
	}
	return out
}

// QuestionResponse модель вопроса типа встречи
type QuestionResponse struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Required   bool   `json:"required"`
	AnswerKind string `json:"answerKind"`
}

// MeetingTypeResponse модель типа встречи
type MeetingTypeResponse struct {
	ID                    *int64             `json:"id"`
	Name                  string             `json:"name"`
	Description           string             `json:"description,omitempty"`
	DurationMinutes       int                `json:"durationMinutes"`
	Platform              string             `json:"platform"`
	MaxAdvanceBookingDays int                `json:"maxAdvanceBookingDays"`
	Questions             []QuestionResponse `json:"questions"`
}

// FromDomainMeetingType конвертирует тип встречи в response, для произвольной встречи id = null
func FromDomainMeetingType(mt *domain.MeetingType) *MeetingTypeResponse {
	if mt == nil {
		return nil
	}

	questions := make([]QuestionResponse, 0, len(mt.Questions))
	for _, q := range mt.Questions {
		questions = append(questions, QuestionResponse{
			ID:         q.ID,
			Text:       q.Text,
			Required:   q.Required,
			AnswerKind: string(q.AnswerKind),
		})
	}

	resp := &MeetingTypeResponse{
		Name:                  mt.Name,
		Description:           mt.Description,
		DurationMinutes:       mt.DurationMinutes,
		Platform:              string(mt.Platform),
		MaxAdvanceBookingDays: mt.MaxAdvanceBookingDays,
		Questions:             questions,
	}
	if !mt.IsAdHoc() {
		id := mt.ID
		resp.ID = &id
	}
	return resp
}
