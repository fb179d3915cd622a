package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusPending   BookingStatus = "pending"
	StatusCancelled BookingStatus = "cancelled"
)

// QuestionAnswer ответ гостя на вопрос типа встречи
// Текст вопроса денормализован, чтобы история не зависела от изменения типа встречи
type QuestionAnswer struct {
	QuestionID string `json:"questionId"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
}

// Booking represents a committed meeting with a host
type Booking struct {
	ID              uuid.UUID
	HostID          int64
	MeetingTypeID   *int64 // nil для произвольной встречи
	MeetingName     string
	GuestName       string
	GuestEmail      string
	GuestPhone      *string
	StartTime       time.Time
	DurationMinutes int
	Status          BookingStatus
	Platform        Platform
	MeetingLink     *string
	Notes           *string
	Answers         []QuestionAnswer

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies host time
func (b *Booking) IsActive() bool {
	return b.Status == StatusConfirmed || b.Status == StatusPending
}

// EndTime returns the end of the booking body
func (b *Booking) EndTime() time.Time {
	return b.StartTime.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// ActiveBookings отбрасывает отмененные бронирования
func ActiveBookings(bookings []Booking) []Booking {
	active := make([]Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.IsActive() {
			active = append(active, b)
		}
	}
	return active
}

// Candidate returns the booking as an evaluation candidate
func (b *Booking) Candidate() Candidate {
	return Candidate{Start: b.StartTime, DurationMinutes: b.DurationMinutes}
}
