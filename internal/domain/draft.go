package domain

import "github.com/google/uuid"

// GuestDetails контактные данные гостя
type GuestDetails struct {
	Name  string
	Email string
	Phone string
}

// BookingDraft незафиксированное бронирование, собранное за время сценария
type BookingDraft struct {
	BookingID   uuid.UUID
	HostID      int64
	MeetingType *MeetingType
	Slot        Candidate
	Guest       GuestDetails
	Answers     []QuestionAnswer
	Notes       string
	MeetingLink *string
}

// ToBooking builds the booking that a successful commit persists
func (d *BookingDraft) ToBooking() *Booking {
	b := &Booking{
		ID:              d.BookingID,
		HostID:          d.HostID,
		MeetingName:     d.MeetingType.Name,
		GuestName:       d.Guest.Name,
		GuestEmail:      d.Guest.Email,
		StartTime:       d.Slot.Start,
		DurationMinutes: d.Slot.DurationMinutes,
		Status:          StatusConfirmed,
		Platform:        d.MeetingType.Platform,
		MeetingLink:     d.MeetingLink,
		Answers:         d.Answers,
	}
	if !d.MeetingType.IsAdHoc() {
		id := d.MeetingType.ID
		b.MeetingTypeID = &id
	}
	if d.Guest.Phone != "" {
		phone := d.Guest.Phone
		b.GuestPhone = &phone
	}
	if d.Notes != "" {
		notes := d.Notes
		b.Notes = &notes
	}
	return b
}
