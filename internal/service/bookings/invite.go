package bookings

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

const inviteProductID = "-//SMC//SchedulingService//EN"

// BuildInvite формирует приглашение iCalendar (METHOD:REQUEST) для бронирования
func BuildInvite(b *domain.Booking, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodRequest)
	cal.SetProductId(inviteProductID)

	event := cal.AddEvent(fmt.Sprintf("%s@smc-scheduling", b.ID))
	event.SetDtStampTime(now.UTC())
	event.SetCreatedTime(b.CreatedAt.UTC())
	event.SetStartAt(b.StartTime.UTC())
	event.SetEndAt(b.EndTime().UTC())
	event.SetSummary(fmt.Sprintf("%s with %s", b.MeetingName, b.GuestName))
	event.SetDescription(inviteDescription(b))
	event.AddAttendee("mailto:" + b.GuestEmail)

	if b.MeetingLink != nil {
		event.SetLocation(*b.MeetingLink)
		event.SetURL(*b.MeetingLink)
	} else if b.Platform == domain.PlatformPhone && b.GuestPhone != nil {
		event.SetLocation("Phone: " + *b.GuestPhone)
	}

	return cal.Serialize()
}

func inviteDescription(b *domain.Booking) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Platform: %s", b.Platform)
	if b.MeetingLink != nil {
		fmt.Fprintf(&sb, "\nJoin: %s", *b.MeetingLink)
	}
	if b.Notes != nil && *b.Notes != "" {
		fmt.Fprintf(&sb, "\nNotes: %s", *b.Notes)
	}
	for _, a := range b.Answers {
		fmt.Fprintf(&sb, "\n%s: %s", a.Question, a.Answer)
	}
	return sb.String()
}
