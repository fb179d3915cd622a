package get_booking_calendar

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
)

type serviceMock struct {
	invite []byte
	err    error
}

func (m *serviceMock) CalendarInvite(ctx context.Context, id uuid.UUID) ([]byte, error) {
	return m.invite, m.err
}

type logMock struct{}

func (l *logMock) Info(format string, v ...interface{})  {}
func (l *logMock) Warn(format string, v ...interface{})  {}
func (l *logMock) Error(format string, v ...interface{}) {}

func newRequest(id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+id+"/calendar.ics", nil)
	return mux.SetURLVars(req, map[string]string{"bookingId": id})
}

func TestHandler_OK(t *testing.T) {
	id := uuid.New()
	invite := []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n")

	rec := httptest.NewRecorder()
	NewHandler(&serviceMock{invite: invite}, &logMock{}).Handle(rec, newRequest(id.String()))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/calendar; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), id.String())
	assert.Equal(t, invite, rec.Body.Bytes())
}

func TestHandler_Errors(t *testing.T) {
	id := uuid.New().String()

	tests := []struct {
		name   string
		id     string
		err    error
		status int
	}{
		{name: "invalid id", id: "nope", status: http.StatusBadRequest},
		{name: "not found", id: id, err: bookings.ErrBookingNotFound, status: http.StatusNotFound},
		{name: "cancelled", id: id, err: bookings.ErrBookingCancelled, status: http.StatusGone},
		{name: "internal", id: id, err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(&serviceMock{err: tt.err}, &logMock{}).Handle(rec, newRequest(tt.id))

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
