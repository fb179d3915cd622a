package linkservice

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type logMock struct{}

func (l *logMock) Info(format string, v ...interface{})  {}
func (l *logMock) Error(format string, v ...interface{}) {}

func TestCreateMeetingLink(t *testing.T) {
	var got createLinkRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/meeting-links", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"url":"https://zoom.us/j/123"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "zoom", time.Second, &logMock{})
	start := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

	link, err := c.CreateMeetingLink(context.Background(), "Intro", start, 45)
	require.NoError(t, err)
	assert.Equal(t, "https://zoom.us/j/123", link)
	assert.Equal(t, createLinkRequest{Platform: "zoom", Title: "Intro", StartTime: start, DurationMinutes: 45}, got)
}

func TestCreateMeetingLink_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"unsupported platform", http.StatusUnprocessableEntity, `{}`, ErrUnsupportedPlatform},
		{"server error", http.StatusBadGateway, `upstream down`, ErrInvalidResponse},
		{"empty url", http.StatusOK, `{"url":""}`, ErrInvalidResponse},
		{"broken json", http.StatusOK, `{"url":`, ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			c := NewClient(srv.URL, "teams", time.Second, &logMock{})
			_, err := c.CreateMeetingLink(context.Background(), "Intro", time.Now(), 30)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateMeetingLink_Unreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "zoom", 100*time.Millisecond, &logMock{})
	_, err := c.CreateMeetingLink(context.Background(), "Intro", time.Now(), 30)
	assert.ErrorIs(t, err, ErrInternal)
}
