package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "обычное время", input: "09:00", want: "09:00"},
		{name: "час без ведущего нуля", input: "9:30", want: "09:30"},
		{name: "конец суток", input: "24:00", want: "24:00"},
		{name: "мусор", input: "nine", wantErr: true},
		{name: "минуты вне диапазона", input: "10:75", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("16:30").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("17:00"), got)

	got, err = TimeString("23:30").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), got)

	_, err = TimeString("23:45").AddMinutes(30)
	require.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:15"))
	assert.False(t, TimeString("09:15").IsBefore("09:15"))
	assert.True(t, TimeString("24:00").IsAfter("23:59"))
}

func TestTimeString_On(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	date := time.Date(2026, time.October, 19, 15, 42, 0, 0, loc)
	got, err := TimeString("09:45").On(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.October, 19, 9, 45, 0, 0, loc), got)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan("17:00:00"))
	assert.Equal(t, TimeString("17:00"), ts)

	require.NoError(t, ts.Scan([]byte("08:15:00")))
	assert.Equal(t, TimeString("08:15"), ts)

	require.Error(t, ts.Scan(42))
}
