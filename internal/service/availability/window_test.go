package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

func TestDayWindow(t *testing.T) {
	from, to := DayWindow(monday, time.UTC)

	assert.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC), to)
}

func TestCandidateWindow_UsesCandidateLocation(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 23:30 в Нью-Йорке - это уже вторник по UTC
	start := time.Date(2024, 6, 3, 23, 30, 0, 0, ny)
	from, to := CandidateWindow(domain.Candidate{Start: start, DurationMinutes: 30})

	assert.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, ny), from)
	assert.Equal(t, time.Date(2024, 6, 5, 0, 0, 0, 0, ny), to)
	assert.True(t, start.After(from) && start.Before(to))
}
