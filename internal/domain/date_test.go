package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCivilDate(t *testing.T) {
	d, err := ParseCivilDate("2024-02-28")
	require.NoError(t, err)

	assert.Equal(t, "2024-02-29", d.AddDays(1).String())
	assert.Equal(t, "2024-03-01", d.AddDays(2).String())
	assert.Equal(t, time.Wednesday, d.Weekday())

	from, _ := ParseCivilDate("2024-02-27")
	to, _ := ParseCivilDate("2024-02-29")
	assert.True(t, d.Within(from, to))
	assert.True(t, from.Within(from, to))
	assert.False(t, d.AddDays(2).Within(from, to))

	_, err = ParseCivilDate("28.02.2024")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCivilDateOf_UsesLocation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	instant := time.Date(2024, 6, 3, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-06-03", CivilDateOf(instant).String())
	assert.Equal(t, "2024-06-04", CivilDateOf(instant.In(tokyo)).String())
}

func TestTimeFilter(t *testing.T) {
	f, err := ParseTimeFilter("")
	require.NoError(t, err)
	assert.Equal(t, TimeFilterAny, f)

	_, err = ParseTimeFilter("evening")
	assert.ErrorIs(t, err, ErrValidation)

	noon := time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)
	assert.False(t, TimeFilterMorning.Matches(noon))
	assert.True(t, TimeFilterAfternoon.Matches(noon))
	assert.True(t, TimeFilterMorning.Matches(noon.Add(-time.Minute)))
	assert.True(t, TimeFilterAny.Matches(noon))
}
