package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const weekdayScenario = `
now: 2024-06-01T12:00:00Z
timezone: UTC
meeting_type:
  id: 1
  name: Intro call
  duration_minutes: 30
rules:
  - id: 1
    name: Working hours
    type: availability
    active: true
    conditions:
      days: [monday, tuesday, wednesday, thursday, friday]
      timeRange: {start: "09:00", end: "17:00"}
      timezone: UTC
  - id: 2
    name: Broken
    type: restriction
    active: true
    conditions:
      restrictionType: teleport
bookings:
  - start: 2024-06-03T10:00:00Z
    duration_minutes: 60
`

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseScenario_Defaults(t *testing.T) {
	s, err := ParseScenario([]byte(`meeting_type: {duration_minutes: 45}`))
	require.NoError(t, err)

	assert.Equal(t, "UTC", s.Timezone)
	assert.Equal(t, "09:00", s.EnvelopeStart)
	assert.Equal(t, "17:00", s.EnvelopeEnd)
	assert.Equal(t, 15, s.GranularityMinutes)
	assert.Equal(t, "google-meet", s.MeetingType.Platform)
}

func TestBuild_QuarantinesBrokenRules(t *testing.T) {
	s, err := ParseScenario([]byte(weekdayScenario))
	require.NoError(t, err)

	var logs bytes.Buffer
	env, err := s.Build(warnRecorder{&logs})
	require.NoError(t, err)

	require.Len(t, env.Rules, 2)
	assert.True(t, env.Rules[1].IsQuarantined())
	assert.Contains(t, logs.String(), "quarantined")
	require.Len(t, env.Bookings, 1)
}

func TestRun_Slots(t *testing.T) {
	path := writeScenario(t, weekdayScenario)

	var out, errOut bytes.Buffer
	require.NoError(t, run([]string{"slots", "-scenario", path, "-date", "2024-06-03"}, &out, &errOut))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 32)
	assert.Equal(t, "9:00 AM   available", lines[0])
	assert.Equal(t, "9:15 AM   unavailable", lines[1])
	assert.Contains(t, lines[len(lines)-1], "31 slots")
}

func TestRun_Next(t *testing.T) {
	path := writeScenario(t, weekdayScenario)

	var out, errOut bytes.Buffer
	require.NoError(t, run([]string{"next", "-scenario", path, "-from", "2024-06-01", "-time", "afternoon"}, &out, &errOut))

	// Суббота и воскресенье недоступны, первый слот после полудня в понедельник
	assert.Equal(t, "2024-06-03 12:00 PM\n", out.String())
}

func TestRun_NextNotFound(t *testing.T) {
	path := writeScenario(t, weekdayScenario)

	var out, errOut bytes.Buffer
	require.NoError(t, run([]string{"next", "-scenario", path, "-from", "2024-06-01", "-horizon", "2"}, &out, &errOut))

	assert.Equal(t, "no available slot within horizon\n", out.String())
}

func TestRun_Errors(t *testing.T) {
	path := writeScenario(t, weekdayScenario)

	tests := [][]string{
		{},
		{"book"},
		{"slots", "-scenario", path},
		{"slots", "-scenario", filepath.Join(t.TempDir(), "absent.yaml"), "-date", "2024-06-03"},
		{"next", "-scenario", path, "-time", "evening"},
		{"next", "-scenario", path, "-days", "funday"},
	}

	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			var out, errOut bytes.Buffer
			assert.Error(t, run(args, &out, &errOut))
		})
	}
}

type warnRecorder struct {
	buf *bytes.Buffer
}

func (l warnRecorder) Warn(format string, v ...interface{}) {
	l.buf.WriteString(format)
}
