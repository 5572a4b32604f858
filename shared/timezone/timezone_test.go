package timezone_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"huddle/shared/timezone"
)

func TestNow_IsUTC(t *testing.T) {
	now := timezone.Now()

	assert.Equal(t, time.UTC, now.Location())
}

func TestParse(t *testing.T) {
	parsed, err := timezone.Parse("2006-01-02", "2024-06-01")

	assert.NoError(t, err)
	assert.Equal(t, time.UTC, parsed.Location())
	assert.Equal(t, 2024, parsed.Year())
	assert.Equal(t, time.June, parsed.Month())
	assert.Equal(t, 1, parsed.Day())
}

func TestParse_Invalid(t *testing.T) {
	_, err := timezone.Parse("15:04", "25:99")

	assert.Error(t, err)
}

func TestCombine(t *testing.T) {
	date, err := timezone.Parse("2006-01-02", "2024-06-01")
	assert.NoError(t, err)

	clock, err := timezone.Parse("15:04", "14:30")
	assert.NoError(t, err)

	combined := timezone.Combine(date, clock)

	assert.Equal(t, time.Date(2024, time.June, 1, 14, 30, 0, 0, time.UTC), combined)
}

func TestWindow(t *testing.T) {
	start, end, err := timezone.Window("2026-09-01", "09:00", "10:30")

	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.September, 1, 10, 30, 0, 0, time.UTC), end)
}

func TestWindow_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		date  string
		start string
		end   string
	}{
		{"bad date", "tomorrow", "09:00", "10:00"},
		{"bad start", "2026-09-01", "9am", "10:00"},
		{"bad end", "2026-09-01", "09:00", "25:00"},
		{"inverted", "2026-09-01", "10:00", "09:00"},
		{"zero length", "2026-09-01", "09:00", "09:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := timezone.Window(tt.date, tt.start, tt.end)

			assert.Error(t, err)
		})
	}
}

func TestFormat(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Jakarta")
	assert.NoError(t, err)

	local := time.Date(2024, time.June, 1, 21, 30, 0, 0, loc)

	assert.Equal(t, "14:30", timezone.Format(local, "15:04"))
}
