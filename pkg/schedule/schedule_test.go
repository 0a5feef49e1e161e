package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

func TestDefaultIsOpen(t *testing.T) {
	hours := Default()

	tests := []struct {
		name string
		t    time.Time
		open bool
	}{
		{"weekday morning", at(2026, time.March, 4, 11), true},
		{"weekday opening boundary", at(2026, time.March, 4, 9), true},
		{"weekday closing boundary", at(2026, time.March, 4, 18), false},
		{"weekday before opening", at(2026, time.March, 4, 8), false},
		{"saturday late morning", at(2026, time.March, 7, 11), true},
		{"saturday closing boundary", at(2026, time.March, 7, 13), false},
		{"sunday", at(2026, time.March, 1, 11), false},
		{"new year on a weekday", at(2026, time.January, 1, 11), false},
		{"christmas", at(2026, time.December, 25, 11), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.open, hours.IsOpen(tt.t))
		})
	}
}

func TestIsOpenIgnoresMinutes(t *testing.T) {
	hours := Default()

	// Resolution is one hour, so 17:59 is open and 18:01 is closed.
	assert.True(t, hours.IsOpen(time.Date(2026, time.March, 4, 17, 59, 0, 0, time.UTC)))
	assert.False(t, hours.IsOpen(time.Date(2026, time.March, 4, 18, 1, 0, 0, time.UTC)))
}

func TestNextOpening(t *testing.T) {
	hours := Default()

	t.Run("from saturday afternoon to monday", func(t *testing.T) {
		opening, ok := hours.NextOpening(at(2026, time.March, 7, 14))
		require.True(t, ok)
		assert.Equal(t, at(2026, time.March, 9, 9), opening)
	})

	t.Run("from early weekday morning to same day", func(t *testing.T) {
		opening, ok := hours.NextOpening(at(2026, time.March, 4, 6))
		require.True(t, ok)
		assert.Equal(t, at(2026, time.March, 4, 9), opening)
	})

	t.Run("skips holidays", func(t *testing.T) {
		// Dec 31 2026 is a Thursday; Jan 1 is skipped, Saturday opens at 10.
		opening, ok := hours.NextOpening(at(2026, time.December, 31, 20))
		require.True(t, ok)
		assert.Equal(t, at(2027, time.January, 2, 10), opening)
	})

	t.Run("never-open table", func(t *testing.T) {
		closed := &BusinessHours{
			days:     map[time.Weekday]DayHours{},
			holidays: map[string]bool{},
		}
		_, ok := closed.NextOpening(at(2026, time.March, 4, 6))
		assert.False(t, ok)
	})
}

func TestNextClosing(t *testing.T) {
	hours := Default()

	t.Run("while open", func(t *testing.T) {
		assert.Equal(t, at(2026, time.March, 4, 18), hours.NextClosing(at(2026, time.March, 4, 11)))
	})

	t.Run("while closed", func(t *testing.T) {
		// Saturday evening: next opening day is Monday, which ends at 18.
		assert.Equal(t, at(2026, time.March, 9, 18), hours.NextClosing(at(2026, time.March, 7, 20)))
	})
}

func TestNewFromEnv(t *testing.T) {
	t.Run("empty env falls back to default table", func(t *testing.T) {
		t.Setenv("BOT_SCHEDULE", "")
		hours, err := New()
		require.NoError(t, err)
		assert.True(t, hours.IsOpen(at(2026, time.March, 4, 11)))
	})

	t.Run("custom table", func(t *testing.T) {
		t.Setenv("BOT_SCHEDULE", `{"days":{"wednesday":{"start":20,"end":23}},"holidays":["03-11"]}`)
		hours, err := New()
		require.NoError(t, err)

		assert.True(t, hours.IsOpen(at(2026, time.March, 4, 21)))
		assert.False(t, hours.IsOpen(at(2026, time.March, 4, 11)))
		// March 11 is a Wednesday but listed as a holiday.
		assert.False(t, hours.IsOpen(at(2026, time.March, 11, 21)))
	})

	t.Run("unknown weekday", func(t *testing.T) {
		t.Setenv("BOT_SCHEDULE", `{"days":{"caturday":{"start":1,"end":2}}}`)
		_, err := New()
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Setenv("BOT_SCHEDULE", "{")
		_, err := New()
		assert.Error(t, err)
	})
}

func TestClock(t *testing.T) {
	fixed := at(2026, time.March, 4, 11)
	assert.Equal(t, fixed, FixedClock(fixed).Now())

	assert.WithinDuration(t, time.Now(), SystemClock().Now(), time.Minute)
}
