package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDateCalendarForm(t *testing.T) {
	parsed, ok := ParseDate("2023-03-15")
	require.True(t, ok)
	require.Equal(t, time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC), parsed)
}

func TestParseDateRFC3339(t *testing.T) {
	parsed, ok := ParseDate("2023-03-15T18:30:00Z")
	require.True(t, ok)
	require.Equal(t, time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC), parsed)
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "   ", "not-a-date", "2023-13-45"} {
		_, ok := ParseDate(raw)
		require.False(t, ok, "input %q", raw)
	}
}

func TestDisplayDateFormat(t *testing.T) {
	date := time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "Wed Mar 15 2023", DisplayDate(date))
}

func TestDisplayDateZeroFallsBackToToday(t *testing.T) {
	require.Equal(t, CurrentDate().Format(DateDisplayLayout), DisplayDate(time.Time{}))
}
