package domain

import (
	"strings"
	"time"
)

// DateDisplayLayout is the textual calendar form used on every response,
// e.g. "Wed Mar 15 2023".
const DateDisplayLayout = "Mon Jan 02 2006"

var dateInputLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	DateDisplayLayout,
}

// ParseDate interprets raw as a calendar date at UTC midnight. Blank or
// unparseable input reports ok=false.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateInputLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return truncateToDate(parsed.UTC()), true
		}
	}
	return time.Time{}, false
}

// CurrentDate returns today's date at UTC midnight.
func CurrentDate() time.Time {
	return truncateToDate(time.Now().UTC())
}

// DisplayDate renders t in the textual calendar form. A zero time is
// replaced with the current date, so a stored-but-invalid date still
// serializes.
func DisplayDate(t time.Time) string {
	if t.IsZero() {
		t = CurrentDate()
	}
	return t.UTC().Format(DateDisplayLayout)
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
