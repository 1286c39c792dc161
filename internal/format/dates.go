package format

import (
	"fmt"
	"time"
)

const dateKeyLayout = "2006-01-02"

// DateKey derives the canonical YYYY-MM-DD key for an instant in the
// given timezone. Calendar conversion is timezone aware, never a plain
// UTC truncation: the same instant always maps to the same key for a
// fixed zone regardless of the process-local timezone.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dateKeyLayout)
}

// MonthKey derives the YYYY-MM key for an instant in the given timezone.
func MonthKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01")
}

// LastMonthKey returns the YYYY-MM key of the month before now.
func LastMonthKey(now time.Time, loc *time.Location) string {
	local := now.In(loc)
	firstOfMonth := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	return firstOfMonth.AddDate(0, 0, -1).Format("2006-01")
}

var shortWeekdays = [...]string{"dom", "lun", "mar", "mié", "jue", "vie", "sáb"}

// ShortDayLabel renders a chart axis label ("lun 2") for a YYYY-MM-DD
// key. The date is anchored at midday UTC so re-interpreting the label's
// instant in a display timezone cannot round it onto a neighbouring day.
func ShortDayLabel(dateKey string) (string, error) {
	parsed, err := time.Parse(dateKeyLayout, dateKey)
	if err != nil {
		return "", fmt.Errorf("parse date key %q: %w", dateKey, err)
	}
	anchored := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 12, 0, 0, 0, time.UTC)
	return fmt.Sprintf("%s %d", shortWeekdays[anchored.Weekday()], anchored.Day()), nil
}
