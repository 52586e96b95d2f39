package timex

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-day format used by journal, sleep and schedule
// records.
const DateLayout = "2006-01-02"

// ClockLayout is the wall-clock format used by sleep and timetable records.
const ClockLayout = "15:04"

// ParseDate parses a YYYY-MM-DD day in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders t's calendar day in t's location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the YYYY-MM-DD string n days after day.
func AddDays(day string, n int) (string, error) {
	t, err := ParseDate(day)
	if err != nil {
		return "", err
	}
	return FormatDate(t.AddDate(0, 0, n)), nil
}

// RangesOverlap reports whether the inclusive day ranges [aFrom, aTo] and
// [bFrom, bTo] share at least one day. All values are YYYY-MM-DD, which
// compare correctly as strings.
func RangesOverlap(aFrom, aTo, bFrom, bTo string) bool {
	return aFrom <= bTo && bFrom <= aTo
}

// ParseClock parses an HH:MM wall-clock time into minutes after midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}
