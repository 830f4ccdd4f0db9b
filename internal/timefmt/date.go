package timefmt

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DisplayDateLayout is the date format written to and documented for spreadsheets.
	DisplayDateLayout = "01/02/2006"
	// ISODateLayout is used for storage, filenames and daily-summary keys.
	ISODateLayout = "2006-01-02"
	// ClockLayout is the HH:MM time-of-day format.
	ClockLayout = "15:04"
)

// parseDateLayouts are tried in order; "1/2/2006" also accepts zero-padded values.
var parseDateLayouts = []string{
	"1/2/2006",
	ISODateLayout,
	"1/2/06",
}

// FormatDate renders a calendar date as MM/DD/YYYY.
func FormatDate(t time.Time) string {
	return t.Format(DisplayDateLayout)
}

// FormatISODate renders a calendar date as YYYY-MM-DD.
func FormatISODate(t time.Time) string {
	return t.Format(ISODateLayout)
}

// FormatTime renders the clock part of t as HH:MM.
func FormatTime(t time.Time) string {
	return t.Format(ClockLayout)
}

// FormatOptionalTime renders a nullable time of day, using the placeholder for nil.
func FormatOptionalTime(t *time.Time) string {
	if t == nil {
		return Placeholder
	}
	return FormatTime(*t)
}

// ParseDate parses MM/DD/YYYY, falling back to YYYY-MM-DD. The result is local midnight.
func ParseDate(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range parseDateLayouts {
		if t, err := time.ParseInLocation(layout, text, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q, expected MM/DD/YYYY", text)
}

// ParseTimeOfDay parses HH:MM (seconds are tolerated and ignored). Empty text, the
// placeholder and out-of-range values report ok=false.
func ParseTimeOfDay(text string) (hour, minute int, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" || text == Placeholder {
		return 0, 0, false
	}

	parts := strings.Split(text, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, 0, false
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// AtTimeOfDay places hour:minute on the calendar day of date.
func AtTimeOfDay(date time.Time, hour, minute int) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, date.Location())
}

// ParseTimeOn parses an HH:MM cell and anchors it on date; nil when the cell is soft-invalid.
func ParseTimeOn(date time.Time, text string) *time.Time {
	hour, minute, ok := ParseTimeOfDay(text)
	if !ok {
		return nil
	}
	t := AtTimeOfDay(date, hour, minute)
	return &t
}

// StartOfDay returns midnight of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	return AtTimeOfDay(t, 0, 0)
}

// EndOfDay returns the last nanosecond of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// StartOfWeek returns midnight of the Monday of t's week.
func StartOfWeek(t time.Time) time.Time {
	offset := int(t.Weekday())
	if offset == 0 {
		offset = 7
	}
	return StartOfDay(t).AddDate(0, 0, -offset+1)
}

// EndOfWeek returns the last nanosecond of the Sunday of t's week.
func EndOfWeek(t time.Time) time.Time {
	return EndOfDay(StartOfWeek(t).AddDate(0, 0, 6))
}

// DaysInWeek lists the seven days of t's week, Monday first.
func DaysInWeek(t time.Time) []time.Time {
	start := StartOfWeek(t)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// InRange reports whether t lies within [start, end], bounds included.
func InRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// MinutesBetween returns the whole minutes from start to end.
func MinutesBetween(start, end time.Time) int {
	return int(end.Sub(start) / time.Minute)
}
