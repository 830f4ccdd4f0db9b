package sqlite

import (
	"fmt"
	"time"
)

const (
	dbDateLayout  = "2006-01-02"
	dbClockLayout = "15:04"
)

// FormatTimeForDB formats a time.Time value as RFC3339 string for consistent database storage
func FormatTimeForDB(t time.Time) string {
	return t.Format(time.RFC3339)
}

// ParseTimeFromDB parses an RFC3339 formatted time string from the database
func ParseTimeFromDB(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// FormatDateForDB stores the calendar date only, so range filters compare as text
func FormatDateForDB(t time.Time) string {
	return t.Format(dbDateLayout)
}

// ParseDateFromDB parses a stored calendar date as local midnight
func ParseDateFromDB(s string) (time.Time, error) {
	return time.ParseInLocation(dbDateLayout, s, time.Local)
}

// FormatClockPtrForDB formats the time of day of t as HH:MM, returning nil if the pointer is nil
func FormatClockPtrForDB(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(dbClockLayout)
}

// ParseClockFromDB anchors a stored HH:MM value on date
func ParseClockFromDB(date time.Time, s string) (*time.Time, error) {
	clock, err := time.Parse(dbClockLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid stored time %q: %w", s, err)
	}
	y, m, d := date.Date()
	t := time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, date.Location())
	return &t, nil
}

// FormatIntPtrForDB returns nil for a nil pointer so the column is stored as NULL
func FormatIntPtrForDB(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// FormatInt64PtrForDB returns nil for a nil pointer so the column is stored as NULL
func FormatInt64PtrForDB(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
