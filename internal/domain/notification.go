package domain

import (
	"strings"
	"time"
)

// DefaultReminderTime is the end-of-day reminder time of a fresh install.
const DefaultReminderTime = "20:00"

// NotificationSettings configures the end-of-day reminder.
// DaysEnabled is indexed by time.Weekday, Sunday first.
type NotificationSettings struct {
	Enabled     bool
	Time        string
	DaysEnabled [7]bool
}

// DefaultNotificationSettings enables the reminder at 20:00 every day.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		Enabled:     true,
		Time:        DefaultReminderTime,
		DaysEnabled: [7]bool{true, true, true, true, true, true, true},
	}
}

// EnabledOn reports whether the reminder should fire on the given weekday.
func (s NotificationSettings) EnabledOn(day time.Weekday) bool {
	return s.Enabled && s.DaysEnabled[day]
}

// AnyDayEnabled reports whether at least one weekday is switched on.
func (s NotificationSettings) AnyDayEnabled() bool {
	for _, on := range s.DaysEnabled {
		if on {
			return true
		}
	}
	return false
}

// DaysString encodes DaysEnabled as seven '0'/'1' characters.
func (s NotificationSettings) DaysString() string {
	var b strings.Builder
	for _, on := range s.DaysEnabled {
		if on {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// ParseDays decodes seven '0'/'1' characters. Missing or unknown characters read as disabled.
func ParseDays(s string) [7]bool {
	var days [7]bool
	for i := 0; i < len(days) && i < len(s); i++ {
		days[i] = s[i] == '1'
	}
	return days
}
