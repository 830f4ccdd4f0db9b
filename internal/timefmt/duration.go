// Package timefmt converts task durations, dates and clock times between their stored
// values and the text shown in spreadsheets and on the terminal.
package timefmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Placeholder is written for absent times and durations and read back as "unknown".
const Placeholder = "-"

// MinutesToClock formats a minute count as zero-padded HH:MM. Hours are not wrapped
// at 24, so 1500 minutes is "25:00".
func MinutesToClock(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ClockToMinutes parses HH:MM into a minute count. Malformed input is a soft failure:
// ok is false and the caller treats the duration as unknown.
func ClockToMinutes(text string) (minutes int, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" || text == Placeholder {
		return 0, false
	}

	parts := strings.Split(text, ":")
	if len(parts) != 2 {
		return 0, false
	}

	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hours < 0 {
		return 0, false
	}
	mins, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || mins < 0 {
		return 0, false
	}
	if hours > (math.MaxInt-mins)/60 {
		return 0, false
	}

	return hours*60 + mins, true
}

// FormatOptionalMinutes renders a nullable duration, using the placeholder for nil.
func FormatOptionalMinutes(minutes *int) string {
	if minutes == nil {
		return Placeholder
	}
	return MinutesToClock(*minutes)
}
