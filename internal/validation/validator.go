package validation

import (
	"regexp"
	"strings"
	"time"

	"timesheet/internal/config"
	"timesheet/internal/timefmt"
)

var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		config: nil, // Use defaults
	}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		config: cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a string length is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := len([]rune(strings.TrimSpace(s)))
	return length >= min && length <= max
}

// IsValidTitleLength checks a task title against the configured maximum
func (v *Validator) IsValidTitleLength(title string) bool {
	return v.IsValidStringLength(title, 1, v.getTitleMaxLength())
}

// IsValidProjectNameLength checks a project name against the configured maximum
func (v *Validator) IsValidProjectNameLength(name string) bool {
	return v.IsValidStringLength(name, 1, v.getProjectNameMaxLength())
}

// IsValidID checks if an identifier is valid (positive)
func (v *Validator) IsValidID(id int64) bool {
	return id > 0
}

// IsValidColor checks for a #RRGGBB colour
func (v *Validator) IsValidColor(color string) bool {
	return hexColorRegex.MatchString(color)
}

// IsValidClock checks for an HH:MM time of day
func (v *Validator) IsValidClock(text string) bool {
	_, _, ok := timefmt.ParseTimeOfDay(text)
	return ok
}

// IsValidTimeRange checks that end, when both are known, is not before start
func (v *Validator) IsValidTimeRange(start, end *time.Time) bool {
	if start == nil || end == nil {
		return true
	}
	return !end.Before(*start)
}

// IsValidDuration checks that a minute count is within the configured bounds
func (v *Validator) IsValidDuration(minutes int) bool {
	return minutes >= 0 && time.Duration(minutes)*time.Minute <= v.getMaxDuration()
}

// IsValidDateRange checks if a date range is logical
func (v *Validator) IsValidDateRange(start, end time.Time) bool {
	return !start.IsZero() && !end.IsZero() && !end.Before(start)
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

func (v *Validator) getTitleMaxLength() int {
	if v.config != nil {
		return v.config.Validation.TitleMaxLength
	}
	return 255
}

func (v *Validator) getProjectNameMaxLength() int {
	if v.config != nil {
		return v.config.Validation.ProjectNameMaxLength
	}
	return 100
}

func (v *Validator) getMaxDuration() time.Duration {
	if v.config != nil {
		return v.config.Validation.MaxDuration
	}
	return 24 * time.Hour
}
