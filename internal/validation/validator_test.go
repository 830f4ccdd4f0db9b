package validation

import (
	"strings"
	"testing"
	"time"

	"timesheet/internal/config"
)

func TestValidator_IsNonEmptyString(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"Empty string", "", false},
		{"Whitespace only", "   ", false},
		{"Tab and newline", "\t\n", false},
		{"Valid string", "hello", true},
		{"String with leading/trailing spaces", "  hello  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validator.IsNonEmptyString(tt.input)
			if result != tt.expected {
				t.Errorf("IsNonEmptyString(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestValidator_IsValidTitleLength(t *testing.T) {
	validator := NewValidator()

	if !validator.IsValidTitleLength(strings.Repeat("a", 255)) {
		t.Error("255 characters should be accepted by default")
	}
	if validator.IsValidTitleLength(strings.Repeat("a", 256)) {
		t.Error("256 characters should be rejected by default")
	}
	if !validator.IsValidTitleLength(strings.Repeat("é", 255)) {
		t.Error("length should count characters, not bytes")
	}

	cfg := config.NewConfig()
	cfg.Validation.TitleMaxLength = 5
	configured := NewValidatorWithConfig(cfg)
	if configured.IsValidTitleLength("sixsix") {
		t.Error("configured maximum should apply")
	}
}

func TestValidator_IsValidColor(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		input    string
		expected bool
	}{
		{"#FF6B6B", true},
		{"#52b788", true},
		{"FF6B6B", false},
		{"#FFF", false},
		{"#GG0000", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := validator.IsValidColor(tt.input); got != tt.expected {
				t.Errorf("IsValidColor(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestValidator_IsValidTimeRange(t *testing.T) {
	validator := NewValidator()
	nine := time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)
	ten := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)

	tests := []struct {
		name     string
		start    *time.Time
		end      *time.Time
		expected bool
	}{
		{"both unknown", nil, nil, true},
		{"only start", &nine, nil, true},
		{"ordered", &nine, &ten, true},
		{"same time", &nine, &nine, true},
		{"reversed", &ten, &nine, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validator.IsValidTimeRange(tt.start, tt.end); got != tt.expected {
				t.Errorf("IsValidTimeRange() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestValidator_IsValidDuration(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		minutes  int
		expected bool
	}{
		{0, true},
		{90, true},
		{24 * 60, true},
		{24*60 + 1, false},
		{-5, false},
	}

	for _, tt := range tests {
		if got := validator.IsValidDuration(tt.minutes); got != tt.expected {
			t.Errorf("IsValidDuration(%d) = %v, expected %v", tt.minutes, got, tt.expected)
		}
	}
}

func TestValidator_IsValidClock(t *testing.T) {
	validator := NewValidator()

	if !validator.IsValidClock("20:00") {
		t.Error("20:00 should be valid")
	}
	if validator.IsValidClock("25:00") {
		t.Error("25:00 should be invalid")
	}
}

func TestValidator_IsValidDateRange(t *testing.T) {
	validator := NewValidator()
	jan1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	jan7 := time.Date(2024, 1, 7, 0, 0, 0, 0, time.Local)

	if !validator.IsValidDateRange(jan1, jan7) {
		t.Error("ordered range should be valid")
	}
	if !validator.IsValidDateRange(jan1, jan1) {
		t.Error("single-day range should be valid")
	}
	if validator.IsValidDateRange(jan7, jan1) {
		t.Error("reversed range should be invalid")
	}
	if validator.IsValidDateRange(time.Time{}, jan1) {
		t.Error("zero start should be invalid")
	}
}
