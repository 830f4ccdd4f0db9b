package services

import (
	"strings"
	"time"

	"timesheet/internal/errors"
	"timesheet/internal/timefmt"
	"timesheet/internal/validation"
)

// timeServiceImpl implements the TimeService interface
type timeServiceImpl struct {
	taskValidator *validation.TaskValidator
}

// NewTimeService creates a new TimeService instance
func NewTimeService() TimeService {
	return &timeServiceImpl{
		taskValidator: validation.NewTaskValidator(),
	}
}

// ParseDateRange parses two calendar dates into an inclusive range covering both whole days
func (t *timeServiceImpl) ParseDateRange(from, to string) (*DateRange, error) {
	start, err := timefmt.ParseDate(from)
	if err != nil {
		return nil, errors.NewInvalidInputError("from", from, "expected MM/DD/YYYY or YYYY-MM-DD")
	}
	end, err := timefmt.ParseDate(to)
	if err != nil {
		return nil, errors.NewInvalidInputError("to", to, "expected MM/DD/YYYY or YYYY-MM-DD")
	}

	if err := t.taskValidator.ValidateDateRange(start, end); err != nil {
		return nil, errors.NewValidationError("invalid date range", err)
	}

	return &DateRange{
		Start: timefmt.StartOfDay(start),
		End:   timefmt.EndOfDay(end),
	}, nil
}

// ParseNamedRange converts a shorthand ("today", "yesterday", "week", "last-week", "month",
// "year") into a date range relative to now
func (t *timeServiceImpl) ParseNamedRange(name string, now time.Time) (*DateRange, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "today":
		return &DateRange{Start: timefmt.StartOfDay(now), End: timefmt.EndOfDay(now)}, nil
	case "yesterday":
		day := now.AddDate(0, 0, -1)
		return &DateRange{Start: timefmt.StartOfDay(day), End: timefmt.EndOfDay(day)}, nil
	case "week", "this-week":
		return t.WeekOf(now), nil
	case "last-week":
		return t.WeekOf(now.AddDate(0, 0, -7)), nil
	case "month", "this-month":
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		last := first.AddDate(0, 1, -1)
		return &DateRange{Start: first, End: timefmt.EndOfDay(last)}, nil
	case "year", "this-year":
		first := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		last := time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, now.Location())
		return &DateRange{Start: first, End: timefmt.EndOfDay(last)}, nil
	case "":
		return nil, errors.NewValidationError("time range cannot be empty", nil)
	default:
		return nil, errors.NewInvalidInputError("range", name, "expected today, yesterday, week, last-week, month or year")
	}
}

// WeekOf returns the Monday to Sunday week containing date
func (t *timeServiceImpl) WeekOf(date time.Time) *DateRange {
	return &DateRange{
		Start: timefmt.StartOfWeek(date),
		End:   timefmt.EndOfWeek(date),
	}
}

// DeriveDuration returns the minutes between start and end when both are set and ordered
func (t *timeServiceImpl) DeriveDuration(start, end *time.Time) *int {
	if start == nil || end == nil || end.Before(*start) {
		return nil
	}
	minutes := timefmt.MinutesBetween(*start, *end)
	return &minutes
}
