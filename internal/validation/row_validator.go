package validation

import (
	"context"
	"fmt"
	"strings"

	"timesheet/internal/domain"
	"timesheet/internal/timefmt"
)

// Spreadsheet column headers, in export order.
const (
	ColumnTitle       = "Task Title"
	ColumnDescription = "Description"
	ColumnType        = "Type"
	ColumnProject     = "Project"
	ColumnDate        = "Date"
	ColumnStartTime   = "Start Time"
	ColumnEndTime     = "End Time"
	ColumnDuration    = "Duration (HH:MM)"
	ColumnStatus      = "Status"
)

// Columns lists the task sheet headers in order.
var Columns = []string{
	ColumnTitle,
	ColumnDescription,
	ColumnType,
	ColumnProject,
	ColumnDate,
	ColumnStartTime,
	ColumnEndTime,
	ColumnDuration,
	ColumnStatus,
}

// Row error messages.
const (
	MsgTitleRequired      = "Task title is required"
	MsgTypeRequired       = "Type is required"
	MsgDateRequired       = "Date is required"
	MsgInvalidDate        = "Invalid date format"
	MsgInvalidType        = "Type must be Work or Personal"
	MsgProjectUnavailable = "Project is required but could not be created"
)

// Row is one spreadsheet record keyed by column header.
type Row map[string]string

// Get returns the trimmed cell for column, empty when absent.
func (r Row) Get(column string) string {
	return strings.TrimSpace(r[column])
}

// IsBlank reports whether every cell is empty.
func (r Row) IsBlank() bool {
	for _, v := range r {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// RowError rejects a single spreadsheet row. Row is the 1-based sheet row number.
type RowError struct {
	Row     int
	Message string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("Row %d: %s", e.Row, e.Message)
}

// ProjectResolver finds or creates the project a row refers to.
type ProjectResolver interface {
	Resolve(ctx context.Context, name string, taskType domain.TaskType) (int64, bool)
}

// RowValidator turns raw spreadsheet rows into task drafts.
type RowValidator struct {
	resolver    ProjectResolver
	strictTypes bool
}

// RowValidatorOption configures a RowValidator.
type RowValidatorOption func(*RowValidator)

// WithStrictTypes rejects types other than Work and Personal instead of defaulting to Personal.
func WithStrictTypes(strict bool) RowValidatorOption {
	return func(v *RowValidator) {
		v.strictTypes = strict
	}
}

// NewRowValidator creates a validator that resolves projects through resolver.
func NewRowValidator(resolver ProjectResolver, opts ...RowValidatorOption) *RowValidator {
	v := &RowValidator{resolver: resolver}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks required fields in the order title, type, date and stops at the first
// failure. Optional fields that do not parse are dropped rather than rejected.
func (v *RowValidator) Validate(ctx context.Context, row Row, rowNumber int) (*domain.TaskDraft, error) {
	title := row.Get(ColumnTitle)
	if title == "" {
		return nil, &RowError{Row: rowNumber, Message: MsgTitleRequired}
	}

	rawType := row.Get(ColumnType)
	if rawType == "" {
		return nil, &RowError{Row: rowNumber, Message: MsgTypeRequired}
	}

	rawDate := row.Get(ColumnDate)
	if rawDate == "" {
		return nil, &RowError{Row: rowNumber, Message: MsgDateRequired}
	}

	taskType := domain.ParseTaskType(rawType)
	if v.strictTypes {
		strict, ok := domain.ParseTaskTypeStrict(rawType)
		if !ok {
			return nil, &RowError{Row: rowNumber, Message: MsgInvalidType}
		}
		taskType = strict
	}

	date, err := timefmt.ParseDate(rawDate)
	if err != nil {
		return nil, &RowError{Row: rowNumber, Message: MsgInvalidDate}
	}

	projectID, ok := v.resolver.Resolve(ctx, row.Get(ColumnProject), taskType)
	if !ok {
		return nil, &RowError{Row: rowNumber, Message: MsgProjectUnavailable}
	}

	draft := &domain.TaskDraft{
		Title:       title,
		Description: row.Get(ColumnDescription),
		Type:        taskType,
		ProjectID:   &projectID,
		Date:        date,
		StartTime:   timefmt.ParseTimeOn(date, row.Get(ColumnStartTime)),
		EndTime:     timefmt.ParseTimeOn(date, row.Get(ColumnEndTime)),
		Status:      domain.ParseTaskStatus(row.Get(ColumnStatus)),
	}
	if minutes, ok := timefmt.ClockToMinutes(row.Get(ColumnDuration)); ok {
		draft.Duration = &minutes
	}

	return draft, nil
}
