package validation

import (
	"time"

	"timesheet/internal/config"
	"timesheet/internal/domain"
)

// TaskValidator provides validation for manually entered tasks
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWithConfig creates a task validator using configured limits
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// ValidateDraft validates a task before it is created. Every problem is reported, not just the first.
func (tv *TaskValidator) ValidateDraft(draft domain.TaskDraft) error {
	validationError := NewValidationError()

	title := tv.validator.TrimAndValidateString(draft.Title)
	if !tv.validator.IsNonEmptyString(title) {
		validationError.AddRequiredError("title")
	} else if !tv.validator.IsValidTitleLength(title) {
		validationError.AddInvalidLengthError("title", title, tv.validator.getTitleMaxLength())
	}

	if !draft.Type.IsValid() {
		validationError.AddInvalidValueError("type", draft.Type, "must be work or personal")
	}

	if draft.Date.IsZero() {
		validationError.AddRequiredError("date")
	}

	if draft.ProjectID == nil {
		validationError.AddRequiredError("project")
	} else if !tv.validator.IsValidID(*draft.ProjectID) {
		validationError.AddInvalidValueError("project", *draft.ProjectID, "must be a positive integer")
	}

	if !tv.validator.IsValidTimeRange(draft.StartTime, draft.EndTime) {
		validationError.AddInvalidRangeError("end_time", draft.EndTime, "end time is before start time")
	}

	if draft.Duration != nil && !tv.validator.IsValidDuration(*draft.Duration) {
		validationError.AddInvalidRangeError("duration", *draft.Duration, "duration is negative or too long")
	}

	return validationError.Err()
}

// ValidateTaskID validates a task ID
func (tv *TaskValidator) ValidateTaskID(id int64) error {
	if !tv.validator.IsValidID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("task_id", id, "must be a positive integer")
		return validationError
	}
	return nil
}

// ValidateDateRange checks an inclusive date range used for listing and exports
func (tv *TaskValidator) ValidateDateRange(from, to time.Time) error {
	validationError := NewValidationError()
	if from.IsZero() {
		validationError.AddRequiredError("from")
	}
	if to.IsZero() {
		validationError.AddRequiredError("to")
	}
	if validationError.HasErrors() {
		return validationError
	}
	if !tv.validator.IsValidDateRange(from, to) {
		validationError.AddInvalidRangeError("to", to, "end date is before start date")
	}
	return validationError.Err()
}
