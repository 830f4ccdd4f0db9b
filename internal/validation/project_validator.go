package validation

import (
	"timesheet/internal/config"
	"timesheet/internal/domain"
)

// ProjectValidator validates project creation and edits
type ProjectValidator struct {
	validator *Validator
}

// NewProjectValidator creates a new project validator
func NewProjectValidator() *ProjectValidator {
	return &ProjectValidator{validator: NewValidator()}
}

// NewProjectValidatorWithConfig creates a project validator using configured limits
func NewProjectValidatorWithConfig(cfg *config.Config) *ProjectValidator {
	return &ProjectValidator{validator: NewValidatorWithConfig(cfg)}
}

// ValidateProject validates name, type and colour. An empty colour is allowed and means "pick one".
func (pv *ProjectValidator) ValidateProject(name string, taskType domain.TaskType, color string) error {
	validationError := NewValidationError()

	name = pv.validator.TrimAndValidateString(name)
	if !pv.validator.IsNonEmptyString(name) {
		validationError.AddRequiredError("name")
	} else if !pv.validator.IsValidProjectNameLength(name) {
		validationError.AddInvalidLengthError("name", name, pv.validator.getProjectNameMaxLength())
	}

	if !taskType.IsValid() {
		validationError.AddInvalidValueError("type", taskType, "must be work or personal")
	}

	if color != "" && !pv.validator.IsValidColor(color) {
		validationError.AddInvalidFormatError("color", color, "#RRGGBB")
	}

	return validationError.Err()
}

// ValidateProjectID validates a project ID
func (pv *ProjectValidator) ValidateProjectID(id int64) error {
	if !pv.validator.IsValidID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("project_id", id, "must be a positive integer")
		return validationError
	}
	return nil
}
