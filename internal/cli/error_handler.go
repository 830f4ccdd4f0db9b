package cli

import (
	stderrors "errors"
	"fmt"

	"timesheet/internal/errors"
	"timesheet/internal/logging"
	"timesheet/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	eh.log(operation, err)
	return fmt.Errorf("failed to %s: %s", operation, eh.message(err))
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if err == nil {
		return nil
	}
	eh.log("", err)
	return stderrors.New(eh.message(err))
}

// listHints point at the command that shows valid IDs for a missing resource
var listHints = map[string]string{
	"task":    "ts task list --all",
	"project": "ts project list",
}

// message prefers field-level validation detail, even when wrapped in an AppError
func (eh *ErrorHandler) message(err error) string {
	var validationErr *validation.ValidationError
	if stderrors.As(err, &validationErr) {
		return validationErr.GetUserFriendlyMessage()
	}

	message := errors.GetUserMessage(err)
	switch {
	case eh.IsNotFoundError(err):
		if hint, ok := listHints[fmt.Sprint(contextValue(err, "resource"))]; ok {
			message = fmt.Sprintf("%s (run %q to see IDs)", message, hint)
		}
	case eh.IsDatabaseError(err) && !logging.DebugEnabled():
		message += " Run with --verbose for details."
	}
	return message
}

func (eh *ErrorHandler) log(operation string, err error) {
	if !errors.ShouldLogError(err) {
		return
	}
	if file := contextValue(err, "file"); file != nil {
		logging.Debugf("%s: [%s] %s: %v", operation, eh.GetErrorCode(err), file, err)
		return
	}
	logging.Debugf("%s: [%s] %v", operation, eh.GetErrorCode(err), err)
}

func contextValue(err error, key string) interface{} {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		return nil
	}
	value, _ := appErr.GetContext(key)
	return value
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// IsDatabaseError checks if an error is a database error
func (eh *ErrorHandler) IsDatabaseError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeDatabase)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}
