package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"timesheet/internal/domain"
	"timesheet/internal/errors"
)

// ErrNothingImported is returned when an import stored no task at all
var ErrNothingImported = stderrors.New("no tasks were imported")

// ImportCommand handles the import command
type ImportCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewImportCommand creates a new import command handler
func NewImportCommand(app *App) *ImportCommand {
	return &ImportCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the import command
func (c *ImportCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "import", "usage: ts import <file.xlsx|file.csv>")
	}

	result, err := c.app.businessAPI.ImportFile(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("import tasks", err)
	}

	c.printResult(result)
	if result.Outcome() == domain.ImportFailed {
		return ErrNothingImported
	}
	return nil
}

// printResult reports a failed, partial or complete import with the per-row errors
func (c *ImportCommand) printResult(result *domain.ImportResult) {
	switch result.Outcome() {
	case domain.ImportFailed:
		c.app.printf("%s\n", failureStyle.Render("Import failed"))
	case domain.ImportPartial:
		c.app.printf("%s\n", warningStyle.Render(fmt.Sprintf("Imported %d %s, %d failed",
			result.ImportedCount, plural(result.ImportedCount, "task"), result.FailedCount)))
	default:
		c.app.printf("%s\n", successStyle.Render(fmt.Sprintf("Imported %d %s",
			result.ImportedCount, plural(result.ImportedCount, "task"))))
	}

	if len(result.CreatedProjects) > 0 {
		c.app.printf("Created projects: %s\n", strings.Join(result.CreatedProjects, ", "))
	}
	for _, msg := range result.Errors {
		c.app.printf("  %s\n", msg)
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
