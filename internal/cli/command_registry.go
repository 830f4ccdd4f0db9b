package cli

import (
	"context"
	"sort"
	"strings"

	"github.com/spf13/pflag"

	"timesheet/internal/errors"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// FlagBinder is implemented by commands that take flags
type FlagBinder interface {
	BindFlags(flags *pflag.FlagSet)
}

// CommandRegistry manages all available commands, keyed by their path below the root
// such as "import" or "task add".
type CommandRegistry struct {
	commands map[string]Command
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]Command),
	}

	// Spreadsheets
	registry.Register("import", NewImportCommand(app))
	registry.Register("export", NewExportCommand(app))
	registry.Register("export project", NewExportProjectCommand(app))
	registry.Register("export weekly", NewExportWeeklyCommand(app))

	// Reporting
	registry.Register("stats", NewStatsCommand(app))
	registry.Register("timesheet", NewTimesheetCommand(app))

	// Tasks
	registry.Register("task add", NewTaskAddCommand(app))
	registry.Register("task list", NewTaskListCommand(app))
	registry.Register("task complete", NewTaskStatusCommand(app, true))
	registry.Register("task reopen", NewTaskStatusCommand(app, false))
	registry.Register("task delete", NewTaskDeleteCommand(app))

	// Projects
	registry.Register("project add", NewProjectAddCommand(app))
	registry.Register("project list", NewProjectListCommand(app))
	registry.Register("project rename", NewProjectRenameCommand(app))
	registry.Register("project recolor", NewProjectRecolorCommand(app))
	registry.Register("project delete", NewProjectDeleteCommand(app))

	// Reminder
	registry.Register("remind settings", NewRemindSettingsCommand(app))
	registry.Register("remind run", NewRemindRunCommand(app))

	return registry
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(name string, command Command) {
	r.commands[name] = command
}

// Get returns the command registered under name
func (r *CommandRegistry) Get(name string) (Command, bool) {
	command, ok := r.commands[name]
	return command, ok
}

// Execute runs the specified command with the given arguments
func (r *CommandRegistry) Execute(ctx context.Context, commandName string, args []string) error {
	command, exists := r.commands[commandName]
	if !exists {
		return errors.NewInvalidInputError("command", commandName, "unknown command")
	}
	return command.Execute(ctx, args)
}

// Names returns every registered command path in sorted order
func (r *CommandRegistry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetUsage returns the usage string for the CLI
func (r *CommandRegistry) GetUsage() string {
	return "usage: ts " + strings.Join(r.Names(), " | ts ")
}
