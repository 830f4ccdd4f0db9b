package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"timesheet/internal/api"
	"timesheet/internal/domain"
	"timesheet/internal/errors"
	"timesheet/internal/services"
	"timesheet/internal/timefmt"
)

// TaskAddOptions holds the task add flags
type TaskAddOptions struct {
	Type        string
	Project     string
	Date        string
	Start       string
	End         string
	Duration    string
	Description string
	Completed   bool
}

// TaskAddCommand handles the task add command
type TaskAddCommand struct {
	app          *App
	errorHandler *ErrorHandler
	opts         TaskAddOptions
}

// NewTaskAddCommand creates a new task add command handler
func NewTaskAddCommand(app *App) *TaskAddCommand {
	return &TaskAddCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
		opts:         TaskAddOptions{Type: string(domain.TaskTypeWork)},
	}
}

// BindFlags registers the task add flags
func (c *TaskAddCommand) BindFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.opts.Type, "type", string(domain.TaskTypeWork), "Task type: work or personal")
	flags.StringVar(&c.opts.Project, "project", "", "Project ID")
	flags.StringVar(&c.opts.Date, "date", "", "Day of the task (defaults to today)")
	flags.StringVar(&c.opts.Start, "start", "", "Start time, HH:MM")
	flags.StringVar(&c.opts.End, "end", "", "End time, HH:MM")
	flags.StringVar(&c.opts.Duration, "duration", "", "Duration, HH:MM (derived from --start and --end when omitted)")
	flags.StringVar(&c.opts.Description, "description", "", "Free text description")
	flags.BoolVar(&c.opts.Completed, "completed", false, "Record the task as already completed")
}

// Execute runs the task add command
func (c *TaskAddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "task add", "usage: ts task add <title> --type T --project ID")
	}

	input, err := c.input(strings.Join(args, " "))
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	task, err := c.app.businessAPI.CreateTask(ctx, input)
	if err != nil {
		return c.errorHandler.Handle("add task", err)
	}

	c.app.printf("Added task %d: %s (%s, %s)\n", task.ID, task.Title,
		timefmt.FormatDate(task.Date), timefmt.FormatOptionalMinutes(task.Duration))
	return nil
}

// input converts the flags into a TaskInput; malformed values are rejected here
func (c *TaskAddCommand) input(title string) (services.TaskInput, error) {
	taskType, err := parseTypeFlag(c.opts.Type)
	if err != nil {
		return services.TaskInput{}, err
	}

	input := services.TaskInput{
		Title:       title,
		Description: c.opts.Description,
		Type:        taskType,
		Date:        timefmt.StartOfDay(timeNow()),
		Status:      domain.TaskStatusPending,
	}
	if c.opts.Completed {
		input.Status = domain.TaskStatusCompleted
	}

	if c.opts.Project != "" {
		projectID, err := parseID("project", c.opts.Project)
		if err != nil {
			return services.TaskInput{}, err
		}
		input.ProjectID = &projectID
	}

	if c.opts.Date != "" {
		date, err := timefmt.ParseDate(c.opts.Date)
		if err != nil {
			return services.TaskInput{}, errors.NewInvalidInputError("date", c.opts.Date, "expected MM/DD/YYYY")
		}
		input.Date = date
	}

	if c.opts.Start != "" {
		if input.StartTime = timefmt.ParseTimeOn(input.Date, c.opts.Start); input.StartTime == nil {
			return services.TaskInput{}, errors.NewInvalidInputError("start", c.opts.Start, "expected HH:MM")
		}
	}
	if c.opts.End != "" {
		if input.EndTime = timefmt.ParseTimeOn(input.Date, c.opts.End); input.EndTime == nil {
			return services.TaskInput{}, errors.NewInvalidInputError("end", c.opts.End, "expected HH:MM")
		}
	}
	if c.opts.Duration != "" {
		minutes, ok := timefmt.ClockToMinutes(c.opts.Duration)
		if !ok {
			return services.TaskInput{}, errors.NewInvalidInputError("duration", c.opts.Duration, "expected HH:MM")
		}
		input.Duration = &minutes
	}

	return input, nil
}

// TaskListOptions holds the task list flags
type TaskListOptions struct {
	rangeOptions
	Type    string
	Project string
	Status  string
	Search  string
	All     bool
}

// TaskListCommand handles the task list command
type TaskListCommand struct {
	app          *App
	errorHandler *ErrorHandler
	opts         TaskListOptions
}

// NewTaskListCommand creates a new task list command handler
func NewTaskListCommand(app *App) *TaskListCommand {
	return &TaskListCommand{app: app, errorHandler: NewErrorHandler()}
}

// BindFlags registers the task list flags
func (c *TaskListCommand) BindFlags(flags *pflag.FlagSet) {
	c.opts.rangeOptions.bind(flags)
	flags.StringVar(&c.opts.Type, "type", "", "Only work or personal tasks")
	flags.StringVar(&c.opts.Project, "project", "", "Only tasks of this project ID")
	flags.StringVar(&c.opts.Status, "status", "", "Only pending or completed tasks")
	flags.StringVar(&c.opts.Search, "search", "", "Case-insensitive text in title or description")
	flags.BoolVar(&c.opts.All, "all", false, "List tasks of every date")
}

// Execute runs the task list command
func (c *TaskListCommand) Execute(ctx context.Context, args []string) error {
	criteria, err := c.criteria(ctx, args)
	if err != nil {
		return c.errorHandler.Handle("list tasks", err)
	}

	rows, err := c.app.businessAPI.ListTasks(ctx, criteria)
	if err != nil {
		return c.errorHandler.Handle("list tasks", err)
	}

	if len(rows) == 0 {
		c.app.printf("No tasks found\n")
		return nil
	}
	return c.printRows(rows)
}

func (c *TaskListCommand) criteria(ctx context.Context, args []string) (services.SearchCriteria, error) {
	taskType, err := parseTypeFlag(c.opts.Type)
	if err != nil {
		return services.SearchCriteria{}, err
	}

	criteria := services.SearchCriteria{
		Type:       taskType,
		TextFilter: strings.TrimSpace(strings.Join(append([]string{c.opts.Search}, args...), " ")),
	}

	switch strings.ToLower(strings.TrimSpace(c.opts.Status)) {
	case "":
	case string(domain.TaskStatusPending):
		criteria.Status = domain.TaskStatusPending
	case string(domain.TaskStatusCompleted):
		criteria.Status = domain.TaskStatusCompleted
	default:
		return services.SearchCriteria{}, errors.NewInvalidInputError("status", c.opts.Status, "must be pending or completed")
	}

	if c.opts.Project != "" {
		projectID, err := parseID("project", c.opts.Project)
		if err != nil {
			return services.SearchCriteria{}, err
		}
		criteria.ProjectID = &projectID
	}

	if !c.opts.All {
		dateRange, err := c.app.resolveRange(ctx, c.opts.From, c.opts.To, c.opts.Range)
		if err != nil {
			return services.SearchCriteria{}, err
		}
		criteria.Range = dateRange
	}

	return criteria, nil
}

func (c *TaskListCommand) printRows(rows []api.TaskRow) error {
	lines := make([][]string, len(rows))
	for i, row := range rows {
		task := row.Task
		lines[i] = []string{
			fmt.Sprint(task.ID),
			timefmt.FormatDate(task.Date),
			timefmt.FormatOptionalTime(task.StartTime),
			timefmt.FormatOptionalTime(task.EndTime),
			timefmt.FormatOptionalMinutes(task.Duration),
			task.Type.Display(),
			string(task.Status),
			row.ProjectName,
			task.Title,
		}
	}
	return table(c.app.out, []string{"ID", "Date", "Start", "End", "Duration", "Type", "Status", "Project", "Title"}, lines)
}

// TaskStatusCommand handles the task complete and task reopen commands
type TaskStatusCommand struct {
	app          *App
	errorHandler *ErrorHandler
	complete     bool
}

// NewTaskStatusCommand creates a handler that completes tasks, or reopens them when complete is false
func NewTaskStatusCommand(app *App, complete bool) *TaskStatusCommand {
	return &TaskStatusCommand{app: app, errorHandler: NewErrorHandler(), complete: complete}
}

// Execute runs the task complete or task reopen command
func (c *TaskStatusCommand) Execute(ctx context.Context, args []string) error {
	verb := "reopen"
	if c.complete {
		verb = "complete"
	}
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "task "+verb, "usage: ts task "+verb+" <id>")
	}
	id, err := parseID("task ID", args[0])
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	var task *domain.Task
	if c.complete {
		task, err = c.app.businessAPI.CompleteTask(ctx, id)
	} else {
		task, err = c.app.businessAPI.ReopenTask(ctx, id)
	}
	if err != nil {
		return c.errorHandler.Handle(verb+" task", err)
	}

	c.app.printf("Task %d is %s: %s\n", task.ID, task.Status, task.Title)
	return nil
}

// TaskDeleteCommand handles the task delete command
type TaskDeleteCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewTaskDeleteCommand creates a new task delete command handler
func NewTaskDeleteCommand(app *App) *TaskDeleteCommand {
	return &TaskDeleteCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the task delete command
func (c *TaskDeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "task delete", "usage: ts task delete <id>")
	}
	id, err := parseID("task ID", args[0])
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	if err := c.app.businessAPI.DeleteTask(ctx, id); err != nil {
		return c.errorHandler.Handle("delete task", err)
	}

	c.app.printf("Deleted task %d\n", id)
	return nil
}
