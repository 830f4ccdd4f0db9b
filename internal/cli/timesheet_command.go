package cli

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"timesheet/internal/errors"
	"timesheet/internal/services"
	"timesheet/internal/timefmt"
)

// TimesheetCommand handles the timesheet command
type TimesheetCommand struct {
	app          *App
	errorHandler *ErrorHandler
	week         string
	taskType     string
}

// NewTimesheetCommand creates a new timesheet command handler
func NewTimesheetCommand(app *App) *TimesheetCommand {
	return &TimesheetCommand{app: app, errorHandler: NewErrorHandler()}
}

// BindFlags registers the timesheet flags
func (c *TimesheetCommand) BindFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.week, "week", "", "Any day of the week to show (defaults to today)")
	flags.StringVar(&c.taskType, "type", "", "Only work or personal tasks")
}

// Execute runs the timesheet command
func (c *TimesheetCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.NewInvalidInputError("command", "timesheet", "usage: ts timesheet [--week DATE] [--type work|personal]")
	}

	date := timefmt.StartOfDay(timeNow())
	if c.week != "" {
		parsed, err := timefmt.ParseDate(c.week)
		if err != nil {
			return c.errorHandler.HandleSimple(errors.NewInvalidInputError("week", c.week, "expected MM/DD/YYYY"))
		}
		date = parsed
	}

	taskType, err := parseTypeFlag(c.taskType)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	week, err := c.app.businessAPI.GetTimesheetWeek(ctx, date, taskType)
	if err != nil {
		return c.errorHandler.Handle("load timesheet", err)
	}

	names, err := c.app.businessAPI.ProjectNames(ctx)
	if err != nil {
		return c.errorHandler.Handle("load timesheet", err)
	}

	c.printWeek(week, names)
	return nil
}

func (c *TimesheetCommand) printWeek(week *services.TimesheetWeek, names map[int64]string) {
	c.app.printf("%s\n", heading(fmt.Sprintf("Week of %s to %s",
		timefmt.FormatDate(week.Start), timefmt.FormatDate(week.End))))

	for _, day := range week.Days {
		c.app.printf("\n%s  %s  (%s)\n", day.Date.Format("Mon"), timefmt.FormatDate(day.Date),
			timefmt.MinutesToClock(day.TotalDuration))
		if len(day.Tasks) == 0 {
			c.app.printf("  -\n")
			continue
		}
		for _, task := range day.Tasks {
			mark := " "
			if task.IsCompleted() {
				mark = "x"
			}
			project := services.NoProjectName
			if task.ProjectID != nil {
				project = names[*task.ProjectID]
				if project == "" {
					project = services.NotApplicableName
				}
			}
			c.app.printf("  [%s] %s  %s  %s  %s\n", mark, timefmt.FormatOptionalMinutes(task.Duration),
				task.Type.Display(), task.Title, project)
		}
	}

	totals := week.Totals
	c.app.printf("\nTotal %s (work %s, personal %s), %d of %d completed\n",
		timefmt.MinutesToClock(totals.TotalDuration),
		timefmt.MinutesToClock(totals.WorkDuration),
		timefmt.MinutesToClock(totals.PersonalDuration),
		totals.CompletedTasks, totals.TotalTasks)
}
