package cli

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"timesheet/internal/domain"
	"timesheet/internal/errors"
	"timesheet/internal/timefmt"
)

// StatsCommand handles the stats command
type StatsCommand struct {
	app          *App
	errorHandler *ErrorHandler
	opts         rangeOptions
}

// NewStatsCommand creates a new stats command handler
func NewStatsCommand(app *App) *StatsCommand {
	return &StatsCommand{app: app, errorHandler: NewErrorHandler()}
}

// BindFlags registers the stats flags
func (c *StatsCommand) BindFlags(flags *pflag.FlagSet) {
	c.opts.bind(flags)
}

// Execute runs the stats command
func (c *StatsCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.NewInvalidInputError("command", "stats", "usage: ts stats --from DATE --to DATE")
	}

	dateRange, err := c.app.resolveRange(ctx, c.opts.From, c.opts.To, c.opts.Range)
	if err != nil {
		return c.errorHandler.Handle("get statistics", err)
	}

	stats, err := c.app.businessAPI.GetStatistics(ctx, dateRange.Start, dateRange.End)
	if err != nil {
		return c.errorHandler.Handle("get statistics", err)
	}

	names, err := c.app.businessAPI.ProjectNames(ctx)
	if err != nil {
		return c.errorHandler.Handle("get statistics", err)
	}

	c.app.printf("%s\n", heading(fmt.Sprintf("Statistics %s to %s",
		timefmt.FormatDate(dateRange.Start), timefmt.FormatDate(dateRange.End))))
	return c.printStatistics(stats, names)
}

func (c *StatsCommand) printStatistics(stats *domain.Statistics, names map[int64]string) error {
	rows := [][]string{
		{"Total Tasks", fmt.Sprint(stats.TotalTasks)},
		{"Completed Tasks", fmt.Sprint(stats.CompletedTasks)},
		{"Completion Rate", fmt.Sprintf("%d%%", stats.CompletionRate())},
		{"Total Duration", timefmt.MinutesToClock(stats.TotalDuration)},
		{"Work Duration", timefmt.MinutesToClock(stats.WorkDuration)},
		{"Personal Duration", timefmt.MinutesToClock(stats.PersonalDuration)},
	}
	if err := table(c.app.out, []string{"Metric", "Value"}, rows); err != nil {
		return err
	}

	if len(stats.ProjectBreakdown) == 0 {
		return nil
	}

	c.app.printf("\n%s\n", heading("Project Breakdown"))
	breakdown := make([][]string, len(stats.ProjectBreakdown))
	for i, entry := range stats.ProjectBreakdown {
		name, ok := names[entry.ProjectID]
		if !ok {
			name = "Unknown Project"
		}
		breakdown[i] = []string{name, timefmt.MinutesToClock(entry.Minutes)}
	}
	return table(c.app.out, []string{"Project", "Duration"}, breakdown)
}
