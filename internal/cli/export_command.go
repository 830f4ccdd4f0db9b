package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"timesheet/internal/errors"
	"timesheet/internal/services"
)

// rangeOptions are the date-range flags shared by reporting commands
type rangeOptions struct {
	From  string
	To    string
	Range string
}

func (o *rangeOptions) bind(flags *pflag.FlagSet) {
	flags.StringVar(&o.From, "from", "", "First day, MM/DD/YYYY or YYYY-MM-DD")
	flags.StringVar(&o.To, "to", "", "Last day, MM/DD/YYYY or YYYY-MM-DD (defaults to --from)")
	flags.StringVar(&o.Range, "range", "", "Named range: today, yesterday, week, last-week, month, year")
}

// ExportOptions holds the export command flags
type ExportOptions struct {
	rangeOptions
	Type       string
	Projects   bool
	Statistics bool
	Format     string
	OutDir     string
}

// ExportCommand handles the export command
type ExportCommand struct {
	app          *App
	errorHandler *ErrorHandler
	opts         ExportOptions
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
		opts:         ExportOptions{Projects: true, Statistics: true},
	}
}

// BindFlags registers the export flags
func (c *ExportCommand) BindFlags(flags *pflag.FlagSet) {
	c.opts.rangeOptions.bind(flags)
	flags.StringVar(&c.opts.Type, "type", string(services.TypeFilterAll), "Task type: all, work or personal")
	flags.BoolVar(&c.opts.Projects, "projects", true, "Include the project breakdown in the statistics sheet")
	flags.BoolVar(&c.opts.Statistics, "statistics", true, "Include a statistics sheet")
	flags.StringVar(&c.opts.Format, "format", "", "Output format: xlsx or pdf (defaults to export.default_format)")
	flags.StringVar(&c.opts.OutDir, "out", "", "Output directory (defaults to export.output_dir)")
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.NewInvalidInputError("command", "export", "usage: ts export --from DATE --to DATE [--type all|work|personal]")
	}

	dateRange, err := c.app.resolveRange(ctx, c.opts.From, c.opts.To, c.opts.Range)
	if err != nil {
		return c.errorHandler.Handle("export tasks", err)
	}

	format := c.opts.Format
	if format == "" {
		format = c.app.config.Export.DefaultFormat
	}

	file, err := c.app.businessAPI.ExportTasks(ctx, services.ExportConfig{
		Start:             dateRange.Start,
		End:               dateRange.End,
		Type:              services.TypeFilter(c.opts.Type),
		IncludeProjects:   c.opts.Projects,
		IncludeStatistics: c.opts.Statistics,
	}, format)
	if err != nil {
		return c.errorHandler.Handle("export tasks", err)
	}

	return writeExport(c.app, c.opts.OutDir, file)
}

// ExportProjectCommand handles the export project command
type ExportProjectCommand struct {
	app          *App
	errorHandler *ErrorHandler
	opts         rangeOptions
	outDir       string
}

// NewExportProjectCommand creates a new export project command handler
func NewExportProjectCommand(app *App) *ExportProjectCommand {
	return &ExportProjectCommand{app: app, errorHandler: NewErrorHandler()}
}

// BindFlags registers the export project flags
func (c *ExportProjectCommand) BindFlags(flags *pflag.FlagSet) {
	c.opts.bind(flags)
	flags.StringVar(&c.outDir, "out", "", "Output directory (defaults to export.output_dir)")
}

// Execute runs the export project command
func (c *ExportProjectCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "export project", "usage: ts export project <project-id> --from DATE --to DATE")
	}
	projectID, err := parseID("project ID", args[0])
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	dateRange, err := c.app.resolveRange(ctx, c.opts.From, c.opts.To, c.opts.Range)
	if err != nil {
		return c.errorHandler.Handle("export project tasks", err)
	}

	file, err := c.app.businessAPI.ExportProjectTasks(ctx, projectID, dateRange.Start, dateRange.End)
	if err != nil {
		return c.errorHandler.Handle("export project tasks", err)
	}

	return writeExport(c.app, c.outDir, file)
}

// ExportWeeklyCommand handles the export weekly command
type ExportWeeklyCommand struct {
	app          *App
	errorHandler *ErrorHandler
	opts         rangeOptions
	outDir       string
}

// NewExportWeeklyCommand creates a new export weekly command handler
func NewExportWeeklyCommand(app *App) *ExportWeeklyCommand {
	return &ExportWeeklyCommand{app: app, errorHandler: NewErrorHandler()}
}

// BindFlags registers the export weekly flags
func (c *ExportWeeklyCommand) BindFlags(flags *pflag.FlagSet) {
	c.opts.bind(flags)
	flags.StringVar(&c.outDir, "out", "", "Output directory (defaults to export.output_dir)")
}

// Execute runs the export weekly command
func (c *ExportWeeklyCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.NewInvalidInputError("command", "export weekly", "usage: ts export weekly --from DATE --to DATE")
	}

	dateRange, err := c.app.resolveRange(ctx, c.opts.From, c.opts.To, c.opts.Range)
	if err != nil {
		return c.errorHandler.Handle("export weekly summary", err)
	}

	file, err := c.app.businessAPI.ExportWeeklySummary(ctx, dateRange.Start, dateRange.End)
	if err != nil {
		return c.errorHandler.Handle("export weekly summary", err)
	}

	return writeExport(c.app, c.outDir, file)
}

// writeExport stores a fully rendered export; nothing is written when rendering failed
func writeExport(app *App, outDir string, file *services.ExportFile) error {
	if outDir == "" {
		outDir = app.config.Export.OutputDir
	}
	if outDir == "" {
		outDir = "."
	}

	path := filepath.Join(outDir, file.Filename)
	if err := os.WriteFile(path, file.Data, 0o644); err != nil {
		return NewErrorHandler().Handle("write export", errors.NewExportError("write file", err).WithContext("file", path))
	}

	app.printf("Exported %s (%s)\n", path, humanize.Bytes(uint64(len(file.Data))))
	return nil
}
