package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"timesheet/internal/config"
	"timesheet/internal/logging"
)

// globalSettings are the persistent flags resolved before any command runs
type globalSettings struct {
	configFile string
	envFile    string
	overrides  *config.ConfigOverrides
}

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd *cobra.Command
	app *App
}

// commandSpec describes one leaf command; its handler is looked up in the registry by path
type commandSpec struct {
	path      string
	use       string
	short     string
	long      string
	args      cobra.PositionalArgs
	noTimeout bool
}

var commandSpecs = []commandSpec{
	{
		path:  "import",
		use:   "import <file.xlsx|file.csv>",
		short: "Import tasks from a spreadsheet",
		long: `Import tasks from the first sheet of an .xlsx workbook or from a .csv file.

The header row names the columns: Task Title, Description, Type, Project, Date,
Start Time, End Time, Duration (HH:MM), Status. Title, Type and Date are required.
Projects that do not exist yet are created. Invalid rows are reported and skipped.`,
		args: cobra.ExactArgs(1),
	},
	{
		path:  "export",
		use:   "export",
		short: "Export tasks to a workbook or PDF report",
		long: `Export the tasks of a date range with an optional statistics sheet.

Examples:
  ts export --from 01/01/2024 --to 01/31/2024
  ts export --range last-week --type work --format pdf`,
		args: cobra.NoArgs,
	},
	{
		path:  "export project",
		use:   "project <project-id>",
		short: "Export the tasks of one project",
		args:  cobra.ExactArgs(1),
	},
	{
		path:  "export weekly",
		use:   "weekly",
		short: "Export a per-day summary followed by the tasks",
		args:  cobra.NoArgs,
	},
	{
		path:  "stats",
		use:   "stats",
		short: "Show statistics for a date range",
		args:  cobra.NoArgs,
	},
	{
		path:  "timesheet",
		use:   "timesheet",
		short: "Show the Monday to Sunday timesheet of a week",
		args:  cobra.NoArgs,
	},
	{path: "task add", use: "add <title>", short: "Add a task", args: cobra.MinimumNArgs(1)},
	{path: "task list", use: "list [text]", short: "List tasks, this week by default"},
	{path: "task complete", use: "complete <id>", short: "Mark a task as completed", args: cobra.ExactArgs(1)},
	{path: "task reopen", use: "reopen <id>", short: "Mark a task as pending", args: cobra.ExactArgs(1)},
	{path: "task delete", use: "delete <id>", short: "Delete a task", args: cobra.ExactArgs(1)},
	{path: "project add", use: "add <name>", short: "Add a project", args: cobra.MinimumNArgs(1)},
	{path: "project list", use: "list", short: "List projects", args: cobra.NoArgs},
	{path: "project rename", use: "rename <id> <name>", short: "Rename a project", args: cobra.MinimumNArgs(2)},
	{path: "project recolor", use: "recolor <id> <#RRGGBB>", short: "Change a project colour", args: cobra.ExactArgs(2)},
	{
		path:  "project delete",
		use:   "delete <id>",
		short: "Delete a project; its tasks are kept without a project",
		args:  cobra.ExactArgs(1),
	},
	{path: "remind settings", use: "settings", short: "Show or change the end-of-day reminder", args: cobra.NoArgs},
	{
		path:      "remind run",
		use:       "run",
		short:     "Run the end-of-day reminder until interrupted",
		args:      cobra.NoArgs,
		noTimeout: true,
	},
}

var groupShort = map[string]string{
	"task":    "Manage tasks",
	"project": "Manage projects",
	"remind":  "End-of-day reminder",
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(app *App) *RootCommand {
	root := &RootCommand{app: app}

	root.cmd = &cobra.Command{
		Use:   "ts",
		Short: "A personal task and timesheet tracker",
		Long: `Timesheet (ts) records work and personal tasks, imports and exports them as
spreadsheets, and reports where the time went.

EXAMPLES:
  ts import tasks.xlsx                           # Import a spreadsheet
  ts export --range week --format pdf            # This week as a PDF report
  ts task add "Write report" --project 1 --start 09:00 --end 10:30
  ts timesheet --type work                       # This week's work timesheet

CONFIGURATION:
  Priority: command-line flags > environment > .env file > config file > defaults.
  The config file is ~/.ts/config.yaml unless --config is given.

  TS_DB_DIR, TS_DB_FILENAME, TS_DB_QUERY_TIMEOUT, TS_DB_BUSY_TIMEOUT
  TS_IMPORT_STRICT_TYPES, TS_IMPORT_COLOR_SEED
  TS_EXPORT_DIR, TS_EXPORT_FORMAT
  TS_REMINDER_MESSAGE, TS_REMINDER_TIMEZONE
  TS_VALIDATION_TITLE_MAX, TS_VALIDATION_PROJECT_NAME_MAX, TS_VALIDATION_MAX_DURATION
  TS_APP_TIMEOUT, TS_APP_VERBOSE, TS_DEBUG`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := app.configure(cmd.Context(), root.globalSettings()); err != nil {
				return err
			}
			logging.SetVerbose(app.config.Application.Verbose)
			return nil
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "Config file (default ~/.ts/config.yaml)")
	flags.String("env-file", "", "Dotenv file (default ./.env)")

	// Database configuration
	flags.String("db-dir", "", "Database directory (overrides TS_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides TS_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides TS_DB_QUERY_TIMEOUT)")

	// Import configuration
	flags.Bool("strict-types", false, "Reject rows whose Type is not Work or Personal (overrides TS_IMPORT_STRICT_TYPES)")
	flags.Int64("color-seed", 0, "Seed for new project colours (overrides TS_IMPORT_COLOR_SEED)")

	// Export configuration
	flags.String("export-dir", "", "Default export directory (overrides TS_EXPORT_DIR)")
	flags.String("export-format", "", "Default export format, xlsx or pdf (overrides TS_EXPORT_FORMAT)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Application timeout (overrides TS_APP_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "Enable debug output (overrides TS_APP_VERBOSE)")
}

// addSubcommands builds the command tree from commandSpecs and binds handler flags
func (r *RootCommand) addSubcommands() {
	parents := map[string]*cobra.Command{"": r.cmd}

	for _, spec := range commandSpecs {
		handler, ok := r.app.registry.Get(spec.path)
		if !ok {
			continue
		}

		cmd := &cobra.Command{
			Use:   spec.use,
			Short: spec.short,
			Long:  spec.long,
			Args:  spec.args,
			RunE:  r.run(handler, spec.noTimeout),
		}
		if binder, ok := handler.(FlagBinder); ok {
			binder.BindFlags(cmd.Flags())
		}

		parent := r.parent(parents, spec.path)
		parent.AddCommand(cmd)
		parents[spec.path] = cmd
	}
}

// parent returns the command a path hangs under, creating group commands as needed
func (r *RootCommand) parent(parents map[string]*cobra.Command, path string) *cobra.Command {
	i := strings.LastIndex(path, " ")
	if i < 0 {
		return r.cmd
	}

	parentPath := path[:i]
	if cmd, ok := parents[parentPath]; ok {
		return cmd
	}

	group := &cobra.Command{
		Use:   parentPath[strings.LastIndex(parentPath, " ")+1:],
		Short: groupShort[parentPath],
	}
	r.parent(parents, parentPath).AddCommand(group)
	parents[parentPath] = group
	return group
}

func (r *RootCommand) run(handler Command, noTimeout bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if !noTimeout {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, r.app.appTimeout())
			defer cancel()
		}
		return handler.Execute(ctx, args)
	}
}

// globalSettings collects the persistent flags the user actually set
func (r *RootCommand) globalSettings() globalSettings {
	flags := r.cmd.PersistentFlags()
	settings := globalSettings{overrides: &config.ConfigOverrides{}}
	o := settings.overrides

	settings.configFile, _ = flags.GetString("config")
	settings.envFile, _ = flags.GetString("env-file")

	if flags.Changed("db-dir") {
		v, _ := flags.GetString("db-dir")
		o.DBDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		o.DBFilename = &v
	}
	if flags.Changed("db-query-timeout") {
		v, _ := flags.GetDuration("db-query-timeout")
		o.DBQueryTimeout = &v
	}
	if flags.Changed("strict-types") {
		v, _ := flags.GetBool("strict-types")
		o.StrictTypes = &v
	}
	if flags.Changed("color-seed") {
		v, _ := flags.GetInt64("color-seed")
		o.ColorSeed = &v
	}
	if flags.Changed("export-dir") {
		v, _ := flags.GetString("export-dir")
		o.ExportDir = &v
	}
	if flags.Changed("export-format") {
		v, _ := flags.GetString("export-format")
		o.ExportFormat = &v
	}
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		o.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		o.Verbose = &v
	}

	return settings
}
