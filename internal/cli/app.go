package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"timesheet/internal/api"
	"timesheet/internal/config"
	"timesheet/internal/domain"
	"timesheet/internal/errors"
	"timesheet/internal/services"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// Connector opens the BusinessAPI once configuration is final. The returned closer
// releases the underlying store.
type Connector func(ctx context.Context, cfg *config.Config) (api.BusinessAPI, io.Closer, error)

// App represents the main CLI application
type App struct {
	businessAPI api.BusinessAPI
	config      *config.Config
	connect     Connector
	closer      io.Closer
	out         io.Writer
	registry    *CommandRegistry
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(businessAPI api.BusinessAPI) *App {
	return NewAppWithConfig(businessAPI, config.NewConfig())
}

// NewAppWithConfig creates a CLI application around an existing BusinessAPI and configuration
func NewAppWithConfig(businessAPI api.BusinessAPI, cfg *config.Config) *App {
	app := &App{
		businessAPI: businessAPI,
		config:      cfg,
		out:         os.Stdout,
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// NewDefaultApp creates the production application. Configuration is loaded from file,
// .env and environment once flags are parsed; connect is called after that.
func NewDefaultApp(connect Connector) *App {
	app := NewAppWithConfig(nil, nil)
	app.connect = connect
	return app
}

// SetOutput redirects command output
func (a *App) SetOutput(w io.Writer) {
	a.out = w
}

// Run executes the CLI application with the given arguments
func (a *App) Run(ctx context.Context, args []string) error {
	root := NewRootCommand(a)
	root.cmd.SetArgs(args)
	root.cmd.SetOut(a.out)
	return root.cmd.ExecuteContext(ctx)
}

// Close releases the store opened by the connector, if any
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

// configure finalises configuration and opens the BusinessAPI when it was not injected.
func (a *App) configure(ctx context.Context, settings globalSettings) error {
	if a.connect != nil {
		loader := config.NewLoader()
		if settings.configFile != "" {
			loader.WithConfigFile(settings.configFile)
		}
		if settings.envFile != "" {
			loader.WithEnvFile(settings.envFile)
		}
		cfg, err := loader.LoadWithOverrides(settings.overrides)
		if err != nil {
			return err
		}
		a.config = cfg
	} else {
		if a.config == nil {
			a.config = config.NewConfig()
		}
		settings.overrides.Apply(a.config)
	}

	if a.businessAPI != nil || a.connect == nil {
		return nil
	}

	businessAPI, closer, err := a.connect(ctx, a.config)
	if err != nil {
		return err
	}
	a.businessAPI = businessAPI
	a.closer = closer
	return nil
}

func (a *App) appTimeout() time.Duration {
	if a.config != nil && a.config.Application.Timeout > 0 {
		return a.config.Application.Timeout
	}
	return 60 * time.Second
}

// resolveRange turns --from/--to or a named range into an inclusive date range.
// With neither given the current week is used.
func (a *App) resolveRange(ctx context.Context, from, to, named string) (*services.DateRange, error) {
	switch {
	case from != "" || to != "":
		if from == "" {
			return nil, errors.NewInvalidInputError("from", from, "--from is required with --to")
		}
		if to == "" {
			to = from
		}
		return a.businessAPI.ParseDateRange(ctx, from, to)
	case named != "":
		return a.businessAPI.ParseNamedRange(ctx, named)
	default:
		return a.businessAPI.ParseNamedRange(ctx, "week")
	}
}

// parseID parses a positive numeric identifier argument
func parseID(field, arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidInputError(field, arg, "must be a positive number")
	}
	return id, nil
}

// parseTypeFlag accepts work or personal in any case; empty means no filter
func parseTypeFlag(value string) (domain.TaskType, error) {
	if strings.TrimSpace(value) == "" {
		return "", nil
	}
	taskType, ok := domain.ParseTaskTypeStrict(value)
	if !ok {
		return "", errors.NewInvalidInputError("type", value, "must be work or personal")
	}
	return taskType, nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
