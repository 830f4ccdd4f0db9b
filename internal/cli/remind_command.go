package cli

import (
	"context"
	"strings"

	"github.com/spf13/pflag"

	"timesheet/internal/domain"
	"timesheet/internal/errors"
	"timesheet/internal/reminder"
)

// RemindSettingsOptions holds the remind settings flags
type RemindSettingsOptions struct {
	Enable  bool
	Disable bool
	Time    string
	Days    string
}

// RemindSettingsCommand shows or changes the end-of-day reminder settings
type RemindSettingsCommand struct {
	app          *App
	errorHandler *ErrorHandler
	opts         RemindSettingsOptions
}

// NewRemindSettingsCommand creates a new remind settings command handler
func NewRemindSettingsCommand(app *App) *RemindSettingsCommand {
	return &RemindSettingsCommand{app: app, errorHandler: NewErrorHandler()}
}

// BindFlags registers the remind settings flags
func (c *RemindSettingsCommand) BindFlags(flags *pflag.FlagSet) {
	flags.BoolVar(&c.opts.Enable, "enable", false, "Turn the reminder on")
	flags.BoolVar(&c.opts.Disable, "disable", false, "Turn the reminder off")
	flags.StringVar(&c.opts.Time, "time", "", "Reminder time, HH:MM")
	flags.StringVar(&c.opts.Days, "days", "", "Seven 0/1 flags, Sunday first, e.g. 0111110")
}

// Execute runs the remind settings command. Without flags the current settings are shown.
func (c *RemindSettingsCommand) Execute(ctx context.Context, args []string) error {
	if c.opts.Enable && c.opts.Disable {
		return errors.NewInvalidInputError("enable", true, "--enable and --disable are mutually exclusive")
	}

	settings, err := c.app.businessAPI.GetNotificationSettings(ctx)
	if err != nil {
		return c.errorHandler.Handle("load reminder settings", err)
	}

	if c.changed() {
		updated := *settings
		if c.opts.Enable {
			updated.Enabled = true
		}
		if c.opts.Disable {
			updated.Enabled = false
		}
		if c.opts.Time != "" {
			updated.Time = c.opts.Time
		}
		if c.opts.Days != "" {
			if len(c.opts.Days) != 7 || len(c.opts.Days) != len(onlyBits(c.opts.Days)) {
				return c.errorHandler.HandleSimple(errors.NewInvalidInputError("days", c.opts.Days, "expected seven 0/1 characters, Sunday first"))
			}
			updated.DaysEnabled = domain.ParseDays(c.opts.Days)
		}

		settings, err = c.app.businessAPI.SaveNotificationSettings(ctx, updated)
		if err != nil {
			return c.errorHandler.Handle("save reminder settings", err)
		}
	}

	c.print(settings)
	return nil
}

func (c *RemindSettingsCommand) changed() bool {
	return c.opts.Enable || c.opts.Disable || c.opts.Time != "" || c.opts.Days != ""
}

func onlyBits(s string) string {
	bits := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '0' || s[i] == '1' {
			bits = append(bits, s[i])
		}
	}
	return string(bits)
}

func (c *RemindSettingsCommand) print(settings *domain.NotificationSettings) {
	state := "disabled"
	if settings.Enabled {
		state = "enabled"
	}
	c.app.printf("Reminder %s at %s on %s\n", state, settings.Time, weekdayList(settings))
}

func weekdayList(settings *domain.NotificationSettings) string {
	names := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	var days []string
	for i, on := range settings.DaysEnabled {
		if on {
			days = append(days, names[i])
		}
	}
	if len(days) == 0 {
		return "no days"
	}
	if len(days) == len(names) {
		return "every day"
	}
	return strings.Join(days, ", ")
}

// RemindRunCommand schedules the end-of-day reminder and blocks until the context ends
type RemindRunCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewRemindRunCommand creates a new remind run command handler
func NewRemindRunCommand(app *App) *RemindRunCommand {
	return &RemindRunCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the remind run command
func (c *RemindRunCommand) Execute(ctx context.Context, args []string) error {
	settings, err := c.app.businessAPI.GetNotificationSettings(ctx)
	if err != nil {
		return c.errorHandler.Handle("load reminder settings", err)
	}

	loc, err := c.app.config.ReminderLocation()
	if err != nil {
		return c.errorHandler.HandleSimple(errors.NewInvalidInputError("reminder.timezone", c.app.config.Reminder.Timezone, err.Error()))
	}

	r := reminder.New(reminder.WriterNotifier{W: c.app.out},
		reminder.WithLocation(loc),
		reminder.WithMessage(c.app.config.Reminder.Message))
	if err := r.Start(*settings); err != nil {
		return c.errorHandler.Handle("schedule reminder", err)
	}
	defer r.Stop()

	if !r.Active() {
		c.app.printf("Reminder is disabled, nothing to schedule\n")
		return nil
	}
	if next, ok := r.Next(); ok {
		c.app.printf("Next reminder at %s, press Ctrl+C to stop\n", next.Format("Mon 01/02/2006 15:04"))
	}

	<-ctx.Done()
	return nil
}
