// Package reminder schedules the end-of-day reminder.
package reminder

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"timesheet/internal/domain"
	"timesheet/internal/logging"
	"timesheet/internal/timefmt"

	"github.com/robfig/cron/v3"
)

// Title heads every reminder notification.
const Title = "End of Day Reminder"

// DefaultMessage is the reminder body when none is configured.
const DefaultMessage = "Time to review your daily tasks and track your time"

// Notifier delivers a reminder to the user.
type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}

// WriterNotifier prints reminders as a line of text.
type WriterNotifier struct {
	W   io.Writer
	Now func() time.Time
}

// Notify writes "[HH:MM] title: message".
func (n WriterNotifier) Notify(_ context.Context, title, message string) error {
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	_, err := fmt.Fprintf(n.W, "[%s] %s: %s\n", timefmt.FormatTime(now()), title, message)
	return err
}

// Reminder owns at most one scheduled reminder job.
type Reminder struct {
	mu       sync.Mutex
	notifier Notifier
	location *time.Location
	message  string

	cron  *cron.Cron
	entry cron.EntryID
}

// Option configures a Reminder.
type Option func(*Reminder)

// WithLocation evaluates the reminder time in loc instead of the local zone.
func WithLocation(loc *time.Location) Option {
	return func(r *Reminder) {
		if loc != nil {
			r.location = loc
		}
	}
}

// WithMessage replaces the reminder body.
func WithMessage(message string) Option {
	return func(r *Reminder) {
		if strings.TrimSpace(message) != "" {
			r.message = message
		}
	}
}

// New creates an idle reminder that delivers through notifier.
func New(notifier Notifier, opts ...Option) *Reminder {
	r := &Reminder{
		notifier: notifier,
		location: time.Local,
		message:  DefaultMessage,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Spec converts settings into a six-field cron spec (seconds first). Weekdays are numbered
// from Sunday as in DaysEnabled.
func Spec(settings domain.NotificationSettings) (string, error) {
	hour, minute, ok := timefmt.ParseTimeOfDay(settings.Time)
	if !ok {
		return "", fmt.Errorf("invalid reminder time %q, expected HH:MM", settings.Time)
	}

	var days []string
	for day, on := range settings.DaysEnabled {
		if on {
			days = append(days, strconv.Itoa(day))
		}
	}
	if len(days) == 0 {
		return "", fmt.Errorf("no reminder days enabled")
	}

	dow := strings.Join(days, ",")
	if len(days) == len(settings.DaysEnabled) {
		dow = "*"
	}
	return fmt.Sprintf("0 %d %d * * %s", minute, hour, dow), nil
}

// Start schedules the reminder described by settings, replacing any job already scheduled.
// Disabled settings, or settings with no enabled day, leave the reminder stopped.
func (r *Reminder) Start(settings domain.NotificationSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopLocked()

	if !settings.Enabled || !settings.AnyDayEnabled() {
		logging.Debugln("reminder disabled, nothing scheduled")
		return nil
	}

	spec, err := Spec(settings)
	if err != nil {
		return err
	}

	c := cron.New(cron.WithLocation(r.location), cron.WithSeconds())
	entry, err := c.AddFunc(spec, r.fire)
	if err != nil {
		return fmt.Errorf("failed to schedule reminder: %w", err)
	}
	c.Start()

	r.cron = c
	r.entry = entry
	logging.Debugf("reminder scheduled with spec %q in %s", spec, r.location)
	return nil
}

// Stop cancels the scheduled reminder and waits for a running delivery to finish.
// It does nothing when no reminder is active.
func (r *Reminder) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
}

func (r *Reminder) stopLocked() {
	if r.cron == nil {
		return
	}
	<-r.cron.Stop().Done()
	r.cron = nil
	r.entry = 0
}

// Active reports whether a reminder is scheduled.
func (r *Reminder) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cron != nil
}

// Next returns the next time the reminder fires.
func (r *Reminder) Next() (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cron == nil {
		return time.Time{}, false
	}
	next := r.cron.Entry(r.entry).Next
	return next, !next.IsZero()
}

// Send delivers the reminder immediately.
func (r *Reminder) Send(ctx context.Context) error {
	return r.notifier.Notify(ctx, Title, r.message)
}

func (r *Reminder) fire() {
	if err := r.Send(context.Background()); err != nil {
		logging.Debugf("reminder delivery failed: %v", err)
	}
}
