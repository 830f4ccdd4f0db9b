package reminder

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"timesheet/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(_ context.Context, title, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, title+": "+message)
	return nil
}

func settings(enabled bool, at string, days [7]bool) domain.NotificationSettings {
	return domain.NotificationSettings{Enabled: enabled, Time: at, DaysEnabled: days}
}

var everyDay = [7]bool{true, true, true, true, true, true, true}

func TestSpec(t *testing.T) {
	tests := []struct {
		name     string
		settings domain.NotificationSettings
		expected string
		wantErr  bool
	}{
		{"default", domain.DefaultNotificationSettings(), "0 0 20 * * *", false},
		{"weekdays", settings(true, "17:45", [7]bool{false, true, true, true, true, true, false}), "0 45 17 * * 1,2,3,4,5", false},
		{"sunday only", settings(true, "08:05", [7]bool{true}), "0 5 8 * * 0", false},
		{"bad time", settings(true, "25:00", everyDay), "", true},
		{"placeholder time", settings(true, "-", everyDay), "", true},
		{"no days", settings(true, "20:00", [7]bool{}), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := Spec(tt.settings)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, spec)
		})
	}
}

func TestReminder_StopWithoutStart(t *testing.T) {
	r := New(&recordingNotifier{})

	assert.NotPanics(t, r.Stop)
	assert.False(t, r.Active())
	_, ok := r.Next()
	assert.False(t, ok)
}

func TestReminder_StartReplacesPreviousJob(t *testing.T) {
	loc := time.FixedZone("test", 2*60*60)
	r := New(&recordingNotifier{}, WithLocation(loc))
	t.Cleanup(r.Stop)

	require.NoError(t, r.Start(settings(true, "06:00", everyDay)))
	require.NoError(t, r.Start(settings(true, "21:30", everyDay)))
	assert.True(t, r.Active())

	next, ok := r.Next()
	require.True(t, ok)
	next = next.In(loc)
	assert.Equal(t, 21, next.Hour())
	assert.Equal(t, 30, next.Minute())

	r.Stop()
	assert.False(t, r.Active())
	r.Stop()
}

func TestReminder_DisabledSettingsStopReminder(t *testing.T) {
	r := New(&recordingNotifier{})
	t.Cleanup(r.Stop)

	require.NoError(t, r.Start(domain.DefaultNotificationSettings()))
	require.True(t, r.Active())

	require.NoError(t, r.Start(settings(false, "20:00", everyDay)))
	assert.False(t, r.Active())

	require.NoError(t, r.Start(settings(true, "20:00", [7]bool{})))
	assert.False(t, r.Active())
}

func TestReminder_InvalidTimeLeavesReminderStopped(t *testing.T) {
	r := New(&recordingNotifier{})
	t.Cleanup(r.Stop)

	require.NoError(t, r.Start(domain.DefaultNotificationSettings()))
	assert.Error(t, r.Start(settings(true, "noon", everyDay)))
	assert.False(t, r.Active())
}

func TestReminder_NextSkipsDisabledDays(t *testing.T) {
	r := New(&recordingNotifier{})
	t.Cleanup(r.Stop)

	saturday := [7]bool{false, false, false, false, false, false, true}
	require.NoError(t, r.Start(settings(true, "10:00", saturday)))

	next, ok := r.Next()
	require.True(t, ok)
	assert.Equal(t, time.Saturday, next.Weekday())
}

func TestReminder_Send(t *testing.T) {
	notifier := &recordingNotifier{}
	r := New(notifier, WithMessage("Log your hours"))

	require.NoError(t, r.Send(context.Background()))
	r.fire()

	assert.Equal(t, []string{
		"End of Day Reminder: Log your hours",
		"End of Day Reminder: Log your hours",
	}, notifier.messages)
}

func TestWriterNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := WriterNotifier{W: &buf, Now: func() time.Time { return time.Date(2024, 1, 2, 20, 0, 0, 0, time.Local) }}

	require.NoError(t, n.Notify(context.Background(), Title, DefaultMessage))
	assert.Equal(t, "[20:00] End of Day Reminder: Time to review your daily tasks and track your time\n", buf.String())
}
