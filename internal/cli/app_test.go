package cli

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timesheet/internal/api"
	"timesheet/internal/config"
	"timesheet/internal/domain"
	"timesheet/internal/errors"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestNewApp(t *testing.T) {
	mockAPI := newMockBusinessAPI()

	app := NewApp(mockAPI)

	assert.NotNil(t, app)
	assert.Equal(t, mockAPI, app.businessAPI)
	assert.NotNil(t, app.config)
	assert.NotNil(t, app.registry)
}

func TestApp_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("runs a nested command with flags", func(t *testing.T) {
		app, mockAPI, out := setupTestAppWithMockBusinessAPI(t)

		err := app.Run(ctx, []string{"project", "add", "Garden", "--type", "personal", "--color", "#FFEAA7"})

		require.NoError(t, err)
		require.Contains(t, mockAPI.projects, int64(1))
		assert.Equal(t, domain.TaskTypePersonal, mockAPI.projects[1].Type)
		assert.Equal(t, "#FFEAA7", mockAPI.projects[1].Color)
		assert.Contains(t, out.String(), "Added project 1")
	})

	t.Run("global flags override configuration", func(t *testing.T) {
		app, _, _ := setupTestAppWithMockBusinessAPI(t)
		dir := t.TempDir()

		err := app.Run(ctx, []string{"--export-dir", dir, "export", "--from", "01/01/2024", "--to", "01/31/2024"})

		require.NoError(t, err)
		assert.Equal(t, dir, app.config.Export.OutputDir)
		assert.FileExists(t, filepath.Join(dir, "Tasks_All_2024-01-01_to_2024-01-31.xlsx"))
	})

	t.Run("export subcommands are routed", func(t *testing.T) {
		app, mockAPI, _ := setupTestAppWithMockBusinessAPI(t)

		err := app.Run(ctx, []string{"export", "weekly", "--range", "week", "--out", t.TempDir()})

		require.NoError(t, err)
		assert.Equal(t, []string{"weekly"}, mockAPI.exportCalls)
	})

	t.Run("argument count is checked by cobra", func(t *testing.T) {
		app, _, _ := setupTestAppWithMockBusinessAPI(t)

		err := app.Run(ctx, []string{"task", "complete"})

		assert.Error(t, err)
	})

	t.Run("unknown command", func(t *testing.T) {
		app, _, _ := setupTestAppWithMockBusinessAPI(t)

		err := app.Run(ctx, []string{"start", "Task"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown command")
	})
}

func TestNewDefaultApp_LoadsConfigAndConnects(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("import:\n  color_seed: 5\nreminder:\n  message: Log your day\n"), 0o644))

	var seen *config.Config
	closed := false
	app := NewDefaultApp(func(ctx context.Context, cfg *config.Config) (api.BusinessAPI, io.Closer, error) {
		seen = cfg
		return newMockBusinessAPI(), closerFunc(func() error { closed = true; return nil }), nil
	})
	out := &bytes.Buffer{}
	app.SetOutput(out)

	err := app.Run(context.Background(), []string{"--config", configFile, "--db-filename", ":memory:", "project", "list"})

	require.NoError(t, err)
	require.NotNil(t, seen)
	assert.Equal(t, int64(5), seen.Import.ColorSeed)
	assert.Equal(t, "Log your day", seen.Reminder.Message)
	assert.Equal(t, ":memory:", seen.Database.Filename)
	assert.Equal(t, "No projects found\n", out.String())

	require.NoError(t, app.Close())
	assert.True(t, closed)
	assert.NoError(t, app.Close())
}

func TestNewDefaultApp_MissingEnvFile(t *testing.T) {
	connected := false
	app := NewDefaultApp(func(ctx context.Context, cfg *config.Config) (api.BusinessAPI, io.Closer, error) {
		connected = true
		return newMockBusinessAPI(), nil, nil
	})
	app.SetOutput(io.Discard)

	err := app.Run(context.Background(), []string{"--env-file", filepath.Join(t.TempDir(), "missing.env"), "stats"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "env_file")
	assert.False(t, connected)
}

func TestNewDefaultApp_ConnectFailure(t *testing.T) {
	app := NewDefaultApp(func(ctx context.Context, cfg *config.Config) (api.BusinessAPI, io.Closer, error) {
		return nil, nil, stderrors.New("failed to initialize database")
	})
	app.SetOutput(io.Discard)

	err := app.Run(context.Background(), []string{"--db-filename", ":memory:", "stats"})

	require.Error(t, err)
	assert.Equal(t, "failed to initialize database", err.Error())
	assert.NoError(t, app.Close())
}

func TestResolveRange(t *testing.T) {
	withFixedNow(t, time.Date(2024, 1, 17, 12, 0, 0, 0, time.Local))
	app, _, _ := setupTestAppWithMockBusinessAPI(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		from, to  string
		named     string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"explicit range", "01/01/2024", "01/31/2024", "", date(2024, 1, 1), date(2024, 1, 31)},
		{"single day", "2024-01-05", "", "", date(2024, 1, 5), date(2024, 1, 5)},
		{"named range", "", "", "yesterday", date(2024, 1, 16), date(2024, 1, 16)},
		{"default week", "", "", "", date(2024, 1, 15), date(2024, 1, 21)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dateRange, err := app.resolveRange(ctx, tt.from, tt.to, tt.named)

			require.NoError(t, err)
			assert.True(t, dateRange.Start.Equal(tt.wantStart), "start %v", dateRange.Start)
			y, m, d := dateRange.End.Date()
			assert.Equal(t, tt.wantEnd, time.Date(y, m, d, 0, 0, 0, 0, time.Local))
		})
	}

	_, err := app.resolveRange(ctx, "", "01/31/2024", "")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
}

func TestParseHelpers(t *testing.T) {
	id, err := parseID("task ID", " 12 ")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	for _, bad := range []string{"", "-1", "0", "1.5", "abc"} {
		_, err := parseID("task ID", bad)
		assert.Error(t, err, bad)
	}

	taskType, err := parseTypeFlag("")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskType(""), taskType)

	taskType, err = parseTypeFlag("WORK")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskTypeWork, taskType)

	_, err = parseTypeFlag("meeting")
	assert.Error(t, err)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}
