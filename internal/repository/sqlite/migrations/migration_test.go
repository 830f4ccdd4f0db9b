package migrations

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openMemoryDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunMigrations_FreshDatabase(t *testing.T) {
	ctx := context.Background()
	db := openMemoryDB(t)

	require.NoError(t, RunMigrations(ctx, db))

	for _, table := range []string{"projects", "tasks", "notification_settings"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}

	version, err := CurrentVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 2, version)

	var enabled bool
	var reminderTime, days string
	err = db.QueryRow("SELECT enabled, time, days FROM notification_settings WHERE id = 1").Scan(&enabled, &reminderTime, &days)
	require.NoError(t, err)
	assert.True(t, enabled)
	assert.Equal(t, "20:00", reminderTime)
	assert.Equal(t, "1111111", days)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	ctx := context.Background()
	db := openMemoryDB(t)

	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, RunMigrations(ctx, db))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count))
	assert.Equal(t, 2, count)
}

func TestRunMigrations_DirtyDatabase(t *testing.T) {
	db := openMemoryDB(t)

	_, err := db.Exec(`
		CREATE TABLE migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			dirty BOOLEAN DEFAULT FALSE
		)
	`)
	require.NoError(t, err)

	_, err = db.Exec("INSERT INTO migrations (version, dirty) VALUES (1, TRUE)")
	require.NoError(t, err)

	err = RunMigrations(context.Background(), db)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "database is in a dirty state"))
	assert.True(t, strings.Contains(err.Error(), "failed migration(s): [1]"))
}

func TestLoadMigrations_Ordered(t *testing.T) {
	migrations, err := loadMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 2)

	assert.Equal(t, 1, migrations[0].Version)
	assert.Equal(t, "000001_create_projects_and_tasks", migrations[0].Name)
	assert.Contains(t, migrations[0].Up, "CREATE TABLE IF NOT EXISTS tasks")
	assert.Contains(t, migrations[0].Down, "DROP TABLE IF EXISTS tasks")
	assert.Equal(t, 2, migrations[1].Version)
}

func TestExtractVersion(t *testing.T) {
	tests := []struct {
		filename string
		expected int
	}{
		{"000001_create_projects_and_tasks.up.sql", 1},
		{"000012_something.up.sql", 12},
		{"readme.sql", 0},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractVersion(tt.filename))
		})
	}
}
