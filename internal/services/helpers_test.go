package services

import (
	"context"
	"testing"
	"time"

	"timesheet/internal/repository/sqlite"

	"github.com/stretchr/testify/require"
)

// fixedColorPicker always returns the same colour.
type fixedColorPicker string

func (c fixedColorPicker) Pick() string { return string(c) }

func setupRepo(t *testing.T) sqlite.Repository {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.Local)
}

func intPtr(v int) *int { return &v }

func seedProject(t *testing.T, repo sqlite.Repository, name, taskType string) int64 {
	t.Helper()
	project := &sqlite.Project{Name: name, Type: taskType, Color: "#4ECDC4"}
	require.NoError(t, repo.CreateProject(context.Background(), project))
	return project.ID
}

func seedTask(t *testing.T, repo sqlite.Repository, task sqlite.Task) int64 {
	t.Helper()
	if task.Status == "" {
		task.Status = "pending"
	}
	require.NoError(t, repo.CreateTask(context.Background(), &task))
	return task.ID
}
