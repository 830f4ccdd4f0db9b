package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timesheet/internal/domain"
	"timesheet/internal/services"
)

func TestTaskAddCommand_Execute(t *testing.T) {
	withFixedNow(t, time.Date(2024, 1, 15, 18, 0, 0, 0, time.Local))
	ctx := context.Background()

	t.Run("adds a task with derived fields", func(t *testing.T) {
		app, mockAPI, out := setupTestAppWithMockBusinessAPI(t)
		cmd := NewTaskAddCommand(app)
		cmd.opts = TaskAddOptions{
			Type:     "Personal",
			Project:  "3",
			Date:     "01/14/2024",
			Start:    "09:00",
			End:      "10:30",
			Duration: "01:15",
		}

		err := cmd.Execute(ctx, []string{"Write", "report"})

		require.NoError(t, err)
		task := mockAPI.tasks[1]
		require.NotNil(t, task)
		assert.Equal(t, "Write report", task.Title)
		assert.Equal(t, domain.TaskTypePersonal, task.Type)
		assert.Equal(t, int64(3), *task.ProjectID)
		assert.Equal(t, 14, task.Date.Day())
		assert.Equal(t, 9, task.StartTime.Hour())
		assert.Equal(t, 30, task.EndTime.Minute())
		assert.Equal(t, 75, *task.Duration)
		assert.Equal(t, domain.TaskStatusPending, task.Status)
		assert.Contains(t, out.String(), "Added task 1: Write report (01/14/2024, 01:15)")
	})

	t.Run("defaults to today", func(t *testing.T) {
		app, mockAPI, _ := setupTestAppWithMockBusinessAPI(t)
		cmd := NewTaskAddCommand(app)
		cmd.opts.Completed = true

		require.NoError(t, cmd.Execute(ctx, []string{"Standup"}))

		task := mockAPI.tasks[1]
		assert.Equal(t, domain.TaskTypeWork, task.Type)
		assert.True(t, task.Date.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)))
		assert.True(t, task.IsCompleted())
		assert.Nil(t, task.Duration)
	})

	rejected := []struct {
		name     string
		opts     TaskAddOptions
		contains string
	}{
		{"unknown type", TaskAddOptions{Type: "meeting"}, "must be work or personal"},
		{"bad project", TaskAddOptions{Type: "work", Project: "x"}, "invalid input for project"},
		{"bad date", TaskAddOptions{Type: "work", Date: "31/31/2024"}, "invalid input for date"},
		{"bad start", TaskAddOptions{Type: "work", Start: "25:00"}, "invalid input for start"},
		{"bad end", TaskAddOptions{Type: "work", End: "noon"}, "invalid input for end"},
		{"bad duration", TaskAddOptions{Type: "work", Duration: "1h"}, "invalid input for duration"},
	}
	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			app, mockAPI, _ := setupTestAppWithMockBusinessAPI(t)
			cmd := NewTaskAddCommand(app)
			cmd.opts = tt.opts

			err := cmd.Execute(ctx, []string{"Task"})

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
			assert.Empty(t, mockAPI.tasks)
		})
	}

	t.Run("requires a title", func(t *testing.T) {
		app, _, _ := setupTestAppWithMockBusinessAPI(t)
		err := NewTaskAddCommand(app).Execute(ctx, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "usage: ts task add")
	})
}

func TestTaskListCommand_Execute(t *testing.T) {
	withFixedNow(t, time.Date(2024, 1, 17, 12, 0, 0, 0, time.Local))
	ctx := context.Background()
	app, mockAPI, out := setupTestAppWithMockBusinessAPI(t)
	project, err := mockAPI.CreateProject(ctx, "Alpha", domain.TaskTypeWork, "")
	require.NoError(t, err)
	_, err = mockAPI.CreateTask(ctx, services.TaskInput{
		Title: "Write report", Type: domain.TaskTypeWork, ProjectID: &project.ID,
		Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local), Duration: intPtr(90), Status: domain.TaskStatusPending,
	})
	require.NoError(t, err)

	t.Run("prints a table", func(t *testing.T) {
		out.Reset()
		cmd := NewTaskListCommand(app)

		require.NoError(t, cmd.Execute(ctx, nil))

		assert.Contains(t, out.String(), "Title")
		assert.Contains(t, out.String(), "Write report")
		assert.Contains(t, out.String(), "01:30")
		assert.Contains(t, out.String(), "Alpha")
		require.NotNil(t, mockAPI.lastCriteria.Range)
		assert.Equal(t, time.Monday, mockAPI.lastCriteria.Range.Start.Weekday())
	})

	t.Run("passes filters", func(t *testing.T) {
		cmd := NewTaskListCommand(app)
		cmd.opts.Type = "work"
		cmd.opts.Status = "Completed"
		cmd.opts.Project = "1"
		cmd.opts.All = true

		require.NoError(t, cmd.Execute(ctx, []string{"report"}))

		criteria := mockAPI.lastCriteria
		assert.Nil(t, criteria.Range)
		assert.Equal(t, domain.TaskTypeWork, criteria.Type)
		assert.Equal(t, domain.TaskStatusCompleted, criteria.Status)
		assert.Equal(t, int64(1), *criteria.ProjectID)
		assert.Equal(t, "report", criteria.TextFilter)
	})

	t.Run("no matches", func(t *testing.T) {
		out.Reset()
		cmd := NewTaskListCommand(app)
		cmd.opts.Search = "nothing like this"

		require.NoError(t, cmd.Execute(ctx, nil))
		assert.Equal(t, "No tasks found\n", out.String())
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		cmd := NewTaskListCommand(app)
		cmd.opts.Status = "done"

		err := cmd.Execute(ctx, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be pending or completed")
	})
}

func TestTaskStatusAndDeleteCommands(t *testing.T) {
	ctx := context.Background()
	app, mockAPI, out := setupTestAppWithMockBusinessAPI(t)
	task, err := mockAPI.CreateTask(ctx, services.TaskInput{Title: "Write report", Type: domain.TaskTypeWork, Status: domain.TaskStatusPending})
	require.NoError(t, err)

	require.NoError(t, NewTaskStatusCommand(app, true).Execute(ctx, []string{"1"}))
	assert.True(t, mockAPI.tasks[task.ID].IsCompleted())
	assert.Contains(t, out.String(), "Task 1 is completed: Write report")

	require.NoError(t, NewTaskStatusCommand(app, false).Execute(ctx, []string{"1"}))
	assert.False(t, mockAPI.tasks[task.ID].IsCompleted())

	err = NewTaskStatusCommand(app, true).Execute(ctx, []string{"42"})
	require.Error(t, err)
	assert.Equal(t, `failed to complete task: task not found: 42 (run "ts task list --all" to see IDs)`, err.Error())

	err = NewTaskStatusCommand(app, false).Execute(ctx, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage: ts task reopen <id>")

	require.NoError(t, NewTaskDeleteCommand(app).Execute(ctx, []string{"1"}))
	assert.Empty(t, mockAPI.tasks)
	assert.Contains(t, out.String(), "Deleted task 1")

	err = NewTaskDeleteCommand(app).Execute(ctx, []string{"0"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a positive number")
}
