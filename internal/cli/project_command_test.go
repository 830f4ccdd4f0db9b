package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timesheet/internal/domain"
	"timesheet/internal/services"
)

func TestProjectCommands(t *testing.T) {
	ctx := context.Background()
	app, mockAPI, out := setupTestAppWithMockBusinessAPI(t)

	t.Run("add picks a palette colour when none is given", func(t *testing.T) {
		cmd := NewProjectAddCommand(app)
		require.NoError(t, cmd.Execute(ctx, []string{"Client", "A"}))

		project := mockAPI.projects[1]
		assert.Equal(t, "Client A", project.Name)
		assert.Equal(t, domain.TaskTypeWork, project.Type)
		assert.Equal(t, services.ProjectPalette[0], project.Color)
		assert.Contains(t, out.String(), "Client A (Work)")
	})

	t.Run("add with type and colour", func(t *testing.T) {
		cmd := NewProjectAddCommand(app)
		cmd.taskType = "personal"
		cmd.color = "#45B7D1"
		require.NoError(t, cmd.Execute(ctx, []string{"Garden"}))

		project := mockAPI.projects[2]
		assert.Equal(t, domain.TaskTypePersonal, project.Type)
		assert.Equal(t, "#45B7D1", project.Color)
	})

	t.Run("list filters by type", func(t *testing.T) {
		out.Reset()
		cmd := NewProjectListCommand(app)
		cmd.taskType = "personal"
		require.NoError(t, cmd.Execute(ctx, nil))

		assert.Contains(t, out.String(), "Garden")
		assert.NotContains(t, out.String(), "Client A")
	})

	t.Run("rename and recolor", func(t *testing.T) {
		require.NoError(t, NewProjectRenameCommand(app).Execute(ctx, []string{"1", "Client", "B"}))
		assert.Equal(t, "Client B", mockAPI.projects[1].Name)

		require.NoError(t, NewProjectRecolorCommand(app).Execute(ctx, []string{"1", "#96CEB4"}))
		assert.Equal(t, "#96CEB4", mockAPI.projects[1].Color)
	})

	t.Run("delete keeps tasks without a project", func(t *testing.T) {
		projectID := int64(1)
		task, err := mockAPI.CreateTask(ctx, services.TaskInput{Title: "Call", Type: domain.TaskTypeWork, ProjectID: &projectID})
		require.NoError(t, err)

		require.NoError(t, NewProjectDeleteCommand(app).Execute(ctx, []string{"1"}))

		assert.NotContains(t, mockAPI.projects, int64(1))
		assert.Nil(t, mockAPI.tasks[task.ID].ProjectID)
	})

	t.Run("unknown project", func(t *testing.T) {
		err := NewProjectRenameCommand(app).Execute(ctx, []string{"99", "X"})
		require.Error(t, err)
		assert.Equal(t, `failed to rename project: project not found: 99 (run "ts project list" to see IDs)`, err.Error())
	})

	t.Run("list with no projects", func(t *testing.T) {
		app, _, out := setupTestAppWithMockBusinessAPI(t)
		require.NoError(t, NewProjectListCommand(app).Execute(ctx, nil))
		assert.Equal(t, "No projects found\n", out.String())
	})

	t.Run("invalid type", func(t *testing.T) {
		cmd := NewProjectAddCommand(app)
		cmd.taskType = "hobby"
		err := cmd.Execute(ctx, []string{"Chess"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be work or personal")
	})
}
