package services

import (
	"context"
	"errors"
	"testing"

	"timesheet/internal/domain"
	"timesheet/internal/repository/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingCreator assigns increasing IDs and can be told to fail.
type recordingCreator struct {
	nextID  int64
	created []sqlite.Project
	err     error
}

func (c *recordingCreator) CreateProject(_ context.Context, project *sqlite.Project) error {
	if c.err != nil {
		return c.err
	}
	c.nextID++
	project.ID = c.nextID
	c.created = append(c.created, *project)
	return nil
}

func TestProjectResolver_Resolve(t *testing.T) {
	existing := []domain.Project{
		{ID: 1, Name: "Alpha", Type: domain.TaskTypeWork},
		{ID: 2, Name: "Home", Type: domain.TaskTypePersonal},
		{ID: 3, Name: "alpha", Type: domain.TaskTypeWork},
	}

	tests := []struct {
		name       string
		project    string
		taskType   domain.TaskType
		expectedID int64
		expectedOK bool
		creates    bool
	}{
		{"exact match", "Alpha", domain.TaskTypeWork, 1, true, false},
		{"case-insensitive match keeps first", "ALPHA", domain.TaskTypeWork, 1, true, false},
		{"surrounding whitespace", "  Home ", domain.TaskTypePersonal, 2, true, false},
		{"type mismatch creates", "Home", domain.TaskTypeWork, 101, true, true},
		{"unknown name creates", "Beta", domain.TaskTypeWork, 101, true, true},
		{"empty name", "", domain.TaskTypeWork, 0, false, false},
		{"no project placeholder", "No Project", domain.TaskTypeWork, 0, false, false},
		{"not applicable placeholder", "N/A", domain.TaskTypePersonal, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creator := &recordingCreator{nextID: 100}
			resolver := NewProjectResolver(creator, fixedColorPicker("#52B788"), existing)

			id, ok := resolver.Resolve(context.Background(), tt.project, tt.taskType)

			assert.Equal(t, tt.expectedOK, ok)
			assert.Equal(t, tt.expectedID, id)
			if tt.creates {
				require.Len(t, creator.created, 1)
				assert.Equal(t, string(tt.taskType), creator.created[0].Type)
				assert.Equal(t, "#52B788", creator.created[0].Color)
				assert.Len(t, resolver.CreatedProjects(), 1)
			} else {
				assert.Empty(t, creator.created)
				assert.Empty(t, resolver.CreatedProjects())
			}
		})
	}
}

func TestProjectResolver_ReusesCreatedProjectWithinBatch(t *testing.T) {
	creator := &recordingCreator{}
	resolver := NewProjectResolver(creator, fixedColorPicker("#FF6B6B"), nil)
	ctx := context.Background()

	first, ok := resolver.Resolve(ctx, "Gamma", domain.TaskTypeWork)
	require.True(t, ok)
	second, ok := resolver.Resolve(ctx, "gamma", domain.TaskTypeWork)
	require.True(t, ok)
	personal, ok := resolver.Resolve(ctx, "Gamma", domain.TaskTypePersonal)
	require.True(t, ok)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, personal)
	assert.Len(t, creator.created, 2)
	assert.Equal(t, []string{"Gamma"}, resolver.CreatedProjects(), "each name is reported once")
	assert.Len(t, resolver.projects, 2)
}

func TestProjectResolver_CreationFailure(t *testing.T) {
	creator := &recordingCreator{err: errors.New("disk full")}
	resolver := NewProjectResolver(creator, fixedColorPicker("#FF6B6B"), nil)

	id, ok := resolver.Resolve(context.Background(), "Delta", domain.TaskTypeWork)

	assert.False(t, ok)
	assert.Zero(t, id)
	assert.Empty(t, resolver.CreatedProjects())
	assert.Empty(t, resolver.projects)
}

func TestProjectResolver_DoesNotMutateExisting(t *testing.T) {
	existing := []domain.Project{{ID: 1, Name: "Alpha", Type: domain.TaskTypeWork}}
	resolver := NewProjectResolver(&recordingCreator{nextID: 1}, fixedColorPicker("#FF6B6B"), existing)

	_, ok := resolver.Resolve(context.Background(), "Beta", domain.TaskTypeWork)
	require.True(t, ok)

	assert.Len(t, existing, 1)
	assert.Len(t, resolver.projects, 2)
}

func TestRandomColorPicker(t *testing.T) {
	a := NewRandomColorPicker(42)
	b := NewRandomColorPicker(42)

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		color := a.Pick()
		assert.Equal(t, color, b.Pick(), "same seed gives the same sequence")
		assert.Contains(t, ProjectPalette, color)
		seen[color] = true
	}
	assert.Greater(t, len(seen), 1)

	assert.Contains(t, ProjectPalette, NewTimeSeededColorPicker().Pick())
}

func TestProjectPalette(t *testing.T) {
	assert.Equal(t, []string{
		"#FF6B6B", "#4ECDC4", "#45B7D1", "#FFA07A", "#98D8C8",
		"#F7DC6F", "#BB8FCE", "#85C1E2", "#F8B88B", "#52B788",
	}, ProjectPalette)
}
