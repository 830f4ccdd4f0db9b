package domain

import (
	"timesheet/internal/repository/sqlite"
)

// TaskMapper handles conversion between domain and database Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain Task to a database Task.
func (m *TaskMapper) ToDatabase(task Task) sqlite.Task {
	status := task.Status
	if status == "" {
		status = TaskStatusPending
	}
	return sqlite.Task{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Type:        string(task.Type),
		ProjectID:   task.ProjectID,
		Date:        task.Date,
		StartTime:   task.StartTime,
		EndTime:     task.EndTime,
		Duration:    task.Duration,
		Status:      string(status),
		CreatedAt:   task.CreatedAt,
	}
}

// FromDatabase converts a database Task to a domain Task.
func (m *TaskMapper) FromDatabase(dbTask sqlite.Task) Task {
	return Task{
		ID:          dbTask.ID,
		Title:       dbTask.Title,
		Description: dbTask.Description,
		Type:        TaskType(dbTask.Type),
		ProjectID:   dbTask.ProjectID,
		Date:        dbTask.Date,
		StartTime:   dbTask.StartTime,
		EndTime:     dbTask.EndTime,
		Duration:    dbTask.Duration,
		Status:      ParseTaskStatus(dbTask.Status),
		CreatedAt:   dbTask.CreatedAt,
	}
}

// FromDatabaseSlice converts a slice of database Tasks to domain Tasks.
func (m *TaskMapper) FromDatabaseSlice(dbTasks []*sqlite.Task) []Task {
	tasks := make([]Task, len(dbTasks))
	for i, dbTask := range dbTasks {
		tasks[i] = m.FromDatabase(*dbTask)
	}
	return tasks
}

// ProjectMapper handles conversion between domain and database Project models.
type ProjectMapper struct{}

// NewProjectMapper creates a new ProjectMapper instance.
func NewProjectMapper() *ProjectMapper {
	return &ProjectMapper{}
}

// ToDatabase converts a domain Project to a database Project.
func (m *ProjectMapper) ToDatabase(project Project) sqlite.Project {
	return sqlite.Project{
		ID:        project.ID,
		Name:      project.Name,
		Type:      string(project.Type),
		Color:     project.Color,
		CreatedAt: project.CreatedAt,
	}
}

// FromDatabase converts a database Project to a domain Project.
func (m *ProjectMapper) FromDatabase(dbProject sqlite.Project) Project {
	return Project{
		ID:        dbProject.ID,
		Name:      dbProject.Name,
		Type:      TaskType(dbProject.Type),
		Color:     dbProject.Color,
		CreatedAt: dbProject.CreatedAt,
	}
}

// FromDatabaseSlice converts a slice of database Projects to domain Projects.
func (m *ProjectMapper) FromDatabaseSlice(dbProjects []*sqlite.Project) []Project {
	projects := make([]Project, len(dbProjects))
	for i, dbProject := range dbProjects {
		projects[i] = m.FromDatabase(*dbProject)
	}
	return projects
}

// NotificationSettingsMapper handles conversion of the reminder settings row.
type NotificationSettingsMapper struct{}

// NewNotificationSettingsMapper creates a new NotificationSettingsMapper instance.
func NewNotificationSettingsMapper() *NotificationSettingsMapper {
	return &NotificationSettingsMapper{}
}

// ToDatabase converts domain NotificationSettings to the database row.
func (m *NotificationSettingsMapper) ToDatabase(settings NotificationSettings) sqlite.NotificationSettings {
	return sqlite.NotificationSettings{
		Enabled: settings.Enabled,
		Time:    settings.Time,
		Days:    settings.DaysString(),
	}
}

// FromDatabase converts the database row to domain NotificationSettings.
func (m *NotificationSettingsMapper) FromDatabase(dbSettings sqlite.NotificationSettings) NotificationSettings {
	return NotificationSettings{
		Enabled:     dbSettings.Enabled,
		Time:        dbSettings.Time,
		DaysEnabled: ParseDays(dbSettings.Days),
	}
}

// TaskFilterMapper handles conversion between domain and database task filters.
type TaskFilterMapper struct{}

// NewTaskFilterMapper creates a new TaskFilterMapper instance.
func NewTaskFilterMapper() *TaskFilterMapper {
	return &TaskFilterMapper{}
}

// ToDatabase converts a domain TaskFilter to a database TaskFilter.
func (m *TaskFilterMapper) ToDatabase(filter TaskFilter) sqlite.TaskFilter {
	dbFilter := sqlite.TaskFilter{
		From:      filter.From,
		To:        filter.To,
		ProjectID: filter.ProjectID,
	}
	if filter.Type != "" {
		taskType := string(filter.Type)
		dbFilter.Type = &taskType
	}
	if filter.Status != "" {
		status := string(filter.Status)
		dbFilter.Status = &status
	}
	return dbFilter
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Task                 *TaskMapper
	Project              *ProjectMapper
	NotificationSettings *NotificationSettingsMapper
	TaskFilter           *TaskFilterMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Task:                 NewTaskMapper(),
		Project:              NewProjectMapper(),
		NotificationSettings: NewNotificationSettingsMapper(),
		TaskFilter:           NewTaskFilterMapper(),
	}
}
