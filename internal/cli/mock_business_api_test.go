package cli

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"timesheet/internal/api"
	"timesheet/internal/domain"
	"timesheet/internal/errors"
	"timesheet/internal/services"
	"timesheet/internal/timefmt"
)

// mockBusinessAPI implements the BusinessAPI interface for testing
type mockBusinessAPI struct {
	tasks         map[int64]*domain.Task
	projects      map[int64]*domain.Project
	settings      domain.NotificationSettings
	nextTaskID    int64
	nextProjectID int64

	importResult *domain.ImportResult
	importedPath string
	exportFile   *services.ExportFile
	exportCalls  []string
	lastExport   services.ExportConfig
	lastCriteria services.SearchCriteria

	// err is returned by every method when set
	err error
}

// newMockBusinessAPI creates a new mock BusinessAPI instance
func newMockBusinessAPI() *mockBusinessAPI {
	return &mockBusinessAPI{
		tasks:         make(map[int64]*domain.Task),
		projects:      make(map[int64]*domain.Project),
		settings:      domain.DefaultNotificationSettings(),
		nextTaskID:    1,
		nextProjectID: 1,
	}
}

var _ api.BusinessAPI = (*mockBusinessAPI)(nil)

func (m *mockBusinessAPI) ImportFile(ctx context.Context, path string) (*domain.ImportResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.importedPath = path
	if m.importResult == nil {
		return &domain.ImportResult{Success: false, FailedCount: 1, Errors: []string{"No tasks found in the spreadsheet"}}, nil
	}
	return m.importResult, nil
}

func (m *mockBusinessAPI) exported(kind, filename string) (*services.ExportFile, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.exportCalls = append(m.exportCalls, kind)
	if m.exportFile != nil {
		return m.exportFile, nil
	}
	return &services.ExportFile{Filename: filename, Data: []byte("PK-data")}, nil
}

func (m *mockBusinessAPI) ExportTasks(ctx context.Context, cfg services.ExportConfig, format string) (*services.ExportFile, error) {
	m.lastExport = cfg
	ext := "xlsx"
	if format == "pdf" {
		ext = "pdf"
	}
	return m.exported("tasks:"+format, fmt.Sprintf("Tasks_All_%s_to_%s.%s",
		timefmt.FormatISODate(cfg.Start), timefmt.FormatISODate(cfg.End), ext))
}

func (m *mockBusinessAPI) ExportProjectTasks(ctx context.Context, projectID int64, start, end time.Time) (*services.ExportFile, error) {
	project, ok := m.projects[projectID]
	if !ok && m.err == nil {
		return nil, errors.NewNotFoundError("project", fmt.Sprint(projectID))
	}
	name := ""
	if project != nil {
		name = project.Name
	}
	return m.exported("project", name+"_Tasks.xlsx")
}

func (m *mockBusinessAPI) ExportWeeklySummary(ctx context.Context, start, end time.Time) (*services.ExportFile, error) {
	return m.exported("weekly", "Weekly_Summary.xlsx")
}

func (m *mockBusinessAPI) CreateTask(ctx context.Context, input services.TaskInput) (*domain.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, errors.NewValidationError("task title is required", nil)
	}
	task := &domain.Task{
		ID:          m.nextTaskID,
		Title:       input.Title,
		Description: input.Description,
		Type:        input.Type,
		ProjectID:   input.ProjectID,
		Date:        input.Date,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Duration:    input.Duration,
		Status:      input.Status,
	}
	m.tasks[task.ID] = task
	m.nextTaskID++
	return task, nil
}

func (m *mockBusinessAPI) ListTasks(ctx context.Context, criteria services.SearchCriteria) ([]api.TaskRow, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.lastCriteria = criteria

	var rows []api.TaskRow
	for _, task := range m.tasks {
		if criteria.Type != "" && task.Type != criteria.Type {
			continue
		}
		if criteria.Status != "" && task.Status != criteria.Status {
			continue
		}
		if criteria.TextFilter != "" && !strings.Contains(strings.ToLower(task.Title), strings.ToLower(criteria.TextFilter)) {
			continue
		}
		name := services.NoProjectName
		if task.ProjectID != nil {
			if project, ok := m.projects[*task.ProjectID]; ok {
				name = project.Name
			}
		}
		rows = append(rows, api.TaskRow{Task: *task, ProjectName: name})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Task.ID < rows[j].Task.ID })
	return rows, nil
}

func (m *mockBusinessAPI) setStatus(id int64, status domain.TaskStatus) (*domain.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	task, ok := m.tasks[id]
	if !ok {
		return nil, errors.NewNotFoundError("task", fmt.Sprint(id))
	}
	task.Status = status
	return task, nil
}

func (m *mockBusinessAPI) CompleteTask(ctx context.Context, id int64) (*domain.Task, error) {
	return m.setStatus(id, domain.TaskStatusCompleted)
}

func (m *mockBusinessAPI) ReopenTask(ctx context.Context, id int64) (*domain.Task, error) {
	return m.setStatus(id, domain.TaskStatusPending)
}

func (m *mockBusinessAPI) DeleteTask(ctx context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.tasks[id]; !ok {
		return errors.NewNotFoundError("task", fmt.Sprint(id))
	}
	delete(m.tasks, id)
	return nil
}

func (m *mockBusinessAPI) CreateProject(ctx context.Context, name string, taskType domain.TaskType, color string) (*domain.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	if color == "" {
		color = services.ProjectPalette[0]
	}
	project := &domain.Project{ID: m.nextProjectID, Name: name, Type: taskType, Color: color}
	m.projects[project.ID] = project
	m.nextProjectID++
	return project, nil
}

func (m *mockBusinessAPI) ListProjects(ctx context.Context, taskType domain.TaskType) ([]domain.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	var projects []domain.Project
	for _, project := range m.projects {
		if taskType == "" || project.Type == taskType {
			projects = append(projects, *project)
		}
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].ID < projects[j].ID })
	return projects, nil
}

func (m *mockBusinessAPI) project(id int64) (*domain.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	project, ok := m.projects[id]
	if !ok {
		return nil, errors.NewNotFoundError("project", fmt.Sprint(id))
	}
	return project, nil
}

func (m *mockBusinessAPI) RenameProject(ctx context.Context, id int64, name string) (*domain.Project, error) {
	project, err := m.project(id)
	if err != nil {
		return nil, err
	}
	project.Name = name
	return project, nil
}

func (m *mockBusinessAPI) RecolorProject(ctx context.Context, id int64, color string) (*domain.Project, error) {
	project, err := m.project(id)
	if err != nil {
		return nil, err
	}
	project.Color = color
	return project, nil
}

func (m *mockBusinessAPI) DeleteProject(ctx context.Context, id int64) error {
	if _, err := m.project(id); err != nil {
		return err
	}
	delete(m.projects, id)
	for _, task := range m.tasks {
		if task.ProjectID != nil && *task.ProjectID == id {
			task.ProjectID = nil
		}
	}
	return nil
}

func (m *mockBusinessAPI) ParseDateRange(ctx context.Context, from, to string) (*services.DateRange, error) {
	return services.NewTimeService().ParseDateRange(from, to)
}

func (m *mockBusinessAPI) ParseNamedRange(ctx context.Context, name string) (*services.DateRange, error) {
	return services.NewTimeService().ParseNamedRange(name, timeNow())
}

func (m *mockBusinessAPI) filtered(start, end time.Time, taskType domain.TaskType) []domain.Task {
	var tasks []domain.Task
	for _, task := range m.tasks {
		if timefmt.InRange(task.Date, start, end) && (taskType == "" || task.Type == taskType) {
			tasks = append(tasks, *task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks
}

func (m *mockBusinessAPI) GetStatistics(ctx context.Context, start, end time.Time) (*domain.Statistics, error) {
	if m.err != nil {
		return nil, m.err
	}
	stats := services.Aggregate(m.filtered(start, end, ""))
	return &stats, nil
}

func (m *mockBusinessAPI) GetTimesheetWeek(ctx context.Context, date time.Time, taskType domain.TaskType) (*services.TimesheetWeek, error) {
	if m.err != nil {
		return nil, m.err
	}
	week := services.NewTimeService().WeekOf(date)
	tasks := m.filtered(week.Start, week.End, taskType)

	days := make([]services.DaySummary, 0, 7)
	for _, day := range timefmt.DaysInWeek(week.Start) {
		summary := services.DaySummary{Date: day}
		for _, task := range tasks {
			if timefmt.SameDay(task.Date, day) {
				summary.Tasks = append(summary.Tasks, task)
				summary.TaskCount++
				summary.TotalDuration += task.DurationMinutes()
			}
		}
		days = append(days, summary)
	}
	return &services.TimesheetWeek{Start: week.Start, End: week.End, Days: days, Totals: services.Aggregate(tasks)}, nil
}

func (m *mockBusinessAPI) ProjectNames(ctx context.Context) (map[int64]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	names := make(map[int64]string, len(m.projects))
	for id, project := range m.projects {
		names[id] = project.Name
	}
	return names, nil
}

func (m *mockBusinessAPI) GetNotificationSettings(ctx context.Context) (*domain.NotificationSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	settings := m.settings
	return &settings, nil
}

func (m *mockBusinessAPI) SaveNotificationSettings(ctx context.Context, settings domain.NotificationSettings) (*domain.NotificationSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	hour, minute, ok := timefmt.ParseTimeOfDay(settings.Time)
	if !ok {
		return nil, errors.NewInvalidInputError("time", settings.Time, "expected HH:MM")
	}
	settings.Time = fmt.Sprintf("%02d:%02d", hour, minute)
	m.settings = settings
	return &settings, nil
}

// setupTestAppWithMockBusinessAPI returns an app writing to a buffer
func setupTestAppWithMockBusinessAPI(t *testing.T) (*App, *mockBusinessAPI, *bytes.Buffer) {
	t.Helper()
	mockAPI := newMockBusinessAPI()
	app := NewApp(mockAPI)
	out := &bytes.Buffer{}
	app.SetOutput(out)
	return app, mockAPI, out
}

// withFixedNow pins timeNow for the duration of the test
func withFixedNow(t *testing.T, now time.Time) {
	t.Helper()
	original := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = original })
}

func intPtr(v int) *int { return &v }
