package api

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"timesheet/internal/config"
	"timesheet/internal/domain"
	"timesheet/internal/errors"
	"timesheet/internal/repository/sqlite"
	"timesheet/internal/services"
)

// TaskRow is a task together with the name of its project, ready for display.
type TaskRow struct {
	Task        domain.Task `json:"task"`
	ProjectName string      `json:"project_name"`
}

// BusinessAPI defines the operations offered to the command line
type BusinessAPI interface {
	// ========== Spreadsheet Workflows ==========

	// ImportFile imports tasks from an .xlsx or .csv file
	ImportFile(ctx context.Context, path string) (*domain.ImportResult, error)

	// ExportTasks renders tasks in the range as a workbook, or as a PDF report when format is pdf
	ExportTasks(ctx context.Context, cfg services.ExportConfig, format string) (*services.ExportFile, error)

	// ExportProjectTasks renders one project's tasks in the range
	ExportProjectTasks(ctx context.Context, projectID int64, start, end time.Time) (*services.ExportFile, error)

	// ExportWeeklySummary renders a per-day summary and the tasks in the range
	ExportWeeklySummary(ctx context.Context, start, end time.Time) (*services.ExportFile, error)

	// ========== Task Management ==========

	CreateTask(ctx context.Context, input services.TaskInput) (*domain.Task, error)
	ListTasks(ctx context.Context, criteria services.SearchCriteria) ([]TaskRow, error)
	CompleteTask(ctx context.Context, id int64) (*domain.Task, error)
	ReopenTask(ctx context.Context, id int64) (*domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error

	// ========== Project Management ==========

	CreateProject(ctx context.Context, name string, taskType domain.TaskType, color string) (*domain.Project, error)
	ListProjects(ctx context.Context, taskType domain.TaskType) ([]domain.Project, error)
	RenameProject(ctx context.Context, id int64, name string) (*domain.Project, error)
	RecolorProject(ctx context.Context, id int64, color string) (*domain.Project, error)
	DeleteProject(ctx context.Context, id int64) error

	// ========== Reporting ==========

	// ParseDateRange parses two dates into an inclusive range
	ParseDateRange(ctx context.Context, from, to string) (*services.DateRange, error)

	// ParseNamedRange converts a shorthand such as "week" into a range relative to now
	ParseNamedRange(ctx context.Context, name string) (*services.DateRange, error)

	// GetStatistics aggregates the tasks in the range
	GetStatistics(ctx context.Context, start, end time.Time) (*domain.Statistics, error)

	// GetTimesheetWeek returns the Monday to Sunday week containing date
	GetTimesheetWeek(ctx context.Context, date time.Time, taskType domain.TaskType) (*services.TimesheetWeek, error)

	// ProjectNames maps project IDs to names
	ProjectNames(ctx context.Context) (map[int64]string, error)

	// ========== Reminder Settings ==========

	GetNotificationSettings(ctx context.Context) (*domain.NotificationSettings, error)
	SaveNotificationSettings(ctx context.Context, settings domain.NotificationSettings) (*domain.NotificationSettings, error)
}

// businessAPIImpl implements the BusinessAPI interface
type businessAPIImpl struct {
	services *services.ServiceContainer
	now      func() time.Time
}

// NewBusinessAPI creates a new BusinessAPI instance
func NewBusinessAPI(repo sqlite.Repository, cfg *config.Config) BusinessAPI {
	return &businessAPIImpl{
		services: NewServiceContainer(repo, cfg),
		now:      time.Now,
	}
}

// ========== Spreadsheet Workflows ==========

func (b *businessAPIImpl) ImportFile(ctx context.Context, path string) (*domain.ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewImportError(path, err)
	}
	defer f.Close()

	return b.services.ImportService.ImportFromReader(ctx, filepath.Base(path), f)
}

func (b *businessAPIImpl) ExportTasks(ctx context.Context, cfg services.ExportConfig, format string) (*services.ExportFile, error) {
	switch format {
	case "", config.FormatXLSX:
		return b.services.ExportService.ExportTasks(ctx, cfg)
	case config.FormatPDF:
		return b.services.ExportService.ExportPDFReport(ctx, cfg)
	default:
		return nil, errors.NewInvalidInputError("format", format, "must be xlsx or pdf")
	}
}

func (b *businessAPIImpl) ExportProjectTasks(ctx context.Context, projectID int64, start, end time.Time) (*services.ExportFile, error) {
	return b.services.ExportService.ExportProjectTasks(ctx, projectID, start, end)
}

func (b *businessAPIImpl) ExportWeeklySummary(ctx context.Context, start, end time.Time) (*services.ExportFile, error) {
	return b.services.ExportService.ExportWeeklySummary(ctx, start, end)
}

// ========== Task Management ==========

func (b *businessAPIImpl) CreateTask(ctx context.Context, input services.TaskInput) (*domain.Task, error) {
	return b.services.TaskService.CreateTask(ctx, input)
}

func (b *businessAPIImpl) ListTasks(ctx context.Context, criteria services.SearchCriteria) ([]TaskRow, error) {
	tasks, err := b.services.SearchService.SearchTasks(ctx, criteria)
	if err != nil {
		return nil, err
	}
	names, err := b.ProjectNames(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]TaskRow, len(tasks))
	for i, task := range tasks {
		rows[i] = TaskRow{Task: task, ProjectName: projectLabel(task, names)}
	}
	return rows, nil
}

func projectLabel(task domain.Task, names map[int64]string) string {
	if task.ProjectID == nil {
		return services.NoProjectName
	}
	if name, ok := names[*task.ProjectID]; ok {
		return name
	}
	return services.NotApplicableName
}

func (b *businessAPIImpl) CompleteTask(ctx context.Context, id int64) (*domain.Task, error) {
	return b.services.TaskService.CompleteTask(ctx, id)
}

func (b *businessAPIImpl) ReopenTask(ctx context.Context, id int64) (*domain.Task, error) {
	return b.services.TaskService.ReopenTask(ctx, id)
}

func (b *businessAPIImpl) DeleteTask(ctx context.Context, id int64) error {
	return b.services.TaskService.DeleteTask(ctx, id)
}

// ========== Project Management ==========

func (b *businessAPIImpl) CreateProject(ctx context.Context, name string, taskType domain.TaskType, color string) (*domain.Project, error) {
	return b.services.ProjectService.CreateProject(ctx, name, taskType, color)
}

func (b *businessAPIImpl) ListProjects(ctx context.Context, taskType domain.TaskType) ([]domain.Project, error) {
	return b.services.ProjectService.ListProjects(ctx, taskType)
}

func (b *businessAPIImpl) RenameProject(ctx context.Context, id int64, name string) (*domain.Project, error) {
	return b.services.ProjectService.RenameProject(ctx, id, name)
}

func (b *businessAPIImpl) RecolorProject(ctx context.Context, id int64, color string) (*domain.Project, error) {
	return b.services.ProjectService.RecolorProject(ctx, id, color)
}

func (b *businessAPIImpl) DeleteProject(ctx context.Context, id int64) error {
	return b.services.ProjectService.DeleteProject(ctx, id)
}

// ========== Reporting ==========

func (b *businessAPIImpl) ParseDateRange(ctx context.Context, from, to string) (*services.DateRange, error) {
	return b.services.TimeService.ParseDateRange(from, to)
}

func (b *businessAPIImpl) ParseNamedRange(ctx context.Context, name string) (*services.DateRange, error) {
	return b.services.TimeService.ParseNamedRange(name, b.now())
}

func (b *businessAPIImpl) GetStatistics(ctx context.Context, start, end time.Time) (*domain.Statistics, error) {
	return b.services.ReportingService.GetStatistics(ctx, start, end)
}

func (b *businessAPIImpl) GetTimesheetWeek(ctx context.Context, date time.Time, taskType domain.TaskType) (*services.TimesheetWeek, error) {
	return b.services.ReportingService.GetTimesheetWeek(ctx, date, taskType)
}

func (b *businessAPIImpl) ProjectNames(ctx context.Context) (map[int64]string, error) {
	projects, err := b.services.ProjectService.ListProjects(ctx, "")
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}
	return names, nil
}

// ========== Reminder Settings ==========

func (b *businessAPIImpl) GetNotificationSettings(ctx context.Context) (*domain.NotificationSettings, error) {
	return b.services.NotificationService.GetSettings(ctx)
}

func (b *businessAPIImpl) SaveNotificationSettings(ctx context.Context, settings domain.NotificationSettings) (*domain.NotificationSettings, error) {
	return b.services.NotificationService.SaveSettings(ctx, settings)
}
