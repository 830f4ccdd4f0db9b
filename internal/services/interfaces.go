package services

import (
	"context"
	"io"
	"time"

	"timesheet/internal/domain"
)

// DateRange is an inclusive span of calendar days.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// TaskInput carries the fields of a manually entered task.
type TaskInput struct {
	Title       string
	Description string
	Type        domain.TaskType
	ProjectID   *int64
	Date        time.Time
	StartTime   *time.Time
	EndTime     *time.Time
	Duration    *int // minutes; derived from StartTime and EndTime when nil
	Status      domain.TaskStatus
}

// SearchCriteria narrows a task listing. Zero values do not filter.
type SearchCriteria struct {
	Range      *DateRange        `json:"range,omitempty"`
	Type       domain.TaskType   `json:"type,omitempty"`
	ProjectID  *int64            `json:"project_id,omitempty"`
	Status     domain.TaskStatus `json:"status,omitempty"`
	TextFilter string            `json:"text_filter,omitempty"`
}

// TypeFilter selects tasks by type in exports. Empty and "all" select everything.
type TypeFilter string

const (
	TypeFilterAll      TypeFilter = "all"
	TypeFilterWork     TypeFilter = "work"
	TypeFilterPersonal TypeFilter = "personal"
)

// ExportConfig describes a task export.
type ExportConfig struct {
	Start             time.Time
	End               time.Time
	Type              TypeFilter
	IncludeProjects   bool
	IncludeStatistics bool
}

// ExportFile is a fully rendered export ready to be written to disk.
type ExportFile struct {
	Filename string
	Data     []byte
}

// DaySummary aggregates the tasks of one calendar day.
type DaySummary struct {
	Date             time.Time
	Tasks            []domain.Task
	TaskCount        int
	CompletedCount   int
	TotalDuration    int
	WorkDuration     int
	PersonalDuration int
}

// TimesheetWeek is the Monday to Sunday view of tracked tasks.
type TimesheetWeek struct {
	Start  time.Time
	End    time.Time
	Days   []DaySummary
	Totals domain.Statistics
}

// TimeService resolves the date ranges used by listings, reports and exports
type TimeService interface {
	ParseDateRange(from, to string) (*DateRange, error)
	ParseNamedRange(name string, now time.Time) (*DateRange, error)
	WeekOf(date time.Time) *DateRange
	DeriveDuration(start, end *time.Time) *int
}

// TaskService handles task lifecycle operations
type TaskService interface {
	CreateTask(ctx context.Context, input TaskInput) (*domain.Task, error)
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)
	CompleteTask(ctx context.Context, id int64) (*domain.Task, error)
	ReopenTask(ctx context.Context, id int64) (*domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

// ProjectService handles project lifecycle operations
type ProjectService interface {
	CreateProject(ctx context.Context, name string, taskType domain.TaskType, color string) (*domain.Project, error)
	GetProject(ctx context.Context, id int64) (*domain.Project, error)
	ListProjects(ctx context.Context, taskType domain.TaskType) ([]domain.Project, error)
	RenameProject(ctx context.Context, id int64, name string) (*domain.Project, error)
	RecolorProject(ctx context.Context, id int64, color string) (*domain.Project, error)
	DeleteProject(ctx context.Context, id int64) error
}

// SearchService handles filtered task listings
type SearchService interface {
	SearchTasks(ctx context.Context, criteria SearchCriteria) ([]domain.Task, error)
	GroupByDate(tasks []domain.Task) []DaySummary
}

// ReportingService handles statistics and the timesheet view
type ReportingService interface {
	GetStatistics(ctx context.Context, start, end time.Time) (*domain.Statistics, error)
	GetTimesheetWeek(ctx context.Context, date time.Time, taskType domain.TaskType) (*TimesheetWeek, error)
}

// ImportService turns spreadsheets into stored tasks
type ImportService interface {
	ImportFromSpreadsheet(ctx context.Context, filename string, data []byte) (*domain.ImportResult, error)
	ImportFromReader(ctx context.Context, filename string, r io.Reader) (*domain.ImportResult, error)
}

// ExportService renders stored tasks as workbooks and reports
type ExportService interface {
	ExportTasks(ctx context.Context, cfg ExportConfig) (*ExportFile, error)
	ExportProjectTasks(ctx context.Context, projectID int64, start, end time.Time) (*ExportFile, error)
	ExportWeeklySummary(ctx context.Context, start, end time.Time) (*ExportFile, error)
	ExportPDFReport(ctx context.Context, cfg ExportConfig) (*ExportFile, error)
}

// NotificationService persists the end-of-day reminder settings
type NotificationService interface {
	GetSettings(ctx context.Context) (*domain.NotificationSettings, error)
	SaveSettings(ctx context.Context, settings domain.NotificationSettings) (*domain.NotificationSettings, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TimeService         TimeService
	TaskService         TaskService
	ProjectService      ProjectService
	SearchService       SearchService
	ReportingService    ReportingService
	ImportService       ImportService
	ExportService       ExportService
	NotificationService NotificationService
}
