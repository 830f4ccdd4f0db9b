package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"timesheet/internal/domain"
	"timesheet/internal/errors"
	"timesheet/internal/logging"
	"timesheet/internal/repository/sqlite"
	"timesheet/internal/spreadsheet"
	"timesheet/internal/timefmt"
	"timesheet/internal/validation"
)

// Sheet names and labels used in exported workbooks.
const (
	SheetTasks        = "Tasks"
	SheetStatistics   = "Statistics"
	SheetDailySummary = "Daily Summary"

	UnknownProjectName = "Unknown Project"
	ProjectBreakdown   = "Project Breakdown"
)

var (
	statisticsHeader   = []string{"Metric", "Value"}
	dailySummaryHeader = []string{"Date", "Tasks", "Completed", "Duration", "Work Time", "Personal Time"}
)

// exportServiceImpl implements the ExportService interface
type exportServiceImpl struct {
	repo          sqlite.Repository
	mapper        *domain.Mapper
	taskValidator *validation.TaskValidator
}

// NewExportService creates a new ExportService instance
func NewExportService(repo sqlite.Repository) ExportService {
	return &exportServiceImpl{
		repo:          repo,
		mapper:        domain.NewMapper(),
		taskValidator: validation.NewTaskValidator(),
	}
}

// exportData is everything one export reads from the store, loaded once per call.
type exportData struct {
	tasks    []domain.Task
	projects map[int64]string
}

func (s *exportServiceImpl) load(ctx context.Context, start, end time.Time) (*exportData, error) {
	if err := s.taskValidator.ValidateDateRange(start, end); err != nil {
		return nil, errors.NewValidationError("invalid export range", err)
	}

	dbTasks, err := s.repo.SearchTasks(ctx, sqlite.TaskFilter{From: &start, To: &end})
	if err != nil {
		return nil, errors.NewExportError("load tasks", err)
	}
	dbProjects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, errors.NewExportError("load projects", err)
	}

	projects := make(map[int64]string, len(dbProjects))
	for _, p := range dbProjects {
		projects[p.ID] = p.Name
	}

	return &exportData{
		tasks:    s.mapper.Task.FromDatabaseSlice(dbTasks),
		projects: projects,
	}, nil
}

// projectLabel names a task's project: "No Project" when it has none, "N/A" when the ID is unknown.
func (d *exportData) projectLabel(task domain.Task) string {
	if task.ProjectID == nil {
		return NoProjectName
	}
	if name, ok := d.projects[*task.ProjectID]; ok {
		return name
	}
	return NotApplicableName
}

func taskRow(task domain.Task, project string) []string {
	status := string(task.Status)
	if status == "" {
		status = string(domain.TaskStatusPending)
	}
	return []string{
		task.Title,
		task.Description,
		task.Type.Display(),
		project,
		timefmt.FormatDate(task.Date),
		timefmt.FormatOptionalTime(task.StartTime),
		timefmt.FormatOptionalTime(task.EndTime),
		timefmt.FormatOptionalMinutes(task.Duration),
		status,
	}
}

func (d *exportData) taskRows(tasks []domain.Task) [][]string {
	rows := make([][]string, len(tasks))
	for i, task := range tasks {
		rows[i] = taskRow(task, d.projectLabel(task))
	}
	return rows
}

func filterByType(tasks []domain.Task, filter TypeFilter) ([]domain.Task, error) {
	switch filter {
	case "", TypeFilterAll:
		return tasks, nil
	case TypeFilterWork, TypeFilterPersonal:
	default:
		return nil, errors.NewInvalidInputError("type", filter, "must be all, work or personal")
	}

	filtered := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if string(task.Type) == string(filter) {
			filtered = append(filtered, task)
		}
	}
	return filtered, nil
}

func typeLabel(filter TypeFilter) string {
	switch filter {
	case TypeFilterWork:
		return "Work"
	case TypeFilterPersonal:
		return "Personal"
	}
	return "All"
}

func rangeLabel(start, end time.Time) string {
	return fmt.Sprintf("%s_to_%s", timefmt.FormatISODate(start), timefmt.FormatISODate(end))
}

// statisticsRows renders the Statistics sheet. The breakdown is appended only when asked for
// and non-empty.
func (d *exportData) statisticsRows(stats domain.Statistics, includeProjects bool) [][]any {
	rows := [][]any{
		{"Total Tasks", stats.TotalTasks},
		{"Completed Tasks", stats.CompletedTasks},
		{"Completion Rate (%)", stats.CompletionRate()},
		{"Total Duration (HH:MM)", timefmt.MinutesToClock(stats.TotalDuration)},
		{"Work Duration (HH:MM)", timefmt.MinutesToClock(stats.WorkDuration)},
		{"Personal Duration (HH:MM)", timefmt.MinutesToClock(stats.PersonalDuration)},
	}

	if includeProjects && len(stats.ProjectBreakdown) > 0 {
		rows = append(rows, []any{"", ""}, []any{ProjectBreakdown, ""})
		for _, pd := range stats.ProjectBreakdown {
			name, ok := d.projects[pd.ProjectID]
			if !ok {
				name = UnknownProjectName
			}
			rows = append(rows, []any{name, timefmt.MinutesToClock(pd.Minutes)})
		}
	}
	return rows
}

// ExportTasks renders the tasks dated within the range as a workbook. Statistics cover every
// task in the range regardless of the type filter.
func (s *exportServiceImpl) ExportTasks(ctx context.Context, cfg ExportConfig) (*ExportFile, error) {
	data, err := s.load(ctx, cfg.Start, cfg.End)
	if err != nil {
		return nil, err
	}
	tasks, err := filterByType(data.tasks, cfg.Type)
	if err != nil {
		return nil, err
	}

	wb := spreadsheet.NewWorkbook()
	wb.AddSheet(SheetTasks, validation.Columns, toCells(data.taskRows(tasks)))
	if cfg.IncludeStatistics {
		wb.AddSheet(SheetStatistics, statisticsHeader, data.statisticsRows(Aggregate(data.tasks), cfg.IncludeProjects))
	}

	filename := fmt.Sprintf("Tasks_%s_%s.xlsx", typeLabel(cfg.Type), rangeLabel(cfg.Start, cfg.End))
	return s.render(wb, filename, len(tasks))
}

// ExportProjectTasks renders one project's tasks on a sheet named after the project
func (s *exportServiceImpl) ExportProjectTasks(ctx context.Context, projectID int64, start, end time.Time) (*ExportFile, error) {
	dbProject, err := s.repo.GetProject(ctx, projectID)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return nil, err
		}
		return nil, errors.NewExportError("load project", err)
	}
	data, err := s.load(ctx, start, end)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0)
	for _, task := range data.tasks {
		if task.ProjectID != nil && *task.ProjectID == projectID {
			rows = append(rows, taskRow(task, dbProject.Name))
		}
	}

	wb := spreadsheet.NewWorkbook()
	wb.AddSheet(dbProject.Name, validation.Columns, toCells(rows))

	filename := fmt.Sprintf("%s_Tasks_%s.xlsx", safeFilename(dbProject.Name), rangeLabel(start, end))
	return s.render(wb, filename, len(rows))
}

// ExportWeeklySummary renders a per-day summary followed by every task in the range
func (s *exportServiceImpl) ExportWeeklySummary(ctx context.Context, start, end time.Time) (*ExportFile, error) {
	data, err := s.load(ctx, start, end)
	if err != nil {
		return nil, err
	}

	days := summariseDays(data.tasks)
	summary := make([][]any, len(days))
	for i, day := range days {
		summary[i] = []any{
			timefmt.FormatISODate(day.Date),
			day.TaskCount,
			day.CompletedCount,
			timefmt.MinutesToClock(day.TotalDuration),
			timefmt.MinutesToClock(day.WorkDuration),
			timefmt.MinutesToClock(day.PersonalDuration),
		}
	}

	wb := spreadsheet.NewWorkbook()
	wb.AddSheet(SheetDailySummary, dailySummaryHeader, summary)
	wb.AddSheet(SheetTasks, validation.Columns, toCells(data.taskRows(data.tasks)))

	filename := fmt.Sprintf("Weekly_Summary_%s.xlsx", rangeLabel(start, end))
	return s.render(wb, filename, len(data.tasks))
}

// ExportPDFReport renders the same tasks and statistics as ExportTasks as a printable report
func (s *exportServiceImpl) ExportPDFReport(ctx context.Context, cfg ExportConfig) (*ExportFile, error) {
	data, err := s.load(ctx, cfg.Start, cfg.End)
	if err != nil {
		return nil, err
	}
	tasks, err := filterByType(data.tasks, cfg.Type)
	if err != nil {
		return nil, err
	}

	report := pdfReport{
		Title:  fmt.Sprintf("%s Tasks", typeLabel(cfg.Type)),
		Period: fmt.Sprintf("%s - %s", timefmt.FormatDate(cfg.Start), timefmt.FormatDate(cfg.End)),
		Rows:   data.taskRows(tasks),
	}
	if cfg.IncludeStatistics {
		for _, row := range data.statisticsRows(Aggregate(data.tasks), cfg.IncludeProjects) {
			report.Statistics = append(report.Statistics, []string{fmt.Sprint(row[0]), fmt.Sprint(row[1])})
		}
	}

	content, err := renderPDFReport(report)
	if err != nil {
		return nil, errors.NewExportError("render pdf", err)
	}

	filename := fmt.Sprintf("Tasks_%s_%s.pdf", typeLabel(cfg.Type), rangeLabel(cfg.Start, cfg.End))
	logging.Debugf("export %s: %d tasks, %d bytes", filename, len(tasks), len(content))
	return &ExportFile{Filename: filename, Data: content}, nil
}

func (s *exportServiceImpl) render(wb *spreadsheet.Workbook, filename string, taskCount int) (*ExportFile, error) {
	content, err := wb.Bytes()
	if err != nil {
		return nil, errors.NewExportError("serialise workbook", err)
	}
	logging.Debugf("export %s: sheets %v, %d tasks, %d bytes", filename, wb.SheetNames(), taskCount, len(content))
	return &ExportFile{Filename: filename, Data: content}, nil
}

func toCells(rows [][]string) [][]any {
	cells := make([][]any, len(rows))
	for i, row := range rows {
		cells[i] = make([]any, len(row))
		for j, v := range row {
			cells[i][j] = v
		}
	}
	return cells
}

// safeFilename replaces characters that are not allowed in file names on common platforms.
func safeFilename(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" {
		return "Project"
	}
	return name
}
