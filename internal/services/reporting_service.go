package services

import (
	"context"
	"time"

	"timesheet/internal/domain"
	"timesheet/internal/errors"
	"timesheet/internal/repository/sqlite"
	"timesheet/internal/validation"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	repo          sqlite.Repository
	timeService   TimeService
	mapper        *domain.Mapper
	taskValidator *validation.TaskValidator
}

// NewReportingService creates a new ReportingService instance
func NewReportingService(repo sqlite.Repository, timeService TimeService) ReportingService {
	return &reportingServiceImpl{
		repo:          repo,
		timeService:   timeService,
		mapper:        domain.NewMapper(),
		taskValidator: validation.NewTaskValidator(),
	}
}

// GetStatistics aggregates the tasks dated within [start, end]
func (r *reportingServiceImpl) GetStatistics(ctx context.Context, start, end time.Time) (*domain.Statistics, error) {
	tasks, err := r.tasksInRange(ctx, domain.TaskFilter{From: &start, To: &end})
	if err != nil {
		return nil, err
	}

	stats := Aggregate(tasks)
	return &stats, nil
}

// GetTimesheetWeek returns the week containing date, optionally restricted to one task type
func (r *reportingServiceImpl) GetTimesheetWeek(ctx context.Context, date time.Time, taskType domain.TaskType) (*TimesheetWeek, error) {
	week := r.timeService.WeekOf(date)

	tasks, err := r.tasksInRange(ctx, domain.TaskFilter{From: &week.Start, To: &week.End, Type: taskType})
	if err != nil {
		return nil, err
	}

	return &TimesheetWeek{
		Start:  week.Start,
		End:    week.End,
		Days:   summariseWeek(week.Start, tasks),
		Totals: Aggregate(tasks),
	}, nil
}

func (r *reportingServiceImpl) tasksInRange(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	if filter.From != nil && filter.To != nil {
		if err := r.taskValidator.ValidateDateRange(*filter.From, *filter.To); err != nil {
			return nil, errors.NewValidationError("invalid date range", err)
		}
	}

	dbTasks, err := r.repo.SearchTasks(ctx, r.mapper.TaskFilter.ToDatabase(filter))
	if err != nil {
		return nil, err
	}
	return r.mapper.Task.FromDatabaseSlice(dbTasks), nil
}
