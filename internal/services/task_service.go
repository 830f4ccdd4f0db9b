package services

import (
	"context"
	"strings"

	"timesheet/internal/domain"
	"timesheet/internal/errors"
	"timesheet/internal/repository/sqlite"
	"timesheet/internal/validation"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo          sqlite.Repository
	timeService   TimeService
	mapper        *domain.Mapper
	taskValidator *validation.TaskValidator
}

// NewTaskService creates a new TaskService instance
func NewTaskService(repo sqlite.Repository, timeService TimeService) TaskService {
	return NewTaskServiceWithValidator(repo, timeService, validation.NewTaskValidator())
}

// NewTaskServiceWithValidator creates a TaskService using the given validator
func NewTaskServiceWithValidator(repo sqlite.Repository, timeService TimeService, validator *validation.TaskValidator) TaskService {
	return &taskServiceImpl{
		repo:          repo,
		timeService:   timeService,
		mapper:        domain.NewMapper(),
		taskValidator: validator,
	}
}

// CreateTask validates and stores a manually entered task. When no duration is given it is
// derived from the start and end times.
func (t *taskServiceImpl) CreateTask(ctx context.Context, input TaskInput) (*domain.Task, error) {
	draft := domain.TaskDraft{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Type:        input.Type,
		ProjectID:   input.ProjectID,
		Date:        input.Date,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Duration:    input.Duration,
		Status:      input.Status,
	}
	if draft.Duration == nil {
		draft.Duration = t.timeService.DeriveDuration(draft.StartTime, draft.EndTime)
	}
	if draft.Status == "" {
		draft.Status = domain.TaskStatusPending
	}

	if err := t.taskValidator.ValidateDraft(draft); err != nil {
		return nil, errors.NewValidationError("invalid task", err)
	}

	if _, err := t.repo.GetProject(ctx, *draft.ProjectID); err != nil {
		return nil, err
	}

	dbTask := t.mapper.Task.ToDatabase(draft.ToTask())
	if err := t.repo.CreateTask(ctx, &dbTask); err != nil {
		return nil, err
	}

	task := t.mapper.Task.FromDatabase(dbTask)
	return &task, nil
}

// GetTask retrieves a task by its ID
func (t *taskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return nil, errors.NewValidationError("invalid task ID", err)
	}

	dbTask, err := t.repo.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	task := t.mapper.Task.FromDatabase(*dbTask)
	return &task, nil
}

// ListTasks returns the tasks matching filter ordered by date and start time
func (t *taskServiceImpl) ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	dbTasks, err := t.repo.SearchTasks(ctx, t.mapper.TaskFilter.ToDatabase(filter))
	if err != nil {
		return nil, err
	}
	return t.mapper.Task.FromDatabaseSlice(dbTasks), nil
}

// CompleteTask marks a task as completed
func (t *taskServiceImpl) CompleteTask(ctx context.Context, id int64) (*domain.Task, error) {
	return t.setStatus(ctx, id, domain.TaskStatusCompleted)
}

// ReopenTask marks a task as pending again
func (t *taskServiceImpl) ReopenTask(ctx context.Context, id int64) (*domain.Task, error) {
	return t.setStatus(ctx, id, domain.TaskStatusPending)
}

func (t *taskServiceImpl) setStatus(ctx context.Context, id int64, status domain.TaskStatus) (*domain.Task, error) {
	task, err := t.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Status == status {
		return task, nil
	}

	task.Status = status
	dbTask := t.mapper.Task.ToDatabase(*task)
	if err := t.repo.UpdateTask(ctx, &dbTask); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes a task
func (t *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return errors.NewValidationError("invalid task ID", err)
	}
	return t.repo.DeleteTask(ctx, id)
}
