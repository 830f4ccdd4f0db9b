package services

import (
	"context"
	"strings"

	"timesheet/internal/domain"
	"timesheet/internal/repository/sqlite"
)

// searchServiceImpl implements the SearchService interface
type searchServiceImpl struct {
	repo   sqlite.Repository
	mapper *domain.Mapper
}

// NewSearchService creates a new SearchService instance
func NewSearchService(repo sqlite.Repository) SearchService {
	return &searchServiceImpl{
		repo:   repo,
		mapper: domain.NewMapper(),
	}
}

// matchesTextFilter checks title and description case-insensitively
func (s *searchServiceImpl) matchesTextFilter(task domain.Task, textFilter string) bool {
	if textFilter == "" {
		return true
	}
	needle := strings.ToLower(textFilter)
	return strings.Contains(strings.ToLower(task.Title), needle) ||
		strings.Contains(strings.ToLower(task.Description), needle)
}

// buildTaskFilter converts search criteria to a store filter
func (s *searchServiceImpl) buildTaskFilter(criteria SearchCriteria) domain.TaskFilter {
	filter := domain.TaskFilter{
		Type:      criteria.Type,
		ProjectID: criteria.ProjectID,
		Status:    criteria.Status,
	}
	if criteria.Range != nil {
		filter.From = &criteria.Range.Start
		filter.To = &criteria.Range.End
	}
	return filter
}

// SearchTasks returns tasks matching the criteria ordered by date and start time
func (s *searchServiceImpl) SearchTasks(ctx context.Context, criteria SearchCriteria) ([]domain.Task, error) {
	filter := s.mapper.TaskFilter.ToDatabase(s.buildTaskFilter(criteria))
	dbTasks, err := s.repo.SearchTasks(ctx, filter)
	if err != nil {
		return nil, err
	}

	textFilter := strings.TrimSpace(criteria.TextFilter)
	tasks := make([]domain.Task, 0, len(dbTasks))
	for _, task := range s.mapper.Task.FromDatabaseSlice(dbTasks) {
		if s.matchesTextFilter(task, textFilter) {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

// GroupByDate summarises tasks per calendar day, ascending
func (s *searchServiceImpl) GroupByDate(tasks []domain.Task) []DaySummary {
	return summariseDays(tasks)
}
