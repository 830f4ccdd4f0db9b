package domain

import "time"

// TaskFilter selects tasks by inclusive date range, type, project and status.
// Zero values do not filter.
type TaskFilter struct {
	From      *time.Time
	To        *time.Time
	Type      TaskType
	ProjectID *int64
	Status    TaskStatus
}
