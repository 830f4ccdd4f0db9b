package domain

import (
	"strings"
	"time"
)

// TaskType classifies a task or a project.
type TaskType string

const (
	TaskTypeWork     TaskType = "work"
	TaskTypePersonal TaskType = "personal"
)

// ParseTaskType maps "work" (any case) to TaskTypeWork and everything else to TaskTypePersonal.
func ParseTaskType(s string) TaskType {
	if strings.EqualFold(strings.TrimSpace(s), string(TaskTypeWork)) {
		return TaskTypeWork
	}
	return TaskTypePersonal
}

// ParseTaskTypeStrict accepts only "work" or "personal", in any case.
func ParseTaskTypeStrict(s string) (TaskType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(TaskTypeWork):
		return TaskTypeWork, true
	case string(TaskTypePersonal):
		return TaskTypePersonal, true
	}
	return "", false
}

// IsValid reports whether t is one of the known types.
func (t TaskType) IsValid() bool {
	return t == TaskTypeWork || t == TaskTypePersonal
}

// Display returns the capitalised form used in spreadsheets.
func (t TaskType) Display() string {
	switch t {
	case TaskTypeWork:
		return "Work"
	case TaskTypePersonal:
		return "Personal"
	}
	return string(t)
}

// TaskStatus is the completion state of a task.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// ParseTaskStatus maps "completed" (any case) to TaskStatusCompleted and everything else to pending.
func ParseTaskStatus(s string) TaskStatus {
	if strings.EqualFold(strings.TrimSpace(s), string(TaskStatusCompleted)) {
		return TaskStatusCompleted
	}
	return TaskStatusPending
}

// Task is a unit of tracked work or personal activity on one calendar day.
type Task struct {
	ID          int64
	Title       string
	Description string
	Type        TaskType
	ProjectID   *int64
	Date        time.Time
	StartTime   *time.Time
	EndTime     *time.Time
	Duration    *int // minutes
	Status      TaskStatus
	CreatedAt   time.Time
}

// IsValid checks the fields every stored task must have.
func (t Task) IsValid() bool {
	return strings.TrimSpace(t.Title) != "" && t.Type.IsValid() && !t.Date.IsZero()
}

// IsCompleted reports whether the task is done.
func (t Task) IsCompleted() bool {
	return t.Status == TaskStatusCompleted
}

// DurationMinutes returns the duration, treating an unknown duration as zero.
func (t Task) DurationMinutes() int {
	if t.Duration == nil {
		return 0
	}
	return *t.Duration
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}

// TaskDraft is a validated task that has not been persisted yet.
type TaskDraft struct {
	Title       string
	Description string
	Type        TaskType
	ProjectID   *int64
	Date        time.Time
	StartTime   *time.Time
	EndTime     *time.Time
	Duration    *int
	Status      TaskStatus
}

// ToTask converts the draft into an unsaved Task.
func (d TaskDraft) ToTask() Task {
	return Task{
		Title:       d.Title,
		Description: d.Description,
		Type:        d.Type,
		ProjectID:   d.ProjectID,
		Date:        d.Date,
		StartTime:   d.StartTime,
		EndTime:     d.EndTime,
		Duration:    d.Duration,
		Status:      d.Status,
	}
}
