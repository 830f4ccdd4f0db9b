package sqlite

import "time"

// Project is a row of the projects table
type Project struct {
	ID        int64
	Name      string
	Type      string
	Color     string
	CreatedAt time.Time
}

// Task is a row of the tasks table.
// StartTime and EndTime are stored as HH:MM text and anchored on Date when read back.
type Task struct {
	ID          int64
	Title       string
	Description string
	Type        string
	ProjectID   *int64 // NULL when the task has no project
	Date        time.Time
	StartTime   *time.Time
	EndTime     *time.Time
	Duration    *int // minutes
	Status      string
	CreatedAt   time.Time
}

// NotificationSettings is the single row of the notification_settings table.
// Days holds seven '0'/'1' flags, Sunday first.
type NotificationSettings struct {
	Enabled bool
	Time    string
	Days    string
}
