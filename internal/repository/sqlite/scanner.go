package sqlite

import (
	"database/sql"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

const taskColumns = `id, title, description, type, project_id, date, start_time, end_time, duration, status, created_at`

const projectColumns = `id, name, type, color, created_at`

// ScanTask scans a single task from a database row
func ScanTask(scanner Scanner) (*Task, error) {
	task := &Task{}
	var (
		projectID sql.NullInt64
		date      string
		startTime sql.NullString
		endTime   sql.NullString
		duration  sql.NullInt64
		createdAt string
	)

	err := scanner.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Type,
		&projectID,
		&date,
		&startTime,
		&endTime,
		&duration,
		&task.Status,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if task.Date, err = ParseDateFromDB(date); err != nil {
		return nil, err
	}
	if task.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	if projectID.Valid {
		id := projectID.Int64
		task.ProjectID = &id
	}
	if startTime.Valid {
		if task.StartTime, err = ParseClockFromDB(task.Date, startTime.String); err != nil {
			return nil, err
		}
	}
	if endTime.Valid {
		if task.EndTime, err = ParseClockFromDB(task.Date, endTime.String); err != nil {
			return nil, err
		}
	}
	if duration.Valid {
		minutes := int(duration.Int64)
		task.Duration = &minutes
	}

	return task, nil
}

// ScanTasks scans multiple tasks from database rows
func ScanTasks(rows Rows) ([]*Task, error) {
	var tasks []*Task
	for rows.Next() {
		task, err := ScanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

// ScanProject scans a single project from a database row
func ScanProject(scanner Scanner) (*Project, error) {
	project := &Project{}
	var createdAt string
	err := scanner.Scan(&project.ID, &project.Name, &project.Type, &project.Color, &createdAt)
	if err != nil {
		return nil, err
	}
	if project.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	return project, nil
}

// ScanProjects scans multiple projects from database rows
func ScanProjects(rows Rows) ([]*Project, error) {
	var projects []*Project
	for rows.Next() {
		project, err := ScanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return projects, nil
}

// ScanNotificationSettings scans the notification settings row
func ScanNotificationSettings(scanner Scanner) (*NotificationSettings, error) {
	settings := &NotificationSettings{}
	if err := scanner.Scan(&settings.Enabled, &settings.Time, &settings.Days); err != nil {
		return nil, err
	}
	return settings, nil
}
