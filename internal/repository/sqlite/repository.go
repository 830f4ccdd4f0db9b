package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"timesheet/internal/errors"
	"timesheet/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// TaskFilter narrows a task search. Nil fields do not filter.
type TaskFilter struct {
	From      *time.Time // inclusive, compared by calendar date
	To        *time.Time // inclusive, compared by calendar date
	Type      *string
	ProjectID *int64
	Status    *string
}

// Repository defines the interface for database operations
type Repository interface {
	// Tasks
	CreateTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, id int64) (*Task, error)
	ListTasks(ctx context.Context) ([]*Task, error)
	SearchTasks(ctx context.Context, filter TaskFilter) ([]*Task, error)
	UpdateTask(ctx context.Context, task *Task) error
	DeleteTask(ctx context.Context, id int64) error

	// Projects
	CreateProject(ctx context.Context, project *Project) error
	GetProject(ctx context.Context, id int64) (*Project, error)
	ListProjects(ctx context.Context) ([]*Project, error)
	UpdateProject(ctx context.Context, project *Project) error
	DeleteProject(ctx context.Context, id int64) error

	// Notification settings
	GetNotificationSettings(ctx context.Context) (*NotificationSettings, error)
	SaveNotificationSettings(ctx context.Context, settings *NotificationSettings) error

	// Utility
	Close() error
}

// Options configures how the database connection is opened
type Options struct {
	MaxOpenConns int
	BusyTimeout  time.Duration
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// New creates a new SQLite repository instance with default options
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(context.Background(), dbPath, Options{})
}

// NewWithOptions opens the database, applies connection options and runs migrations.
// An in-memory database is pinned to a single connection so every query sees the same data.
func NewWithOptions(ctx context.Context, dbPath string, opts Options) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if strings.Contains(dbPath, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	if opts.BusyTimeout > 0 {
		if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA busy_timeout = %d", opts.BusyTimeout.Milliseconds())); err != nil {
			db.Close()
			return nil, errors.NewDatabaseError("set busy timeout", err)
		}
	}

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// CreateTask creates a new task
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *Task) error {
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}

	query := `
	INSERT INTO tasks (title, description, type, project_id, date, start_time, end_time, duration, status, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query,
		task.Title,
		task.Description,
		task.Type,
		FormatInt64PtrForDB(task.ProjectID),
		FormatDateForDB(task.Date),
		FormatClockPtrForDB(task.StartTime),
		FormatClockPtrForDB(task.EndTime),
		FormatIntPtrForDB(task.Duration),
		task.Status,
		FormatTimeForDB(task.CreatedAt),
	)
	if err != nil {
		return err
	}

	task.ID = id
	return nil
}

// GetTask retrieves a task by ID
func (r *SQLiteRepository) GetTask(ctx context.Context, id int64) (*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanTask, "task", fmt.Sprintf("%d", id), id)
}

// ListTasks retrieves all tasks
func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]*Task, error) {
	return r.SearchTasks(ctx, TaskFilter{})
}

// SearchTasks retrieves tasks matching the filter ordered by date, start time and id
func (r *SQLiteRepository) SearchTasks(ctx context.Context, filter TaskFilter) ([]*Task, error) {
	var conditions []string
	var args []interface{}

	if filter.From != nil {
		conditions = append(conditions, "date >= ?")
		args = append(args, FormatDateForDB(*filter.From))
	}
	if filter.To != nil {
		conditions = append(conditions, "date <= ?")
		args = append(args, FormatDateForDB(*filter.To))
	}
	if filter.Type != nil {
		conditions = append(conditions, "type = ?")
		args = append(args, *filter.Type)
	}
	if filter.ProjectID != nil {
		conditions = append(conditions, "project_id = ?")
		args = append(args, *filter.ProjectID)
	}
	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *filter.Status)
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date ASC, start_time ASC, id ASC"

	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks", args...)
}

// UpdateTask updates an existing task
func (r *SQLiteRepository) UpdateTask(ctx context.Context, task *Task) error {
	query := `
	UPDATE tasks
	SET title = ?, description = ?, type = ?, project_id = ?, date = ?, start_time = ?, end_time = ?, duration = ?, status = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, r.db, query, "task", fmt.Sprintf("%d", task.ID),
		task.Title,
		task.Description,
		task.Type,
		FormatInt64PtrForDB(task.ProjectID),
		FormatDateForDB(task.Date),
		FormatClockPtrForDB(task.StartTime),
		FormatClockPtrForDB(task.EndTime),
		FormatIntPtrForDB(task.Duration),
		task.Status,
		task.ID,
	)
}

// DeleteTask deletes a task by ID
func (r *SQLiteRepository) DeleteTask(ctx context.Context, id int64) error {
	query := `DELETE FROM tasks WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "task", fmt.Sprintf("%d", id), id)
}

// CreateProject creates a new project
func (r *SQLiteRepository) CreateProject(ctx context.Context, project *Project) error {
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now()
	}

	query := `INSERT INTO projects (name, type, color, created_at) VALUES (?, ?, ?, ?)`
	id, err := ExecuteWithLastInsertID(ctx, r.db, query, project.Name, project.Type, project.Color, FormatTimeForDB(project.CreatedAt))
	if err != nil {
		return err
	}
	project.ID = id
	return nil
}

// GetProject retrieves a project by ID
func (r *SQLiteRepository) GetProject(ctx context.Context, id int64) (*Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanProject, "project", fmt.Sprintf("%d", id), id)
}

// ListProjects retrieves all projects in creation order
func (r *SQLiteRepository) ListProjects(ctx context.Context) ([]*Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY id ASC`
	return QueryMultiple(ctx, r.db, query, ScanProjects, "projects")
}

// UpdateProject updates an existing project
func (r *SQLiteRepository) UpdateProject(ctx context.Context, project *Project) error {
	query := `UPDATE projects SET name = ?, type = ?, color = ? WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "project", fmt.Sprintf("%d", project.ID), project.Name, project.Type, project.Color, project.ID)
}

// DeleteProject deletes a project. Its tasks are kept and lose their project.
func (r *SQLiteRepository) DeleteProject(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE tasks SET project_id = NULL WHERE project_id = ?`, id); err != nil {
		return HandleDatabaseError("detach project tasks", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return HandleDatabaseError("delete project", err)
	}
	if err := ValidateRowsAffected(result, "project", fmt.Sprintf("%d", id)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit transaction", err)
	}
	return nil
}

// GetNotificationSettings retrieves the reminder settings
func (r *SQLiteRepository) GetNotificationSettings(ctx context.Context) (*NotificationSettings, error) {
	query := `SELECT enabled, time, days FROM notification_settings WHERE id = 1`
	return QuerySingle(ctx, r.db, query, ScanNotificationSettings, "notification settings", "1")
}

// SaveNotificationSettings replaces the reminder settings
func (r *SQLiteRepository) SaveNotificationSettings(ctx context.Context, settings *NotificationSettings) error {
	query := `
	INSERT INTO notification_settings (id, enabled, time, days) VALUES (1, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET enabled = excluded.enabled, time = excluded.time, days = excluded.days`

	if _, err := r.db.ExecContext(ctx, query, settings.Enabled, settings.Time, settings.Days); err != nil {
		return HandleDatabaseError("save notification settings", err)
	}
	return nil
}
