package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/vytor/bardspeak/internal/logger"
	"github.com/vytor/bardspeak/internal/models"
	"github.com/vytor/bardspeak/internal/repository"
)

type taskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new TaskRepository implementation
func NewTaskRepository(db *sql.DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Get(ctx context.Context, id int64) (*models.Task, error) {
	log := logger.FromContext(ctx).WithPrefix("task_repo")
	log.Debug("getting task: id=%d", id)

	var t models.Task
	err := r.db.QueryRowContext(ctx, `
SELECT id, title, description, department, due_date, is_active, module_type, content_id, created_at
FROM tasks
WHERE id = ?
`, id).Scan(&t.ID, &t.Title, &t.Description, &t.Department, &t.DueDate, &t.IsActive, &t.ModuleType, &t.ContentID, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found: id=%d", id)
		} else {
			log.Error("failed to get task: %v", err)
		}
		return nil, err
	}
	return &t, nil
}

func (r *taskRepository) List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	log := logger.FromContext(ctx).WithPrefix("task_repo")
	log.Debug("listing tasks: department=%s, active_only=%t", filter.Department, filter.ActiveOnly)

	query := sqlBuilder.Select(
		"id", "title", "description", "department", "due_date", "is_active", "module_type", "content_id", "created_at",
	).From("tasks")

	if filter.Department != "" {
		query = query.Where(squirrel.Or{
			squirrel.Eq{"department": filter.Department},
			squirrel.Eq{"department": "ALL"},
		})
	}
	if filter.ActiveOnly {
		query = query.Where(squirrel.Eq{"is_active": true})
	}

	// Dated tasks first, soonest due date on top.
	query = query.OrderBy("due_date IS NULL", "due_date", "id")

	sql, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sql, args...)
	if err != nil {
		log.Error("failed to list tasks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Department, &t.DueDate, &t.IsActive, &t.ModuleType, &t.ContentID, &t.CreatedAt); err != nil {
			log.Error("failed to scan task row: %v", err)
			return nil, err
		}
		tasks = append(tasks, t)
	}
	log.Debug("found %d tasks", len(tasks))
	return tasks, rows.Err()
}

func (r *taskRepository) Insert(ctx context.Context, t models.Task) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("task_repo")
	log.Debug("inserting task: title=%s, department=%s", t.Title, t.Department)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO tasks (title, description, department, due_date, is_active, module_type, content_id)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, t.Title, t.Description, t.Department, t.DueDate, t.IsActive, t.ModuleType, t.ContentID)
	if err != nil {
		log.Error("failed to insert task: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *taskRepository) Update(ctx context.Context, t models.Task) error {
	log := logger.FromContext(ctx).WithPrefix("task_repo")
	log.Debug("updating task: id=%d", t.ID)

	_, err := r.db.ExecContext(ctx, `
UPDATE tasks
SET title = ?, description = ?, department = ?, due_date = ?, is_active = ?, module_type = ?, content_id = ?
WHERE id = ?
`, t.Title, t.Description, t.Department, t.DueDate, t.IsActive, t.ModuleType, t.ContentID, t.ID)
	if err != nil {
		log.Error("failed to update task: %v", err)
	}
	return err
}
