package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/podryad/podryad/internal/domain"
)

// taskColumns is the shared list of columns for task queries.
var taskColumns = []string{
	"id", "title", "slug", "description", "author_id", "category_id",
	"location_type", "city_id", "price", "payment_period", "status",
	"is_active", "is_moderated", "moderation_comment", "created_at", "updated_at",
}

// TaskRepository handles database operations for tasks.
type TaskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

// scanTask scans a single row into a Task struct.
func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Slug,
		&task.Description,
		&task.AuthorID,
		&task.CategoryID,
		&task.LocationType,
		&task.CityID,
		&task.Price,
		&task.PaymentPeriod,
		&task.Status,
		&task.IsActive,
		&task.IsModerated,
		&task.ModerationComment,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	return &task, nil
}

// scanTasks scans multiple rows into a slice of Task structs.
func scanTasks(rows pgx.Rows) ([]*domain.Task, error) {
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return tasks, nil
}

// GetByID retrieves a task by ID.
func (r *TaskRepository) GetByID(ctx context.Context, taskID string) (*domain.Task, error) {
	query, args, err := psql.
		Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"id": taskID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for task: %w", err)
	}

	return scanTask(r.pool.QueryRow(ctx, query, args...))
}

// GetBySlug retrieves a task by its unique slug.
func (r *TaskRepository) GetBySlug(ctx context.Context, taskSlug string) (*domain.Task, error) {
	query, args, err := psql.
		Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"slug": taskSlug}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetBySlug query for task: %w", err)
	}

	return scanTask(r.pool.QueryRow(ctx, query, args...))
}

// GetByIDForUpdate retrieves a task by ID with FOR UPDATE lock (within transaction).
func (r *TaskRepository) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, taskID string) (*domain.Task, error) {
	query, args, err := psql.
		Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"id": taskID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByIDForUpdate query for task %s: %w", taskID, err)
	}

	return scanTask(tx.QueryRow(ctx, query, args...))
}

// Create inserts a new task. ID, CreatedAt and UpdatedAt are populated
// on return.
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	query, args, err := psql.
		Insert("tasks").
		Columns(
			"title", "slug", "description", "author_id", "category_id",
			"location_type", "city_id", "price", "payment_period", "status",
			"is_active", "is_moderated",
		).
		Values(
			task.Title,
			task.Slug,
			task.Description,
			task.AuthorID,
			task.CategoryID,
			task.LocationType,
			task.CityID,
			task.Price,
			task.PaymentPeriod,
			task.Status,
			task.IsActive,
			task.IsModerated,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for task: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	return task, nil
}

// Update saves the editable fields of a task (within transaction). The
// moderation flag is written as given so an edit can force
// re-moderation. The status guard rejects an edit once the task left
// the open status, even against a stale in-memory copy.
func (r *TaskRepository) Update(ctx context.Context, tx pgx.Tx, task *domain.Task) error {
	query, args, err := psql.
		Update("tasks").
		Set("title", task.Title).
		Set("description", task.Description).
		Set("category_id", task.CategoryID).
		Set("location_type", task.LocationType).
		Set("city_id", task.CityID).
		Set("price", task.Price).
		Set("payment_period", task.PaymentPeriod).
		Set("is_active", task.IsActive).
		Set("is_moderated", task.IsModerated).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{
			"id":     task.ID,
			"status": domain.TaskStatusOpen,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build Update query for task %s: %w", task.ID, err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: task %s left the open status", domain.ErrTaskLocked, task.ID)
	}
	return nil
}

// UpdateStatus moves the task status with an optimistic guard on the old
// status. Returns ErrTaskModified if the row no longer matches oldStatus.
func (r *TaskRepository) UpdateStatus(
	ctx context.Context,
	tx pgx.Tx,
	taskID string,
	oldStatus domain.TaskStatus,
	newStatus domain.TaskStatus,
) error {
	query, args, err := psql.
		Update("tasks").
		Set("status", newStatus).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{
			"id":     taskID,
			"status": oldStatus,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build UpdateStatus query for task %s: %w", taskID, err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update task status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTaskModified
	}

	return nil
}

// SetModeration approves or rejects a task, storing the moderator comment.
func (r *TaskRepository) SetModeration(ctx context.Context, taskID string, moderated bool, comment string) error {
	query, args, err := psql.
		Update("tasks").
		Set("is_moderated", moderated).
		Set("moderation_comment", comment).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": taskID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build SetModeration query for task %s: %w", taskID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set task moderation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// SlugExists reports whether a task already uses the given slug.
func (r *TaskRepository) SlugExists(ctx context.Context, taskSlug string) (bool, error) {
	query, args, err := psql.
		Select("1").
		From("tasks").
		Where(sq.Eq{"slug": taskSlug}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build SlugExists query: %w", err)
	}

	var one int
	err = r.pool.QueryRow(ctx, query, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check task slug: %w", err)
	}
	return true, nil
}
