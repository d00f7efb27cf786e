package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/podryad/podryad/internal/domain"
)

// TaskListFilters holds all supported filters for public task listing.
type TaskListFilters struct {
	SectionSlug  string  // Optional: filter by category section
	CategorySlug string  // Optional: filter by category
	CityID       *string // Optional: filter by city
	AuthorID     *string // Optional: filter by author
	Limit        int     // Required: page size
	Offset       int     // Required: page offset
}

// listConditions applies the public-listing visibility gate plus the
// requested filters to a query builder.
func listConditions(qb sq.SelectBuilder, filters TaskListFilters) sq.SelectBuilder {
	qb = qb.Where(sq.Eq{
		"t.is_active":    true,
		"t.is_moderated": true,
		"t.status":       domain.TaskStatusOpen,
	})

	if filters.SectionSlug != "" {
		qb = qb.Join("categories c ON c.id = t.category_id").
			Join("category_sections cs ON cs.id = c.section_id").
			Where(sq.Eq{"cs.slug": filters.SectionSlug})
		if filters.CategorySlug != "" {
			qb = qb.Where(sq.Eq{"c.slug": filters.CategorySlug})
		}
	} else if filters.CategorySlug != "" {
		qb = qb.Join("categories c ON c.id = t.category_id").
			Where(sq.Eq{"c.slug": filters.CategorySlug})
	}

	if filters.CityID != nil {
		qb = qb.Where(sq.Eq{"t.city_id": *filters.CityID})
	}
	if filters.AuthorID != nil {
		qb = qb.Where(sq.Eq{"t.author_id": *filters.AuthorID})
	}

	return qb
}

// prefixed returns the task columns qualified with the tasks alias.
func prefixed() []string {
	cols := make([]string, len(taskColumns))
	for i, c := range taskColumns {
		cols[i] = "t." + c
	}
	return cols
}

// List retrieves publicly visible tasks with filters and pagination,
// newest first, along with the unpaginated total.
func (r *TaskRepository) List(ctx context.Context, filters TaskListFilters) ([]*domain.Task, int, error) {
	qb := listConditions(psql.Select(prefixed()...).From("tasks t"), filters).
		OrderBy("t.created_at DESC").
		Limit(uint64(filters.Limit)).
		Offset(uint64(filters.Offset))

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build List query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query tasks: %w", err)
	}

	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := listConditions(psql.Select("COUNT(*)").From("tasks t"), filters).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	return tasks, total, nil
}

// ListByAuthor retrieves all tasks of one author regardless of
// visibility, newest first. Used for the author's own dashboard.
func (r *TaskRepository) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Task, error) {
	query, args, err := psql.
		Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"author_id": authorID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListByAuthor query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query author tasks: %w", err)
	}

	return scanTasks(rows)
}

// ListPendingModeration retrieves tasks waiting for a moderator decision.
func (r *TaskRepository) ListPendingModeration(ctx context.Context) ([]*domain.Task, error) {
	query, args, err := psql.
		Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"is_moderated": false, "is_active": true}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListPendingModeration query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query pending tasks: %w", err)
	}

	return scanTasks(rows)
}
