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

var responseColumns = []string{
	"id", "task_id", "candidate_id", "message", "status", "created_at", "updated_at",
}

// ResponseRepository handles database operations for task responses.
type ResponseRepository struct {
	pool *pgxpool.Pool
}

// NewResponseRepository creates a new ResponseRepository.
func NewResponseRepository(pool *pgxpool.Pool) *ResponseRepository {
	return &ResponseRepository{pool: pool}
}

func scanResponse(row pgx.Row) (*domain.TaskResponse, error) {
	var resp domain.TaskResponse
	err := row.Scan(
		&resp.ID,
		&resp.TaskID,
		&resp.CandidateID,
		&resp.Message,
		&resp.Status,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrResponseNotFound
		}
		return nil, fmt.Errorf("scan response: %w", err)
	}
	return &resp, nil
}

func scanResponses(rows pgx.Rows) ([]*domain.TaskResponse, error) {
	defer rows.Close()

	var responses []*domain.TaskResponse
	for rows.Next() {
		resp, err := scanResponse(rows)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return responses, nil
}

// GetByID retrieves a response by ID.
func (r *ResponseRepository) GetByID(ctx context.Context, responseID string) (*domain.TaskResponse, error) {
	query, args, err := psql.
		Select(responseColumns...).
		From("task_responses").
		Where(sq.Eq{"id": responseID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for response: %w", err)
	}

	return scanResponse(r.pool.QueryRow(ctx, query, args...))
}

// GetByIDForUpdate retrieves a response with FOR UPDATE lock (within transaction).
func (r *ResponseRepository) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, responseID string) (*domain.TaskResponse, error) {
	query, args, err := psql.
		Select(responseColumns...).
		From("task_responses").
		Where(sq.Eq{"id": responseID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByIDForUpdate query for response %s: %w", responseID, err)
	}

	return scanResponse(tx.QueryRow(ctx, query, args...))
}

// GetByTaskAndCandidate retrieves the single response a candidate left on a task.
func (r *ResponseRepository) GetByTaskAndCandidate(ctx context.Context, taskID, candidateID string) (*domain.TaskResponse, error) {
	query, args, err := psql.
		Select(responseColumns...).
		From("task_responses").
		Where(sq.Eq{"task_id": taskID, "candidate_id": candidateID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByTaskAndCandidate query: %w", err)
	}

	return scanResponse(r.pool.QueryRow(ctx, query, args...))
}

// GetAccepted retrieves the sole accepted response of a task, if any.
func (r *ResponseRepository) GetAccepted(ctx context.Context, taskID string) (*domain.TaskResponse, error) {
	query, args, err := psql.
		Select(responseColumns...).
		From("task_responses").
		Where(sq.Eq{"task_id": taskID, "status": domain.ResponseStatusAccepted}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetAccepted query: %w", err)
	}

	return scanResponse(r.pool.QueryRow(ctx, query, args...))
}

// ListByTask retrieves all responses on a task, oldest first.
func (r *ResponseRepository) ListByTask(ctx context.Context, taskID string) ([]*domain.TaskResponse, error) {
	query, args, err := psql.
		Select(responseColumns...).
		From("task_responses").
		Where(sq.Eq{"task_id": taskID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListByTask query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query responses: %w", err)
	}

	return scanResponses(rows)
}

// ListByCandidate retrieves all responses a candidate has left, newest first.
func (r *ResponseRepository) ListByCandidate(ctx context.Context, candidateID string) ([]*domain.TaskResponse, error) {
	query, args, err := psql.
		Select(responseColumns...).
		From("task_responses").
		Where(sq.Eq{"candidate_id": candidateID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListByCandidate query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query candidate responses: %w", err)
	}

	return scanResponses(rows)
}

// Create inserts a new pending response. A duplicate (task, candidate)
// pair surfaces the unique constraint for the service to resolve.
func (r *ResponseRepository) Create(ctx context.Context, resp *domain.TaskResponse) (*domain.TaskResponse, error) {
	query, args, err := psql.
		Insert("task_responses").
		Columns("task_id", "candidate_id", "message", "status").
		Values(resp.TaskID, resp.CandidateID, resp.Message, resp.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for response: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&resp.ID, &resp.CreatedAt, &resp.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "task_responses_task_id_candidate_id_key") {
			return nil, domain.ErrValidation
		}
		return nil, fmt.Errorf("create response: %w", err)
	}

	return resp, nil
}

// UpdateStatus moves a response status within a transaction, guarded on
// the old status. The partial unique index on accepted responses backs
// the sole-executor invariant; a violation maps to ErrExecutorAssigned.
func (r *ResponseRepository) UpdateStatus(
	ctx context.Context,
	tx pgx.Tx,
	responseID string,
	oldStatus domain.ResponseStatus,
	newStatus domain.ResponseStatus,
) error {
	query, args, err := psql.
		Update("task_responses").
		Set("status", newStatus).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{
			"id":     responseID,
			"status": oldStatus,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build UpdateStatus query for response %s: %w", responseID, err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, "uq_task_responses_accepted") {
			return domain.ErrExecutorAssigned
		}
		return fmt.Errorf("update response status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTaskModified
	}

	return nil
}

// CountAcceptedForTask counts accepted responses on a task within a
// transaction. Used as the transactional guard before accepting.
func (r *ResponseRepository) CountAcceptedForTask(ctx context.Context, tx pgx.Tx, taskID string) (int, error) {
	query, args, err := psql.
		Select("COUNT(*)").
		From("task_responses").
		Where(sq.Eq{"task_id": taskID, "status": domain.ResponseStatusAccepted}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build CountAcceptedForTask query: %w", err)
	}

	var count int
	if err := tx.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count accepted responses: %w", err)
	}
	return count, nil
}
