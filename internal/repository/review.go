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

var reviewColumns = []string{
	"id", "task_id", "reviewer_id", "reviewed_user_id", "rating", "comment", "created_at",
}

// ReviewRepository handles database operations for reviews.
type ReviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

func scanReview(row pgx.Row) (*domain.Review, error) {
	var review domain.Review
	err := row.Scan(
		&review.ID,
		&review.TaskID,
		&review.ReviewerID,
		&review.ReviewedUserID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("scan review: %w", err)
	}
	return &review, nil
}

// GetByTaskAndReviewer retrieves the single review a user left on a task.
func (r *ReviewRepository) GetByTaskAndReviewer(ctx context.Context, taskID, reviewerID string) (*domain.Review, error) {
	query, args, err := psql.
		Select(reviewColumns...).
		From("reviews").
		Where(sq.Eq{"task_id": taskID, "reviewer_id": reviewerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByTaskAndReviewer query: %w", err)
	}

	return scanReview(r.pool.QueryRow(ctx, query, args...))
}

// ListForUser retrieves all reviews received by a user, newest first.
func (r *ReviewRepository) ListForUser(ctx context.Context, userID string) ([]*domain.Review, error) {
	query, args, err := psql.
		Select(reviewColumns...).
		From("reviews").
		Where(sq.Eq{"reviewed_user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListForUser query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*domain.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return reviews, nil
}

// Create inserts a new review. A duplicate (task, reviewer) pair maps to
// ErrReviewExists via the unique constraint.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	query, args, err := psql.
		Insert("reviews").
		Columns("task_id", "reviewer_id", "reviewed_user_id", "rating", "comment").
		Values(review.TaskID, review.ReviewerID, review.ReviewedUserID, review.Rating, review.Comment).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for review: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "reviews_task_id_reviewer_id_key") {
			return nil, domain.ErrReviewExists
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	return review, nil
}

// AverageRating returns the mean rating received by a user and the number
// of reviews it is based on. Zero reviews yields (0, 0).
func (r *ReviewRepository) AverageRating(ctx context.Context, userID string) (float64, int, error) {
	query, args, err := psql.
		Select("COALESCE(AVG(rating), 0)", "COUNT(*)").
		From("reviews").
		Where(sq.Eq{"reviewed_user_id": userID}).
		ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("build AverageRating query: %w", err)
	}

	var avg float64
	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&avg, &count); err != nil {
		return 0, 0, fmt.Errorf("average rating: %w", err)
	}
	return avg, count, nil
}
