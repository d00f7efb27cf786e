package repository

import (
	"context"
	"fmt"
)

// UserStatsResult holds the public profile counters of a user.
type UserStatsResult struct {
	TasksPosted     int
	TasksCompleted  int
	ServicesOffered int
	ReviewsReceived int
	AverageRating   float64
}

// SiteStatsResult holds overall marketplace statistics.
type SiteStatsResult struct {
	TasksByStatus     map[string]int
	OpenTasks         int
	PendingModeration int
	RegisteredUsers   int
}

// GetUserStats retrieves the profile counters for one user.
func (r *TaskRepository) GetUserStats(ctx context.Context, userID string) (*UserStatsResult, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM tasks WHERE author_id = $1),
			(SELECT COUNT(*) FROM tasks t
			   JOIN task_responses tr ON tr.task_id = t.id AND tr.status = 'accepted'
			  WHERE tr.candidate_id = $1 AND t.status = 'completed'),
			(SELECT COUNT(*) FROM services WHERE author_id = $1 AND is_active),
			(SELECT COUNT(*) FROM reviews WHERE reviewed_user_id = $1),
			(SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE reviewed_user_id = $1)
	`

	var result UserStatsResult
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&result.TasksPosted,
		&result.TasksCompleted,
		&result.ServicesOffered,
		&result.ReviewsReceived,
		&result.AverageRating,
	)
	if err != nil {
		return nil, fmt.Errorf("query user stats: %w", err)
	}

	return &result, nil
}

// GetSiteStats retrieves overall marketplace statistics.
func (r *TaskRepository) GetSiteStats(ctx context.Context) (*SiteStatsResult, error) {
	tasksByStatus := make(map[string]int)
	rows, err := r.pool.Query(ctx, `
		SELECT status, COUNT(*)
		FROM tasks
		GROUP BY status
	`)
	if err != nil {
		return nil, fmt.Errorf("query tasks by status: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		tasksByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status rows: %w", err)
	}

	var pending int
	err = r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM tasks WHERE NOT is_moderated AND is_active) +
			(SELECT COUNT(*) FROM services WHERE NOT is_moderated AND is_active) +
			(SELECT COUNT(*) FROM vacancies WHERE NOT is_moderated AND is_active)
	`).Scan(&pending)
	if err != nil {
		return nil, fmt.Errorf("count pending moderation: %w", err)
	}

	var users int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&users); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	return &SiteStatsResult{
		TasksByStatus:     tasksByStatus,
		OpenTasks:         tasksByStatus["open"],
		PendingModeration: pending,
		RegisteredUsers:   users,
	}, nil
}
