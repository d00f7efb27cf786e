package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/podryad/podryad/internal/domain"
)

// ModerationRepository handles database operations for warnings, bans
// and user complaints.
type ModerationRepository struct {
	pool *pgxpool.Pool
}

// NewModerationRepository creates a new ModerationRepository.
func NewModerationRepository(pool *pgxpool.Pool) *ModerationRepository {
	return &ModerationRepository{pool: pool}
}

// CreateWarning records a disciplinary warning for a user.
func (r *ModerationRepository) CreateWarning(ctx context.Context, warning *domain.UserWarning) (*domain.UserWarning, error) {
	query, args, err := psql.
		Insert("user_warnings").
		Columns("user_id", "issued_by_id", "reason").
		Values(warning.UserID, warning.IssuedByID, warning.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build CreateWarning query: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&warning.ID, &warning.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create warning: %w", err)
	}
	return warning, nil
}

// ListWarnings retrieves the warnings issued to a user, newest first.
func (r *ModerationRepository) ListWarnings(ctx context.Context, userID string) ([]*domain.UserWarning, error) {
	query, args, err := psql.
		Select("id", "user_id", "issued_by_id", "reason", "created_at").
		From("user_warnings").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListWarnings query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query warnings: %w", err)
	}
	defer rows.Close()

	var warnings []*domain.UserWarning
	for rows.Next() {
		var w domain.UserWarning
		if err := rows.Scan(&w.ID, &w.UserID, &w.IssuedByID, &w.Reason, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan warning: %w", err)
		}
		warnings = append(warnings, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return warnings, nil
}

// CreateBan blocks a user. BannedUntil must be set unless the ban is
// permanent; the table constraint enforces this too.
func (r *ModerationRepository) CreateBan(ctx context.Context, ban *domain.UserBan) (*domain.UserBan, error) {
	query, args, err := psql.
		Insert("user_bans").
		Columns("user_id", "issued_by_id", "reason", "is_permanent", "banned_until").
		Values(ban.UserID, ban.IssuedByID, ban.Reason, ban.IsPermanent, ban.BannedUntil).
		Suffix("RETURNING id, is_revoked, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build CreateBan query: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&ban.ID, &ban.IsRevoked, &ban.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create ban: %w", err)
	}
	return ban, nil
}

// GetActiveBan retrieves the ban currently in force for a user, or
// ErrBanNotFound when the user is not banned.
func (r *ModerationRepository) GetActiveBan(ctx context.Context, userID string, now time.Time) (*domain.UserBan, error) {
	query, args, err := psql.
		Select("id", "user_id", "issued_by_id", "reason", "is_permanent", "banned_until", "is_revoked", "created_at").
		From("user_bans").
		Where(sq.Eq{"user_id": userID, "is_revoked": false}).
		Where(sq.Or{
			sq.Eq{"is_permanent": true},
			sq.Gt{"banned_until": now},
		}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetActiveBan query: %w", err)
	}

	var ban domain.UserBan
	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&ban.ID, &ban.UserID, &ban.IssuedByID, &ban.Reason, &ban.IsPermanent, &ban.BannedUntil, &ban.IsRevoked, &ban.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBanNotFound
		}
		return nil, fmt.Errorf("scan ban: %w", err)
	}
	return &ban, nil
}

// RevokeBan lifts an active ban.
func (r *ModerationRepository) RevokeBan(ctx context.Context, banID string) error {
	query, args, err := psql.
		Update("user_bans").
		Set("is_revoked", true).
		Where(sq.Eq{"id": banID, "is_revoked": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build RevokeBan query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("revoke ban: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBanNotFound
	}
	return nil
}

// CreateComplaint files a complaint against a user.
func (r *ModerationRepository) CreateComplaint(ctx context.Context, complaint *domain.UserComplaint) (*domain.UserComplaint, error) {
	query, args, err := psql.
		Insert("user_complaints").
		Columns("complainant_id", "accused_id", "reason").
		Values(complaint.ComplainantID, complaint.AccusedID, complaint.Reason).
		Suffix("RETURNING id, status, resolution_note, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build CreateComplaint query: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&complaint.ID, &complaint.Status, &complaint.ResolutionNote, &complaint.CreatedAt, &complaint.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create complaint: %w", err)
	}
	return complaint, nil
}

// GetComplaint retrieves one complaint by ID.
func (r *ModerationRepository) GetComplaint(ctx context.Context, complaintID string) (*domain.UserComplaint, error) {
	query, args, err := psql.
		Select("id", "complainant_id", "accused_id", "reason", "status", "resolution_note", "created_at", "updated_at").
		From("user_complaints").
		Where(sq.Eq{"id": complaintID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetComplaint query: %w", err)
	}

	var c domain.UserComplaint
	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&c.ID, &c.ComplainantID, &c.AccusedID, &c.Reason, &c.Status, &c.ResolutionNote, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrComplaintNotFound
		}
		return nil, fmt.Errorf("scan complaint: %w", err)
	}
	return &c, nil
}

// ListComplaints retrieves complaints, optionally filtered by status,
// oldest first so the moderation queue is worked in order.
func (r *ModerationRepository) ListComplaints(ctx context.Context, status *domain.ComplaintStatus) ([]*domain.UserComplaint, error) {
	qb := psql.
		Select("id", "complainant_id", "accused_id", "reason", "status", "resolution_note", "created_at", "updated_at").
		From("user_complaints").
		OrderBy("created_at ASC")
	if status != nil {
		qb = qb.Where(sq.Eq{"status": *status})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListComplaints query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query complaints: %w", err)
	}
	defer rows.Close()

	var complaints []*domain.UserComplaint
	for rows.Next() {
		var c domain.UserComplaint
		if err := rows.Scan(&c.ID, &c.ComplainantID, &c.AccusedID, &c.Reason, &c.Status, &c.ResolutionNote, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan complaint: %w", err)
		}
		complaints = append(complaints, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return complaints, nil
}

// ResolveComplaint records the staff decision on a complaint.
func (r *ModerationRepository) ResolveComplaint(ctx context.Context, complaintID string, status domain.ComplaintStatus, note string) error {
	query, args, err := psql.
		Update("user_complaints").
		Set("status", status).
		Set("resolution_note", note).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": complaintID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build ResolveComplaint query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("resolve complaint: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrComplaintNotFound
	}
	return nil
}
