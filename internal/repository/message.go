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

// MessageRepository handles database operations for response-thread
// messages and service messages.
type MessageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository creates a new MessageRepository.
func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

// CreateThreadMessage appends a message to a response thread.
func (r *MessageRepository) CreateThreadMessage(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	query, args, err := psql.
		Insert("messages").
		Columns("response_id", "sender_id", "content").
		Values(msg.ResponseID, msg.SenderID, msg.Content).
		Suffix("RETURNING id, is_read, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build CreateThreadMessage query: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&msg.ID, &msg.IsRead, &msg.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return msg, nil
}

// ListThread retrieves all messages of a response thread, oldest first.
func (r *MessageRepository) ListThread(ctx context.Context, responseID string) ([]*domain.Message, error) {
	query, args, err := psql.
		Select("id", "response_id", "sender_id", "content", "is_read", "created_at").
		From("messages").
		Where(sq.Eq{"response_id": responseID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListThread query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query thread: %w", err)
	}
	defer rows.Close()

	var msgs []*domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(&msg.ID, &msg.ResponseID, &msg.SenderID, &msg.Content, &msg.IsRead, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return msgs, nil
}

// MarkThreadRead flags every message in the thread not sent by readerID
// as read.
func (r *MessageRepository) MarkThreadRead(ctx context.Context, responseID, readerID string) error {
	query, args, err := psql.
		Update("messages").
		Set("is_read", true).
		Where(sq.Eq{"response_id": responseID, "is_read": false}).
		Where(sq.NotEq{"sender_id": readerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build MarkThreadRead query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("mark thread read: %w", err)
	}
	return nil
}

// CreateServiceMessage inserts a direct message about a service.
func (r *MessageRepository) CreateServiceMessage(ctx context.Context, msg *domain.ServiceMessage) (*domain.ServiceMessage, error) {
	query, args, err := psql.
		Insert("service_messages").
		Columns("service_id", "sender_id", "recipient_id", "content").
		Values(msg.ServiceID, msg.SenderID, msg.RecipientID, msg.Content).
		Suffix("RETURNING id, is_read, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build CreateServiceMessage query: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&msg.ID, &msg.IsRead, &msg.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create service message: %w", err)
	}
	return msg, nil
}

// ListServiceThread retrieves the conversation between two users about a
// service, oldest first.
func (r *MessageRepository) ListServiceThread(ctx context.Context, serviceID, userA, userB string) ([]*domain.ServiceMessage, error) {
	query, args, err := psql.
		Select("id", "service_id", "sender_id", "recipient_id", "content", "is_read", "created_at").
		From("service_messages").
		Where(sq.Eq{"service_id": serviceID}).
		Where(sq.Or{
			sq.Eq{"sender_id": userA, "recipient_id": userB},
			sq.Eq{"sender_id": userB, "recipient_id": userA},
		}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListServiceThread query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query service thread: %w", err)
	}
	defer rows.Close()

	var msgs []*domain.ServiceMessage
	for rows.Next() {
		var msg domain.ServiceMessage
		if err := rows.Scan(&msg.ID, &msg.ServiceID, &msg.SenderID, &msg.RecipientID, &msg.Content, &msg.IsRead, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan service message: %w", err)
		}
		msgs = append(msgs, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return msgs, nil
}

// MarkServiceMessageRead flags a single service message as read. Only the
// recipient may do so; anyone else gets ErrMessageNotFound.
func (r *MessageRepository) MarkServiceMessageRead(ctx context.Context, messageID, recipientID string) error {
	query, args, err := psql.
		Update("service_messages").
		Set("is_read", true).
		Where(sq.Eq{"id": messageID, "recipient_id": recipientID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build MarkServiceMessageRead query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("mark service message read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMessageNotFound
	}
	return nil
}

// GetServiceMessage retrieves one service message by ID.
func (r *MessageRepository) GetServiceMessage(ctx context.Context, messageID string) (*domain.ServiceMessage, error) {
	query, args, err := psql.
		Select("id", "service_id", "sender_id", "recipient_id", "content", "is_read", "created_at").
		From("service_messages").
		Where(sq.Eq{"id": messageID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetServiceMessage query: %w", err)
	}

	var msg domain.ServiceMessage
	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&msg.ID, &msg.ServiceID, &msg.SenderID, &msg.RecipientID, &msg.Content, &msg.IsRead, &msg.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, fmt.Errorf("scan service message: %w", err)
	}
	return &msg, nil
}
