package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/agriconnect/marketplace-api/internal/core/domain"
	"github.com/agriconnect/marketplace-api/internal/core/ports"
)

// MessageRepository implements ports.MessageRepository on Postgres.
type MessageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (id, sender_id, receiver_id, content, read, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		msg.ID, msg.SenderID, msg.ReceiverID, msg.Content, msg.Read, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (r *MessageRepository) FindByID(ctx context.Context, id string) (*domain.Message, error) {
	var m domain.Message
	err := r.db.QueryRowContext(ctx,
		`SELECT id, sender_id, receiver_id, content, read, created_at
		 FROM messages WHERE id = $1`, id,
	).Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.Read, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find message: %w", err)
	}
	return &m, nil
}

func (r *MessageRepository) ListForUser(ctx context.Context, userID string) ([]*ports.MessageView, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT m.id, m.sender_id, m.receiver_id, m.content, m.read, m.created_at,
			s.full_name, rc.full_name
		 FROM messages m
		 JOIN users s ON s.id = m.sender_id
		 JOIN users rc ON rc.id = m.receiver_id
		 WHERE m.sender_id = $1 OR m.receiver_id = $1
		 ORDER BY m.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var messages []*ports.MessageView
	for rows.Next() {
		var v ports.MessageView
		if err := rows.Scan(
			&v.ID, &v.SenderID, &v.ReceiverID, &v.Content, &v.Read, &v.CreatedAt,
			&v.SenderName, &v.ReceiverName,
		); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, &v)
	}
	return messages, rows.Err()
}

func (r *MessageRepository) MarkRead(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE messages SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark message read: %w", err)
	}
	return requireRow(res, domain.ErrMessageNotFound)
}

var _ ports.MessageRepository = (*MessageRepository)(nil)
