package ports

import (
	"context"

	"github.com/agriconnect/marketplace-api/internal/core/domain"
)

// MessageView is a message enriched with the display names of both ends.
type MessageView struct {
	domain.Message
	SenderName   string `json:"sender_name,omitempty"`
	ReceiverName string `json:"receiver_name,omitempty"`
}

// MessageRepository defines persistence operations for the inbox.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	FindByID(ctx context.Context, id string) (*domain.Message, error)
	// ListForUser returns messages where the user is sender or receiver,
	// newest first.
	ListForUser(ctx context.Context, userID string) ([]*MessageView, error)
	MarkRead(ctx context.Context, id string) error
}
