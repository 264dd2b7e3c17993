package ports

import (
	"context"

	"github.com/agriconnect/marketplace-api/internal/core/domain"
)

// MessageService defines the directed inbox operations.
type MessageService interface {
	// Send creates a message. Allowed only between a non-admin and an
	// admin/super_admin, or between two admins.
	Send(ctx context.Context, senderID, receiverID, content string) (*domain.Message, error)
	ListForUser(ctx context.Context, userID string) ([]*MessageView, error)
	// MarkRead flips the read flag; only the receiver may do so.
	MarkRead(ctx context.Context, messageID, userID string) error
}
