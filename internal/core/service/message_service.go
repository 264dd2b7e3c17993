package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agriconnect/marketplace-api/internal/api/metrics"
	"github.com/agriconnect/marketplace-api/internal/core/domain"
	"github.com/agriconnect/marketplace-api/internal/core/ports"
)

// MessageService implements the directed inbox between users and the
// admin desk.
type MessageService struct {
	messages ports.MessageRepository
	users    ports.UserRepository
	logger   zerolog.Logger
}

func NewMessageService(messages ports.MessageRepository, users ports.UserRepository, logger zerolog.Logger) *MessageService {
	return &MessageService{messages: messages, users: users, logger: logger}
}

// Send creates a message after checking both users exist and the role
// pair is allowed.
func (s *MessageService) Send(ctx context.Context, senderID, receiverID, content string) (*domain.Message, error) {
	if senderID == "" || receiverID == "" || content == "" {
		return nil, domain.ErrInvalidInput
	}

	sender, err := s.users.FindByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	receiver, err := s.users.FindByID(ctx, receiverID)
	if err != nil {
		return nil, err
	}

	if !domain.CanMessage(sender.Role, receiver.Role) {
		return nil, domain.ErrMessagingNotAllowed
	}

	msg := &domain.Message{
		ID:         uuid.NewString(),
		SenderID:   sender.ID,
		ReceiverID: receiver.ID,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	metrics.MessagesSentTotal.Inc()
	return msg, nil
}

// ListForUser returns messages where the user is either end, newest
// first.
func (s *MessageService) ListForUser(ctx context.Context, userID string) ([]*ports.MessageView, error) {
	if userID == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.messages.ListForUser(ctx, userID)
}

// MarkRead flips the read flag. Only the receiver may do so.
func (s *MessageService) MarkRead(ctx context.Context, messageID, userID string) error {
	msg, err := s.messages.FindByID(ctx, messageID)
	if err != nil {
		return err
	}
	if msg.ReceiverID != userID {
		return domain.ErrForbidden
	}
	return s.messages.MarkRead(ctx, messageID)
}
