package repository

import (
	"context"

	"go-healthcare-portal/internal/domain/entity"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	// FindConversation returns the messages between a and b, oldest first.
	FindConversation(ctx context.Context, a, b uuid.UUID) ([]entity.Message, error)
	FindByParticipant(ctx context.Context, userID uuid.UUID) ([]entity.Message, error)
	// MarkConversationRead flags messages from sender to receiver as read and
	// returns how many changed.
	MarkConversationRead(ctx context.Context, receiverID, senderID uuid.UUID) (int64, error)
	CountUnread(ctx context.Context, receiverID uuid.UUID) (int64, error)
}
