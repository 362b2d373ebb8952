package repository

import (
	"context"

	"go-healthcare-portal/internal/domain/entity"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	Update(ctx context.Context, notification *entity.Notification) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error)
	// FindByUserID returns the user's notifications, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID, filter entity.NotificationFilter) ([]entity.Notification, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
}
