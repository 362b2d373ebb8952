package repository

import (
	"context"

	"go-healthcare-portal/internal/domain/entity"

	"github.com/google/uuid"
)

// UserRepository finders return (nil, nil) when nothing matches.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.User, error)
	FindByRole(ctx context.Context, role entity.Role) ([]entity.User, error)
}

type NotificationPreferenceRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.NotificationPreference, error)
	Save(ctx context.Context, pref *entity.NotificationPreference) error
}
