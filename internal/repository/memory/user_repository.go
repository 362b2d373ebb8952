package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"go-healthcare-portal/internal/domain/entity"
	domainRepo "go-healthcare-portal/internal/domain/repository"

	"github.com/google/uuid"
)

type userRepository struct {
	store *Store
}

func NewUserRepository(store *Store) domainRepo.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, u := range r.store.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domainRepo.ErrDuplicateKey
		}
	}
	if _, ok := r.store.users[user.ID]; ok {
		return domainRepo.ErrDuplicateKey
	}
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	r.store.users[user.ID] = *user
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, u := range r.store.users {
		if id != user.ID && strings.EqualFold(u.Email, user.Email) {
			return domainRepo.ErrDuplicateKey
		}
	}
	user.UpdatedAt = time.Now()
	r.store.users[user.ID] = *user
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *userRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	users := make([]entity.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.store.users[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

func (r *userRepository) FindByRole(ctx context.Context, role entity.Role) ([]entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	users := make([]entity.User, 0)
	for _, u := range r.store.users {
		if u.Role == role {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

type notificationPreferenceRepository struct {
	store *Store
}

func NewNotificationPreferenceRepository(store *Store) domainRepo.NotificationPreferenceRepository {
	return &notificationPreferenceRepository{store: store}
}

func (r *notificationPreferenceRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.NotificationPreference, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.preferences[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *notificationPreferenceRepository) Save(ctx context.Context, pref *entity.NotificationPreference) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	pref.UpdatedAt = time.Now()
	r.store.preferences[pref.UserID] = *pref
	return nil
}
