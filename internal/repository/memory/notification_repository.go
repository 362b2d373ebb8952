package memory

import (
	"context"
	"sort"

	"go-healthcare-portal/internal/domain/entity"
	domainRepo "go-healthcare-portal/internal/domain/repository"

	"github.com/google/uuid"
)

type notificationRepository struct {
	store *Store
}

func NewNotificationRepository(store *Store) domainRepo.NotificationRepository {
	return &notificationRepository{store: store}
}

func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.notifications[notification.ID] = *notification
	return nil
}

func (r *notificationRepository) Update(ctx context.Context, notification *entity.Notification) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.notifications[notification.ID] = *notification
	return nil
}

func (r *notificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.notifications, id)
	return nil
}

func (r *notificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	n, ok := r.store.notifications[id]
	if !ok {
		return nil, nil
	}
	return &n, nil
}

func (r *notificationRepository) FindByUserID(ctx context.Context, userID uuid.UUID, filter entity.NotificationFilter) ([]entity.Notification, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	list := make([]entity.Notification, 0)
	for _, n := range r.store.notifications {
		if n.UserID == userID && filter.Matches(&n) {
			list = append(list, n)
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Timestamp.After(list[j].Timestamp) })
	return list, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var changed int64
	for id, n := range r.store.notifications {
		if n.UserID == userID && !n.Read {
			n.Read = true
			r.store.notifications[id] = n
			changed++
		}
	}
	return changed, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var n int64
	for _, item := range r.store.notifications {
		if item.UserID == userID && !item.Read {
			n++
		}
	}
	return n, nil
}
