package memory

import (
	"context"
	"sort"

	"go-healthcare-portal/internal/domain/entity"
	domainRepo "go-healthcare-portal/internal/domain/repository"

	"github.com/google/uuid"
)

type messageRepository struct {
	store *Store
}

func NewMessageRepository(store *Store) domainRepo.MessageRepository {
	return &messageRepository{store: store}
}

func (r *messageRepository) Create(ctx context.Context, message *entity.Message) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.messages = append(r.store.messages, *message)
	return nil
}

func (r *messageRepository) FindConversation(ctx context.Context, a, b uuid.UUID) ([]entity.Message, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	list := make([]entity.Message, 0)
	for _, m := range r.store.messages {
		if m.IsBetween(a, b) {
			list = append(list, m)
		}
	}
	sortMessages(list)
	return list, nil
}

func (r *messageRepository) FindByParticipant(ctx context.Context, userID uuid.UUID) ([]entity.Message, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	list := make([]entity.Message, 0)
	for _, m := range r.store.messages {
		if m.Involves(userID) {
			list = append(list, m)
		}
	}
	sortMessages(list)
	return list, nil
}

func (r *messageRepository) MarkConversationRead(ctx context.Context, receiverID, senderID uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var changed int64
	for i := range r.store.messages {
		m := &r.store.messages[i]
		if m.ReceiverID == receiverID && m.SenderID == senderID && !m.Read {
			m.Read = true
			changed++
		}
	}
	return changed, nil
}

func (r *messageRepository) CountUnread(ctx context.Context, receiverID uuid.UUID) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var n int64
	for _, m := range r.store.messages {
		if m.ReceiverID == receiverID && !m.Read {
			n++
		}
	}
	return n, nil
}

func sortMessages(list []entity.Message) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].Timestamp.Before(list[j].Timestamp) })
}
