package service

import (
	"sync"

	"go-healthcare-portal/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const subscriptionBuffer = 16

type ChatEventType string

const (
	ChatEventMessage ChatEventType = "message"
	ChatEventRead    ChatEventType = "read"
)

// ChatEvent is pushed to stream subscribers. Read events carry the reader in
// ReaderID and the other participant in Message.SenderID.
type ChatEvent struct {
	Type     ChatEventType
	Message  entity.Message
	ReaderID uuid.UUID
}

type Subscription struct {
	UserID uuid.UUID
	ch     chan ChatEvent
}

// Events is closed when the subscription is removed.
func (s *Subscription) Events() <-chan ChatEvent {
	return s.ch
}

// ChatHub fans chat events out to the open streams of each user.
type ChatHub struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]map[*Subscription]struct{}
	log  *logrus.Logger
}

func NewChatHub(log *logrus.Logger) *ChatHub {
	return &ChatHub{
		subs: make(map[uuid.UUID]map[*Subscription]struct{}),
		log:  log,
	}
}

func (h *ChatHub) Subscribe(userID uuid.UUID) *Subscription {
	sub := &Subscription{UserID: userID, ch: make(chan ChatEvent, subscriptionBuffer)}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[userID] == nil {
		h.subs[userID] = make(map[*Subscription]struct{})
	}
	h.subs[userID][sub] = struct{}{}
	return sub
}

func (h *ChatHub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.subs[sub.UserID]
	if !ok {
		return
	}
	if _, ok := set[sub]; !ok {
		return
	}
	delete(set, sub)
	close(sub.ch)
	if len(set) == 0 {
		delete(h.subs, sub.UserID)
	}
}

// PublishMessage delivers a stored message to both participants.
func (h *ChatHub) PublishMessage(msg entity.Message) {
	h.publish(ChatEvent{Type: ChatEventMessage, Message: msg}, msg.SenderID, msg.ReceiverID)
}

// PublishRead tells the sender that reader has read their messages.
func (h *ChatHub) PublishRead(readerID, senderID uuid.UUID) {
	h.publish(ChatEvent{
		Type:     ChatEventRead,
		Message:  entity.Message{SenderID: senderID, ReceiverID: readerID},
		ReaderID: readerID,
	}, senderID, readerID)
}

// publish never blocks. A subscriber whose buffer is full misses the event.
func (h *ChatHub) publish(event ChatEvent, userIDs ...uuid.UUID) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, userID := range userIDs {
		for sub := range h.subs[userID] {
			select {
			case sub.ch <- event:
			default:
				h.log.Warnf("Dropping chat event for slow subscriber %s", userID)
			}
		}
	}
}

// Close ends every open subscription.
func (h *ChatHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, set := range h.subs {
		for sub := range set {
			close(sub.ch)
		}
		delete(h.subs, userID)
	}
}
