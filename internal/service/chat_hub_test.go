package service

import (
	"testing"
	"time"

	"go-healthcare-portal/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, sub *Subscription) ChatEvent {
	t.Helper()
	select {
	case ev, ok := <-sub.Events():
		require.True(t, ok, "subscription closed")
		return ev
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
	return ChatEvent{}
}

func TestChatHubDeliversToBothParticipants(t *testing.T) {
	hub := NewChatHub(testLogger())
	sender, receiver, bystander := uuid.New(), uuid.New(), uuid.New()

	senderSub := hub.Subscribe(sender)
	receiverSub := hub.Subscribe(receiver)
	otherSub := hub.Subscribe(bystander)

	hub.PublishMessage(entity.Message{ID: uuid.New(), SenderID: sender, ReceiverID: receiver, Content: "hi"})

	assert.Equal(t, "hi", receive(t, senderSub).Message.Content)
	ev := receive(t, receiverSub)
	assert.Equal(t, ChatEventMessage, ev.Type)

	select {
	case <-otherSub.Events():
		t.Fatal("bystander should not receive the message")
	default:
	}
}

func TestChatHubReadEvent(t *testing.T) {
	hub := NewChatHub(testLogger())
	reader, sender := uuid.New(), uuid.New()
	sub := hub.Subscribe(sender)

	hub.PublishRead(reader, sender)

	ev := receive(t, sub)
	assert.Equal(t, ChatEventRead, ev.Type)
	assert.Equal(t, reader, ev.ReaderID)
}

func TestChatHubDropsWhenBufferFull(t *testing.T) {
	hub := NewChatHub(testLogger())
	a, b := uuid.New(), uuid.New()
	sub := hub.Subscribe(b)

	for i := 0; i < subscriptionBuffer+5; i++ {
		hub.PublishMessage(entity.Message{SenderID: a, ReceiverID: b})
	}

	assert.Len(t, sub.ch, subscriptionBuffer)
}

func TestChatHubUnsubscribeClosesChannel(t *testing.T) {
	hub := NewChatHub(testLogger())
	sub := hub.Subscribe(uuid.New())

	hub.Unsubscribe(sub)
	hub.Unsubscribe(sub)

	_, ok := <-sub.Events()
	assert.False(t, ok)
	assert.Empty(t, hub.subs)
}
