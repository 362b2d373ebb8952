package service

import (
	"context"
	"testing"
	"time"

	"go-healthcare-portal/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cannedReply = "Thanks for your message. I'll review this and get back to you shortly."

func TestAutoReplierSendsAfterDelay(t *testing.T) {
	repo := memory.NewMessageRepository(memory.NewStore())
	hub := NewChatHub(testLogger())
	replier := NewAutoReplier(20*time.Millisecond, cannedReply, repo, hub, nil, testLogger())
	defer replier.Stop()

	doctor, patient := uuid.New(), uuid.New()
	sub := hub.Subscribe(patient)

	require.True(t, replier.Schedule(doctor, patient))
	assert.Equal(t, 1, replier.Pending())

	ev := receive(t, sub)
	assert.Equal(t, doctor, ev.Message.SenderID)
	assert.Equal(t, cannedReply, ev.Message.Content)
	assert.False(t, ev.Message.Read)

	convo, err := repo.FindConversation(context.Background(), doctor, patient)
	require.NoError(t, err)
	require.Len(t, convo, 1)
	assert.Equal(t, 0, replier.Pending())
}

func TestAutoReplierDisabledWithZeroDelay(t *testing.T) {
	replier := NewAutoReplier(0, cannedReply, memory.NewMessageRepository(memory.NewStore()), NewChatHub(testLogger()), nil, testLogger())
	defer replier.Stop()

	assert.False(t, replier.Enabled())
	assert.False(t, replier.Schedule(uuid.New(), uuid.New()))
}

func TestAutoReplierStopCancelsPending(t *testing.T) {
	repo := memory.NewMessageRepository(memory.NewStore())
	replier := NewAutoReplier(time.Hour, cannedReply, repo, NewChatHub(testLogger()), nil, testLogger())
	doctor, patient := uuid.New(), uuid.New()

	require.True(t, replier.Schedule(doctor, patient))
	replier.Stop()

	assert.Equal(t, 0, replier.Pending())
	assert.False(t, replier.Schedule(doctor, patient), "no new replies after stop")

	convo, err := repo.FindConversation(context.Background(), doctor, patient)
	require.NoError(t, err)
	assert.Empty(t, convo)
}
