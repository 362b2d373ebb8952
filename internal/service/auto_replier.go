package service

import (
	"context"
	"sync"
	"time"

	"go-healthcare-portal/internal/domain/entity"
	"go-healthcare-portal/internal/domain/repository"
	"go-healthcare-portal/pkg/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AutoReplier sends the canned answer a fixed delay after a message arrives.
// A zero delay disables it.
type AutoReplier struct {
	delay       time.Duration
	text        string
	messageRepo repository.MessageRepository
	hub         *ChatHub
	metrics     *metrics.Metrics
	log         *logrus.Logger

	mu      sync.Mutex
	timers  map[uint64]*time.Timer
	seq     uint64
	stopped bool
	wg      sync.WaitGroup
}

func NewAutoReplier(
	delay time.Duration,
	text string,
	messageRepo repository.MessageRepository,
	hub *ChatHub,
	m *metrics.Metrics,
	log *logrus.Logger,
) *AutoReplier {
	return &AutoReplier{
		delay:       delay,
		text:        text,
		messageRepo: messageRepo,
		hub:         hub,
		metrics:     m,
		log:         log,
		timers:      make(map[uint64]*time.Timer),
	}
}

func (r *AutoReplier) Enabled() bool {
	return r.delay > 0
}

// Schedule queues a reply from replierID to recipientID. It reports false when
// auto replies are disabled or the replier is stopped.
func (r *AutoReplier) Schedule(replierID, recipientID uuid.UUID) bool {
	if !r.Enabled() {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return false
	}

	r.seq++
	id := r.seq
	r.wg.Add(1)
	r.timers[id] = time.AfterFunc(r.delay, func() {
		defer r.wg.Done()

		r.mu.Lock()
		_, pending := r.timers[id]
		delete(r.timers, id)
		r.mu.Unlock()
		if !pending {
			return
		}

		r.send(replierID, recipientID)
	})
	return true
}

func (r *AutoReplier) send(replierID, recipientID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	reply := &entity.Message{
		ID:         uuid.New(),
		SenderID:   replierID,
		ReceiverID: recipientID,
		Content:    r.text,
		Timestamp:  time.Now().UTC(),
	}
	if err := r.messageRepo.Create(ctx, reply); err != nil {
		r.log.Warnf("Failed to store auto reply: %+v", err)
		return
	}

	r.metrics.AutoReplySent()
	r.hub.PublishMessage(*reply)
}

// Pending is the number of replies waiting for their timer.
func (r *AutoReplier) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.timers)
}

// Stop cancels pending replies and waits for replies already being sent.
func (r *AutoReplier) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	cancelled := 0
	for id, timer := range r.timers {
		if timer.Stop() {
			r.wg.Done()
			cancelled++
		}
		delete(r.timers, id)
	}
	r.mu.Unlock()

	r.wg.Wait()
	r.log.Infof("AutoReplier stopped, %d pending replies cancelled", cancelled)
}
