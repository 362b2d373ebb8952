package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrSlotBusy is returned when another instance holds the slot lock.
var ErrSlotBusy = errors.New("slot is being booked by another request")

// releaseSlotScript deletes the lock only while it still carries our token,
// so a lock that expired and was taken by someone else is left alone.
var releaseSlotScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

const (
	RedisSlotKeyPrefix = "appointment:slot:"

	// Upper bound for one booking to finish while holding the Redis lock
	slotLockTTL = 10 * time.Second

	mutexCleanupInterval = 10 * time.Minute
	mutexStaleThreshold  = 10 * time.Minute
)

// SlotGuard serialises bookings of the same doctor/date/time.
//
// Within one process a per-slot mutex is taken. When a Redis client is set the
// guard also takes a short SET NX lock so several instances sharing one store
// cannot double book.
type SlotGuard struct {
	redisClient *redis.Client
	log         *logrus.Logger

	slotMu sync.Map // map[string]*mutexWithTimestamp

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// mutexWithTimestamp tracks mutex usage for cleanup
type mutexWithTimestamp struct {
	mu       sync.Mutex
	lastUsed atomic.Int64 // Unix timestamp
}

// NewSlotGuard starts the background mutex cleanup. redisClient may be nil.
// Call Stop() during graceful shutdown.
func NewSlotGuard(redisClient *redis.Client, log *logrus.Logger) *SlotGuard {
	g := &SlotGuard{
		redisClient: redisClient,
		log:         log,
		stopChan:    make(chan struct{}),
	}

	g.wg.Add(1)
	go g.cleanupMutexMapLoop()

	return g
}

// Stop is safe to call multiple times.
func (g *SlotGuard) Stop() {
	if g.stopped.CompareAndSwap(false, true) {
		close(g.stopChan)
		g.wg.Wait()
		g.log.Info("SlotGuard stopped")
	}
}

func SlotKey(doctorID uuid.UUID, date, slot string) string {
	return fmt.Sprintf("%s:%s:%s", doctorID.String(), date, slot)
}

// Acquire blocks until the slot is held by the caller and returns the release
// func. The release func must be called exactly once.
func (g *SlotGuard) Acquire(ctx context.Context, key string) (func(), error) {
	mt := g.getSlotMutex(key)
	mt.mu.Lock()

	if g.redisClient == nil {
		return mt.mu.Unlock, nil
	}

	redisKey := RedisSlotKeyPrefix + key
	token := uuid.NewString()

	ok, err := g.redisClient.SetNX(ctx, redisKey, token, slotLockTTL).Result()
	if err != nil {
		mt.mu.Unlock()
		g.log.Warnf("Failed to take Redis lock for slot %s: %+v", key, err)
		return nil, fmt.Errorf("redis lock for slot %s: %w", key, err)
	}
	if !ok {
		mt.mu.Unlock()
		return nil, ErrSlotBusy
	}

	return func() {
		// The request context may already be cancelled here.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := releaseSlotScript.Run(releaseCtx, g.redisClient, []string{redisKey}, token).Err(); err != nil {
			g.log.Warnf("Failed to release Redis lock for slot %s: %+v", key, err)
		}
		mt.mu.Unlock()
	}, nil
}

func (g *SlotGuard) getSlotMutex(key string) *mutexWithTimestamp {
	mt, _ := g.slotMu.LoadOrStore(key, &mutexWithTimestamp{})
	result := mt.(*mutexWithTimestamp)
	result.lastUsed.Store(time.Now().Unix())
	return result
}

func (g *SlotGuard) cleanupMutexMapLoop() {
	defer g.wg.Done()

	ticker := time.NewTicker(mutexCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-g.stopChan:
			g.log.Debug("Slot mutex cleanup goroutine stopping")
			return
		case <-ticker.C:
			g.cleanupStaleMutexes(time.Now().Add(-mutexStaleThreshold))
		}
	}
}

// cleanupStaleMutexes removes mutexes unused since cutoff. lastUsed is checked
// while holding the lock so a concurrent Acquire cannot slip in between.
func (g *SlotGuard) cleanupStaleMutexes(cutoff time.Time) int {
	cutoffUnix := cutoff.Unix()
	var cleaned int

	g.slotMu.Range(func(key, value any) bool {
		mt, ok := value.(*mutexWithTimestamp)
		if !ok {
			return true
		}

		if mt.mu.TryLock() {
			if mt.lastUsed.Load() < cutoffUnix {
				g.slotMu.Delete(key)
				cleaned++
			}
			mt.mu.Unlock()
		}
		return true
	})

	if cleaned > 0 {
		g.log.Debugf("Cleaned up %d stale slot mutexes", cleaned)
	}
	return cleaned
}
