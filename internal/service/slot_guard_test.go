package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotGuardSerialisesSameSlot(t *testing.T) {
	g := NewSlotGuard(nil, testLogger())
	defer g.Stop()

	key := SlotKey(uuid.New(), "2025-01-25", "10:00")
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := g.Acquire(context.Background(), key)
			if !assert.NoError(t, err) {
				return
			}

			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
			release()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
}

func TestSlotGuardRedisLock(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	g := NewSlotGuard(client, testLogger())
	defer g.Stop()

	key := SlotKey(uuid.New(), "2025-01-25", "10:00")

	release, err := g.Acquire(context.Background(), key)
	require.NoError(t, err)
	assert.True(t, mr.Exists(RedisSlotKeyPrefix+key))

	release()
	assert.False(t, mr.Exists(RedisSlotKeyPrefix+key))

	// Another instance holds the lock.
	require.NoError(t, mr.Set(RedisSlotKeyPrefix+key, "someone-else"))
	_, err = g.Acquire(context.Background(), key)
	assert.ErrorIs(t, err, ErrSlotBusy)

	// The local mutex was released on failure.
	mr.Del(RedisSlotKeyPrefix + key)
	release, err = g.Acquire(context.Background(), key)
	require.NoError(t, err)
	release()
}

func TestSlotGuardCleanupStaleMutexes(t *testing.T) {
	g := NewSlotGuard(nil, testLogger())
	defer g.Stop()

	release, err := g.Acquire(context.Background(), "held")
	require.NoError(t, err)

	idle, err := g.Acquire(context.Background(), "idle")
	require.NoError(t, err)
	idle()

	cleaned := g.cleanupStaleMutexes(time.Now().Add(time.Hour))
	assert.Equal(t, 1, cleaned, "held mutexes are skipped")

	_, ok := g.slotMu.Load("held")
	assert.True(t, ok)
	release()
}

func TestSlotGuardStopIsIdempotent(t *testing.T) {
	g := NewSlotGuard(nil, testLogger())
	g.Stop()
	g.Stop()
}
