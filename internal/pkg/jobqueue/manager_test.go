package jobqueue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeFlusher struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeFlusher) Flush(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return nil
}

func TestNewManager(t *testing.T) {
	queue := NewQueue(nil, 2, nil)
	manager := NewManager(queue, nil, 0)

	assert.Same(t, queue, manager.GetQueue())
	assert.Equal(t, 30*time.Second, manager.flushInterval)
	assert.NotNil(t, manager.stopCh)
	assert.False(t, manager.IsRunning())
}

func TestManager_StopWithoutStart(t *testing.T) {
	flusher := &fakeFlusher{}
	manager := NewManager(NewQueue(nil, 1, nil), flusher, time.Second)

	// Stop without starting should be safe
	manager.Stop()
	assert.False(t, manager.IsRunning())
	assert.Equal(t, 0, flusher.calls)
}

func TestManager_StartStop(t *testing.T) {
	client := newIsolatedRedisClient(t, isolatedJobQueueTestRedisDB)
	resetJobQueueRedis(t, client)

	flusher := &fakeFlusher{}
	manager := NewManager(NewQueue(client, 1, &recordingSender{}), flusher, 20*time.Millisecond)

	manager.Start()
	assert.True(t, manager.IsRunning())
	manager.Start() // idempotent

	time.Sleep(100 * time.Millisecond)
	manager.Stop()
	assert.False(t, manager.IsRunning())

	flusher.mu.Lock()
	defer flusher.mu.Unlock()
	// periodic flushes plus the final one
	assert.GreaterOrEqual(t, flusher.calls, 2)
}
