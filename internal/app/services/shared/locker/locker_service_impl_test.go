package locker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryRedis struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemoryRedis() *memoryRedis {
	return &memoryRedis{data: make(map[string]string)}
}

func (m *memoryRedis) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memoryRedis) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = string(encoded)
	return nil
}

func (m *memoryRedis) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memoryRedis) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[key]; ok {
		return false, nil
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	m.data[key] = string(encoded)
	return true, nil
}

func TestLockLifecycle(t *testing.T) {
	repo := newMemoryRedis()
	locker := NewLockService(repo, zap.NewNop())
	ctx := context.Background()

	acquired, owner, err := locker.TryLock(ctx, "submit:d1", time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)
	assert.NotEmpty(t, owner)

	acquired, _, err = locker.TryLock(ctx, "submit:d1", time.Minute)
	require.NoError(t, err)
	assert.False(t, acquired)

	assert.Error(t, locker.Unlock(ctx, "submit:d1", "someone-else"))
	require.NoError(t, locker.Unlock(ctx, "submit:d1", owner))

	acquired, _, err = locker.TryLock(ctx, "submit:d1", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestUnlockMissingKey(t *testing.T) {
	locker := NewLockService(newMemoryRedis(), zap.NewNop())
	assert.NoError(t, locker.Unlock(context.Background(), "submit:none", "owner"))
}
