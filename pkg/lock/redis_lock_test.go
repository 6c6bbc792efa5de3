package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisLocker(t *testing.T, ttl time.Duration) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	m := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: m.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	l := NewRedisLocker(rdb, "test:lock:", ttl)
	l.retry = 10 * time.Millisecond
	return l, m
}

func TestRedisLockerAcquireAndRelease(t *testing.T) {
	l, m := newRedisLocker(t, time.Minute)

	release, err := l.Acquire(context.Background(), "chat:u1")
	require.NoError(t, err)
	assert.True(t, m.Exists("test:lock:chat:u1"))
	assert.Equal(t, time.Minute, m.TTL("test:lock:chat:u1"))

	release()
	release()
	assert.False(t, m.Exists("test:lock:chat:u1"))
}

func TestRedisLockerContention(t *testing.T) {
	l, _ := newRedisLocker(t, time.Minute)

	release, err := l.Acquire(context.Background(), "chat:u1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(ctx, "chat:u1")
	assert.ErrorIs(t, err, ErrNotAcquired)

	other, err := l.Acquire(context.Background(), "chat:u2")
	require.NoError(t, err)
	other()

	release()
	again, err := l.Acquire(context.Background(), "chat:u1")
	require.NoError(t, err)
	again()
}

func TestRedisLockerReleaseKeepsForeignToken(t *testing.T) {
	l, m := newRedisLocker(t, time.Minute)

	release, err := l.Acquire(context.Background(), "chat:u1")
	require.NoError(t, err)

	// The key expired and another instance took it.
	require.NoError(t, m.Set("test:lock:chat:u1", "someone-else"))
	release()

	got, err := m.Get("test:lock:chat:u1")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}

func TestRedisLockerRenewsWhileHeld(t *testing.T) {
	ttl := 300 * time.Millisecond
	l, m := newRedisLocker(t, ttl)

	release, err := l.Acquire(context.Background(), "chat:u1")
	require.NoError(t, err)
	defer release()

	m.SetTTL("test:lock:chat:u1", time.Millisecond)
	assert.Eventually(t, func() bool {
		return m.TTL("test:lock:chat:u1") == ttl
	}, 2*time.Second, 20*time.Millisecond)
}
