package presence

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTracker(t *testing.T) (*Tracker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewTracker(client, time.Minute), mr
}

func TestTouchMarksOnline(t *testing.T) {
	tracker, _ := newTestTracker(t)
	ctx := context.Background()

	online, err := tracker.IsOnline(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, online)

	require.NoError(t, tracker.Touch(ctx, "u1"))

	online, err = tracker.IsOnline(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, online)
}

func TestHeartbeatExpires(t *testing.T) {
	tracker, mr := newTestTracker(t)
	ctx := context.Background()

	require.NoError(t, tracker.Touch(ctx, "u1"))
	mr.FastForward(2 * time.Minute)

	online, err := tracker.IsOnline(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, online)
}

func TestForgetRemovesMarker(t *testing.T) {
	tracker, _ := newTestTracker(t)
	ctx := context.Background()

	require.NoError(t, tracker.Touch(ctx, "u1"))
	require.NoError(t, tracker.Forget(ctx, "u1"))

	online, err := tracker.IsOnline(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, online)
}

func TestOnlineCount(t *testing.T) {
	tracker, _ := newTestTracker(t)
	ctx := context.Background()

	for _, id := range []string{"u1", "u2", "u3"} {
		require.NoError(t, tracker.Touch(ctx, id))
	}

	count, err := tracker.OnlineCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestNilTrackerIsNoop(t *testing.T) {
	var tracker *Tracker
	ctx := context.Background()

	require.NoError(t, tracker.Touch(ctx, "u1"))
	require.NoError(t, tracker.Forget(ctx, "u1"))

	online, err := tracker.IsOnline(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, online)

	count, err := tracker.OnlineCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
