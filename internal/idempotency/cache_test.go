package idempotency

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/archimate-engine/batchmut/internal/engine"
)

func TestPutGetRoundTrip(t *testing.T) {
	c := New(10, time.Minute)
	result := engine.Result{Ops: []engine.OpResult{{Index: 0}}}
	c.Put("key-1", result)

	got, ok := c.Get("key-1")
	require.True(t, ok)
	require.Equal(t, result, got)
}

func TestGetMissingKey(t *testing.T) {
	c := New(10, time.Minute)
	_, ok := c.Get("absent")
	require.False(t, ok)
}

func TestGetEmptyKeyAlwaysMisses(t *testing.T) {
	c := New(10, time.Minute)
	c.Put("", engine.Result{})
	_, ok := c.Get("")
	require.False(t, ok)
	require.Equal(t, 0, c.Len())
}

func TestEntryExpiresAfterTTL(t *testing.T) {
	c := New(10, time.Minute)
	clock := time.Now()
	c.now = func() time.Time { return clock }

	c.Put("key-1", engine.Result{})
	clock = clock.Add(2 * time.Minute)

	_, ok := c.Get("key-1")
	require.False(t, ok, "entry older than ttl must not be returned")
	require.Equal(t, 0, c.Len(), "Get must evict the expired entry")
}

func TestEvictExpiredSweepsStaleEntriesOnly(t *testing.T) {
	c := New(10, time.Minute)
	clock := time.Now()
	c.now = func() time.Time { return clock }

	c.Put("stale", engine.Result{})
	clock = clock.Add(2 * time.Minute)
	c.Put("fresh", engine.Result{})

	evicted := c.EvictExpired()
	require.Equal(t, 1, evicted)
	require.Equal(t, 1, c.Len())

	_, ok := c.Get("fresh")
	require.True(t, ok)
}

func TestCapacityEvictsLeastRecentlyUsed(t *testing.T) {
	c := New(2, time.Hour)
	c.Put("a", engine.Result{})
	c.Put("b", engine.Result{})
	c.Put("c", engine.Result{})

	require.Equal(t, 2, c.Len())
	_, ok := c.Get("a")
	require.False(t, ok, "oldest entry must be evicted once capacity is exceeded")
}

func TestNewPanicsOnInvalidCapacity(t *testing.T) {
	require.Panics(t, func() { New(0, time.Minute) })
}
