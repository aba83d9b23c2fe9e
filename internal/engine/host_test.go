package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultFactoryAllocatesDistinctIDs(t *testing.T) {
	f := DefaultFactory{}
	e1 := f.NewElement()
	e2 := f.NewElement()
	require.NotEmpty(t, e1.ID)
	require.NotEqual(t, e1.ID, e2.ID)

	require.NotEmpty(t, f.NewRelationship().ID)
	require.NotEmpty(t, f.NewFolder().ID)
	require.NotEmpty(t, f.NewView().ID)
	require.NotEmpty(t, f.NewVisualNode().ID)
	require.NotEmpty(t, f.NewVisualConnection().ID)
}

func TestRealClockSleepsForDuration(t *testing.T) {
	c := RealClock{}
	start := time.Now()
	c.Sleep(context.Background(), 10*time.Millisecond)
	require.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

func TestRealClockSleepHonoursCancellation(t *testing.T) {
	c := RealClock{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	c.Sleep(ctx, time.Second)
	require.Less(t, time.Since(start), 500*time.Millisecond, "a cancelled context must cut the sleep short")
}
