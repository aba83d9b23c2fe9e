package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/archimate-engine/batchmut/internal/engine"
)

func TestChunkModeFromString(t *testing.T) {
	require.Equal(t, engine.ChunkPerOperation, chunkModeFromString("per-operation"))
	require.Equal(t, engine.ChunkThreshold, chunkModeFromString("threshold"))
	require.Equal(t, engine.ChunkThreshold, chunkModeFromString("anything-else"))
}
