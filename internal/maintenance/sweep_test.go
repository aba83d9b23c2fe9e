package maintenance

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/archimate-engine/batchmut/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestOrphanSweepRunPopulatesLastReport(t *testing.T) {
	m := model.NewModel()
	orphan := &model.Element{ID: "orphan-1", Kind: model.KindBusinessActor, Name: "Ghost"}
	m.Elements[orphan.ID] = orphan

	sweep := NewOrphanSweep(m, discardLogger())
	require.Equal(t, "orphan-sweep", sweep.Name())
	require.NoError(t, sweep.Run(context.Background()))
	require.Equal(t, 1, sweep.LastReport.OrphanCount)
}

type fakeEvictor struct {
	evicted int
}

func (f *fakeEvictor) EvictExpired() int { return f.evicted }

func TestCacheEvictionRunDelegatesToEvictor(t *testing.T) {
	ev := &fakeEvictor{evicted: 3}
	job := NewCacheEviction(ev, discardLogger())
	require.Equal(t, "idempotency-cache-eviction", job.Name())
	require.NoError(t, job.Run(context.Background()))
}

func TestCacheEvictionRunWithNothingToEvict(t *testing.T) {
	ev := &fakeEvictor{evicted: 0}
	job := NewCacheEviction(ev, discardLogger())
	require.NoError(t, job.Run(context.Background()))
}
