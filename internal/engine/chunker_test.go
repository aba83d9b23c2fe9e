package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/archimate-engine/batchmut/internal/engineerr"
	"github.com/archimate-engine/batchmut/internal/model"
	"github.com/archimate-engine/batchmut/internal/validation"
)

func opGroupsOfSizes(sizes ...int) []opGroup {
	groups := make([]opGroup, 0, len(sizes))
	for i, n := range sizes {
		cmds := make([]SubCommand, n)
		for j := range cmds {
			cmds[j] = SubCommand{Label: "noop", Apply: func() error { return nil }, Revert: func() error { return nil }}
		}
		groups = append(groups, opGroup{Label: fmt.Sprintf("op%d", i), Cmds: cmds})
	}
	return groups
}

func TestChunkThresholdNeverSplitsAnOperation(t *testing.T) {
	groups := opGroupsOfSizes(3, 4, 2)
	txs := chunkTransactions(groups, ChunkThreshold, 5)

	total := 0
	for _, tx := range txs {
		total += len(tx.Entries)
	}
	require.Equal(t, 9, total)

	// 3+4=7 > 5, so op0 alone fills the first chunk, op1 its own, op2 joins
	// nothing since no room remains in a single pass of size 5.
	require.Len(t, txs[0].Entries, 3)
}

func TestChunkThresholdPacksWithinBudget(t *testing.T) {
	groups := opGroupsOfSizes(2, 2, 2)
	txs := chunkTransactions(groups, ChunkThreshold, 6)
	require.Len(t, txs, 1)
	require.Len(t, txs[0].Entries, 6)
}

func TestChunkPerOperationIsolatesEveryOp(t *testing.T) {
	groups := opGroupsOfSizes(1, 1, 1)
	txs := chunkTransactions(groups, ChunkPerOperation, 50)
	require.Len(t, txs, 3)
	for _, tx := range txs {
		require.Len(t, tx.Entries, 1)
	}
}

func TestChunkThresholdOneStillFormsOneOversizedChunk(t *testing.T) {
	groups := opGroupsOfSizes(4)
	txs := chunkTransactions(groups, ChunkThreshold, 1)
	require.Len(t, txs, 1)
	require.Len(t, txs[0].Entries, 4)
}

func TestChunkTransactionsPreservesPlanOrder(t *testing.T) {
	groups := opGroupsOfSizes(1, 1, 1, 1, 1)
	txs := chunkTransactions(groups, ChunkPerOperation, 0)
	require.Len(t, txs, 5)
	for i, tx := range txs {
		require.Equal(t, fmt.Sprintf("op%d", i), tx.Label)
	}
}

// discardingStack silently drops every transaction it is handed, reporting
// success — simulating a host command stack that loses writes, the trigger
// for spec.md §4.6's silent-rollback verification step.
type discardingStack struct{}

func (discardingStack) Execute(ctx context.Context, tx Transaction) error { return nil }

func largePlan(n int) []byte {
	b := []byte(`{"changes":[`)
	for i := 0; i < n; i++ {
		if i > 0 {
			b = append(b, ',')
		}
		b = append(b, []byte(fmt.Sprintf(`{"op":"createElement","type":"business-actor","name":"bulk-%d"}`, i))...)
	}
	b = append(b, []byte(`]}`)...)
	return b
}

func TestSilentRollbackDetectedWhenStackDiscardsWrites(t *testing.T) {
	m := model.NewModel()
	host := Host{
		Factory: DefaultFactory{},
		Stack:   discardingStack{},
		Clock:   RealClock{},
		Logger:  testHost().Logger,
	}
	cfg := testEngineConfig()
	cfg.ChunkSize = 50

	raw := largePlan(80)
	_, cerr := ExecutePlan(context.Background(), m, raw, validation.DefaultConfig(), cfg, host)
	require.NotNil(t, cerr)
	require.Equal(t, engineerr.CodeSilentRollback, cerr.Code)
	require.Equal(t, 10, len(cerr.Details["missingPrefix"].([]string)))
}

func TestLargePlanChunksAcrossThreshold(t *testing.T) {
	m := model.NewModel()
	cfg := testEngineConfig()
	cfg.ChunkSize = 50

	raw := largePlan(80)
	result, cerr := ExecutePlan(context.Background(), m, raw, validation.DefaultConfig(), cfg, testHost())
	require.Nil(t, cerr, "%v", cerr)
	require.Len(t, result.Ops, 80)
	for _, op := range result.Ops {
		require.NotEmpty(t, op.Fields["realId"])
	}
}
