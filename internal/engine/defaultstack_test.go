package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultStackExecuteAppliesInOrder(t *testing.T) {
	s := NewDefaultStack()
	var order []int
	tx := Transaction{
		Label: "tx",
		Entries: []SubCommand{
			{Label: "a", Apply: func() error { order = append(order, 1); return nil }, Revert: func() error { return nil }},
			{Label: "b", Apply: func() error { order = append(order, 2); return nil }, Revert: func() error { return nil }},
		},
	}
	require.NoError(t, s.Execute(context.Background(), tx))
	require.Equal(t, []int{1, 2}, order)
	require.Equal(t, 1, s.Len())
}

func TestDefaultStackRevertsOnPartialFailure(t *testing.T) {
	s := NewDefaultStack()
	var reverted []int
	tx := Transaction{
		Label: "tx",
		Entries: []SubCommand{
			{Label: "a", Apply: func() error { return nil }, Revert: func() error { reverted = append(reverted, 1); return nil }},
			{Label: "b", Apply: func() error { return errors.New("boom") }, Revert: func() error { reverted = append(reverted, 2); return nil }},
		},
	}
	err := s.Execute(context.Background(), tx)
	require.Error(t, err)
	require.Equal(t, []int{1}, reverted, "only already-applied entries must be reverted")
	require.Equal(t, 0, s.Len(), "a failed transaction must not join history")
}

func TestDefaultStackUndoReversesLastTransaction(t *testing.T) {
	s := NewDefaultStack()
	var state int
	tx := Transaction{
		Label: "tx",
		Entries: []SubCommand{
			{Label: "set", Apply: func() error { state = 1; return nil }, Revert: func() error { state = 0; return nil }},
		},
	}
	require.NoError(t, s.Execute(context.Background(), tx))
	require.Equal(t, 1, state)

	require.NoError(t, s.Undo())
	require.Equal(t, 0, state)
	require.Equal(t, 0, s.Len())
}

func TestDefaultStackUndoEmptyHistoryErrors(t *testing.T) {
	s := NewDefaultStack()
	require.Error(t, s.Undo())
}
