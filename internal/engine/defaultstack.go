package engine

import (
	"context"
	"fmt"
)

// DefaultStack is the in-process CommandStack implementation cmd/batchmutd
// wires in when no host environment supplies its own undoable stack
// (spec.md §6 capability 2). It keeps every committed Transaction as one
// undo entry, applying sub-commands in order and, if any Apply fails
// partway through, reverting the ones that already succeeded before
// returning the error — so a failed transaction never leaves a partial
// mutation behind for the caller to discover.
type DefaultStack struct {
	history []Transaction
}

// NewDefaultStack creates an empty undo stack.
func NewDefaultStack() *DefaultStack {
	return &DefaultStack{}
}

// Execute applies tx's sub-commands in order (spec.md §6: "the stack
// promises exactly-once apply"). On failure it reverts whatever already
// applied, in reverse order, then returns the failure.
func (s *DefaultStack) Execute(ctx context.Context, tx Transaction) error {
	applied := 0
	for _, entry := range tx.Entries {
		if err := entry.Apply(); err != nil {
			for i := applied - 1; i >= 0; i-- {
				if rerr := tx.Entries[i].Revert(); rerr != nil {
					return fmt.Errorf("applying %q failed (%w); reverting entry %d also failed: %v", entry.Label, err, i, rerr)
				}
			}
			return fmt.Errorf("applying %q: %w", entry.Label, err)
		}
		applied++
	}
	s.history = append(s.history, tx)
	return nil
}

// Undo reverts the most recently committed transaction, in reverse
// sub-command order, and drops it from history.
func (s *DefaultStack) Undo() error {
	if len(s.history) == 0 {
		return fmt.Errorf("undo stack is empty")
	}
	tx := s.history[len(s.history)-1]
	for i := len(tx.Entries) - 1; i >= 0; i-- {
		if err := tx.Entries[i].Revert(); err != nil {
			return fmt.Errorf("reverting %q: %w", tx.Entries[i].Label, err)
		}
	}
	s.history = s.history[:len(s.history)-1]
	return nil
}

// Len reports how many transactions are currently on the undo stack.
func (s *DefaultStack) Len() int {
	return len(s.history)
}
