package engine

import (
	"context"
	"time"

	"github.com/archimate-engine/batchmut/internal/engineerr"
	"github.com/archimate-engine/batchmut/internal/model"
	"github.com/archimate-engine/batchmut/internal/validation"
)

// Config bounds one plan's execution (spec.md §4.6 "Chunking" and
// "Cancellation & timeout").
type Config struct {
	ChunkMode  ChunkMode
	ChunkSize  int
	SettleTime time.Duration
	Timeout    time.Duration
}

// DefaultConfig mirrors the teacher's small-explicit-defaults convention.
func DefaultConfig() Config {
	return Config{
		ChunkMode:  ChunkThreshold,
		ChunkSize:  50,
		SettleTime: 20 * time.Millisecond,
		Timeout:    30 * time.Second,
	}
}

// Result is the engine's successful-plan return value (spec.md §7
// "User-visible behaviour"): one OpResult per input operation plus the
// warnings the validator collected along the way.
type Result struct {
	Ops      []OpResult
	Warnings []validation.GuardWarning
}

// ExecutePlan is the top-level entrypoint of spec.md's data flow: Plan
// Validator → Batch Compiler → Sub-command Chunks → Command Stack →
// Verifier → Result Rewriter. raw is the plan's wire bytes; m is the
// in-process model the plan mutates in place.
func ExecutePlan(ctx context.Context, m *model.Model, raw []byte, validationCfg validation.Config, cfg Config, host Host) (Result, *engineerr.Error) {
	plan, verr := validation.ValidatePlan(raw, m, validationCfg)
	if verr != nil {
		return Result{}, verr
	}

	compiler := NewCompiler(m, host)
	groups, results, cerr := compiler.Compile(plan.Ops)
	if cerr != nil {
		return Result{}, cerr
	}

	transactions := chunkTransactions(groups, cfg.ChunkMode, cfg.ChunkSize)

	runCtx := ctx
	var cancel context.CancelFunc
	if cfg.Timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	cctx := compiler.Context()
	for i, tx := range transactions {
		if err := runCtx.Err(); err != nil {
			return Result{}, engineerr.New(engineerr.CodeTimeout, "plan exceeded configured timeout")
		}
		if err := executeWithRetry(runCtx, host.Logger, host.Stack, tx); err != nil {
			return Result{}, engineerr.Wrap(err)
		}
		if cfg.SettleTime > 0 {
			host.Clock.Sleep(runCtx, cfg.SettleTime)
		}
		if verr := verifyCommitted(cctx); verr != nil {
			return Result{}, verr
		}
		if i < len(transactions)-1 {
			// Between-chunk suspension point (spec.md §4.6 "Suspension
			// points"): yield so the host's event loop can paint progress
			// or honour cancellation before the next chunk commits.
			select {
			case <-runCtx.Done():
				return Result{}, engineerr.New(engineerr.CodeTimeout, "plan exceeded configured timeout")
			default:
			}
		}
	}

	rewriteResults(cctx, results)
	return Result{Ops: results, Warnings: plan.Warnings}, nil
}
