package validation

import (
	"fmt"

	"github.com/archimate-engine/batchmut/internal/engineerr"
)

// Severity mirrors the teacher's guards.Severity: how a guard finding
// affects validation. Only HardBlock and Warning/Suggestion are used here —
// a plan-level validator has no notion of a force=true override, so
// SoftBlock is omitted rather than carried in unused.
type Severity int

const (
	Suggestion Severity = iota
	Warning
	HardBlock
)

func (s Severity) String() string {
	switch s {
	case Suggestion:
		return "SUGGESTION"
	case Warning:
		return "WARNING"
	case HardBlock:
		return "HARD_BLOCK"
	default:
		return "UNKNOWN"
	}
}

// GuardWarning is a non-fatal guard finding attached to a validated Plan's
// Warnings field. HardBlock findings never reach here — they abort
// validation with a *engineerr.Error instead (spec.md §7: "Validation
// errors abort the plan before any sub-command is emitted").
type GuardWarning struct {
	GuardName string
	Message   string
}

// guardResult is the outcome of a single guard check.
type guardResult struct {
	GuardName string
	Passed    bool
	Severity  Severity
	Message   string
}

// guardContext carries what the preflight guards need to see: the raw
// envelope (before per-op decoding) and whether any op carries a per-op
// onDuplicate override, which DuplicateStrategyGuard needs to catch the
// "global + per-op override" mistake.
type guardContext struct {
	NumChanges           int
	IdempotencyKey       string
	GlobalDuplicateSet   bool
	AnyPerOpDuplicateSet bool
	MaxChanges           int
}

type guardFunc struct {
	name  string
	check func(gctx guardContext) guardResult
}

func guardPass(name string) guardResult {
	return guardResult{GuardName: name, Passed: true}
}

func guardFail(name string, sev Severity, message string) guardResult {
	return guardResult{GuardName: name, Passed: false, Severity: sev, Message: message}
}

// planSizeGuard rejects plans with more operations than Config.MaxChanges
// allows (spec.md §4.5 check 1).
var planSizeGuard = guardFunc{
	name: "plan_size",
	check: func(gctx guardContext) guardResult {
		if gctx.NumChanges > gctx.MaxChanges {
			return guardFail("plan_size", HardBlock,
				fmt.Sprintf("plan has %d changes, exceeding the %d-change limit", gctx.NumChanges, gctx.MaxChanges))
		}
		return guardPass("plan_size")
	},
}

// idempotencyKeyFormatGuard rejects malformed idempotency keys outright
// rather than accepting and later failing to match anything in the cache.
var idempotencyKeyFormatGuard = guardFunc{
	name: "idempotency_key_format",
	check: func(gctx guardContext) guardResult {
		if gctx.IdempotencyKey == "" {
			return guardPass("idempotency_key_format")
		}
		if len(gctx.IdempotencyKey) > 256 {
			return guardFail("idempotency_key_format", HardBlock, "idempotencyKey exceeds 256 characters")
		}
		for _, r := range gctx.IdempotencyKey {
			if r < 0x20 || r == 0x7f {
				return guardFail("idempotency_key_format", HardBlock, "idempotencyKey contains control characters")
			}
		}
		return guardPass("idempotency_key_format")
	},
}

// duplicateStrategyGuard warns when a plan sets both a global
// duplicateStrategy and at least one per-operation onDuplicate override,
// since the per-operation value always wins and silently shadows the
// global setting — a common caller mistake worth surfacing rather than
// blocking.
var duplicateStrategyGuard = guardFunc{
	name: "duplicate_strategy_shadow",
	check: func(gctx guardContext) guardResult {
		if gctx.GlobalDuplicateSet && gctx.AnyPerOpDuplicateSet {
			return guardFail("duplicate_strategy_shadow", Warning,
				"plan sets a global duplicateStrategy and at least one per-operation onDuplicate; the per-operation value always wins")
		}
		return guardPass("duplicate_strategy_shadow")
	},
}

// runGuards runs every preflight guard against gctx. It returns warnings to
// attach to the validated plan, or a *engineerr.Error if any guard produced
// a HardBlock finding.
func runGuards(gctx guardContext) ([]GuardWarning, *engineerr.Error) {
	guards := []guardFunc{planSizeGuard, idempotencyKeyFormatGuard, duplicateStrategyGuard}

	var warnings []GuardWarning
	for _, g := range guards {
		result := g.check(gctx)
		if result.Passed {
			continue
		}
		if result.Severity == HardBlock {
			return nil, engineerr.New(engineerr.CodeValidationError, result.Message).
				WithDetails(map[string]any{"guard": result.GuardName})
		}
		warnings = append(warnings, GuardWarning{GuardName: result.GuardName, Message: result.Message})
	}
	return warnings, nil
}
