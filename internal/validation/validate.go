package validation

import (
	"encoding/json"
	"regexp"

	"github.com/archimate-engine/batchmut/internal/engineerr"
	"github.com/archimate-engine/batchmut/internal/model"
	"github.com/archimate-engine/batchmut/internal/validation/ops"
)

var idempotencyKeyPattern = regexp.MustCompile(`^[A-Za-z0-9:_-]{1,128}$`)

// ValidatePlan runs spec.md §4.5's six ordered checks against raw plan
// bytes and a snapshot of the existing model, returning a compiler-ready
// Plan or the first *engineerr.Error encountered (validation aborts the
// plan before any sub-command is emitted).
func ValidatePlan(raw []byte, snapshot *model.Model, cfg Config) (*Plan, *engineerr.Error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, engineerr.New(engineerr.CodeValidationError, "malformed plan envelope: "+err.Error())
	}
	if len(env.Changes) == 0 {
		return nil, engineerr.New(engineerr.CodeValidationError, "plan must have a non-empty changes list")
	}
	if env.IdempotencyKey != "" && !idempotencyKeyPattern.MatchString(env.IdempotencyKey) {
		return nil, engineerr.New(engineerr.CodeValidationError, "idempotencyKey does not match ^[A-Za-z0-9:_-]{1,128}$")
	}
	if !validDuplicateStrategy(env.DuplicateStrategy) {
		return nil, engineerr.New(engineerr.CodeInvalidDuplicateStrategy, "invalid duplicateStrategy "+env.DuplicateStrategy)
	}

	anyPerOpOverride := false
	for _, raw := range env.Changes {
		if hasPerOpOnDuplicate(raw.Raw()) {
			anyPerOpOverride = true
			break
		}
	}
	warnings, gerr := runGuards(guardContext{
		NumChanges:           len(env.Changes),
		IdempotencyKey:       env.IdempotencyKey,
		GlobalDuplicateSet:   env.DuplicateStrategy != "",
		AnyPerOpDuplicateSet: anyPerOpOverride,
		MaxChanges:           cfg.MaxChanges,
	})
	if gerr != nil {
		return nil, gerr
	}

	dupIndex := NewDuplicateIndex(snapshot)
	globalStrategy := DuplicateStrategy(env.DuplicateStrategy)
	if globalStrategy == "" {
		globalStrategy = StrategyError
	}

	validated := make([]ValidatedOp, 0, len(env.Changes))
	for i, raw := range env.Changes {
		if !validTag(raw.Op) {
			return nil, engineerr.At(engineerr.CodeValidationError, i, "unknown operation tag "+raw.Op)
		}
		decoded, derr := ops.Decode(raw.Op, raw.Raw(), i)
		if derr != nil {
			return nil, derr
		}
		if derr := applyDuplicatePolicy(OpTag(raw.Op), decoded, dupIndex, globalStrategy, i); derr != nil {
			return nil, derr
		}
		validated = append(validated, ValidatedOp{Tag: OpTag(raw.Op), Index: i, Decoded: decoded})
	}

	return &Plan{
		Ops:               validated,
		IdempotencyKey:    env.IdempotencyKey,
		DuplicateStrategy: globalStrategy,
		Warnings:          warnings,
	}, nil
}

// hasPerOpOnDuplicate peeks at raw bytes for a non-empty onDuplicate field
// without fully decoding the operation, used only by the
// DuplicateStrategyGuard's shadow-detection heuristic.
func hasPerOpOnDuplicate(raw json.RawMessage) bool {
	var peek struct {
		OnDuplicate string `json:"onDuplicate"`
	}
	if err := json.Unmarshal(raw, &peek); err != nil {
		return false
	}
	return peek.OnDuplicate != ""
}

// applyDuplicatePolicy runs spec.md §4.5 check 5 for create/upsert
// operations: looks up matches in the snapshot and the intra-plan index,
// applies the error/reuse/rename strategy, and registers the outcome for
// later operations in the same plan to see.
func applyDuplicatePolicy(tag OpTag, decoded any, idx *DuplicateIndex, globalStrategy DuplicateStrategy, index int) *engineerr.Error {
	switch tag {
	case OpCreateElement:
		op := decoded.(*ops.CreateElementOp)
		matches := idx.ElementMatches(op.Type, op.Name)
		if len(matches) > 0 {
			return engineerr.At(engineerr.CodeDuplicateElement, index,
				"element "+op.Name+" of kind "+op.Type+" already exists")
		}
		idx.RegisterElement(op.Type, op.Name, "", op.TempID)
		return nil

	case OpCreateOrGetElement:
		op := decoded.(*ops.CreateOrGetElementOp)
		strategy := resolveStrategy(op.OnDuplicate, globalStrategy)
		matches := idx.ElementMatches(op.MatchType, op.MatchName)
		op.FinalName = op.Create.Name
		switch {
		case len(matches) == 0:
			op.Action = "created"
			idx.RegisterElement(op.Create.Type, op.Create.Name, "", op.TempID)
		case strategy == StrategyError:
			return engineerr.At(engineerr.CodeDuplicateElement, index,
				"element "+op.MatchName+" of kind "+op.MatchType+" already exists")
		case strategy == StrategyReuse:
			if len(matches) > 1 {
				return engineerr.At(engineerr.CodeAmbiguousMatch, index,
					"multiple elements match "+op.MatchName+" of kind "+op.MatchType)
			}
			op.Action = "reused"
			op.MatchedID = matches[0]
		case strategy == StrategyRename:
			renamed := idx.NextRenameCandidate(op.Create.Type, op.Create.Name)
			op.Action = "renamed"
			op.FinalName = renamed
			idx.RegisterElement(op.Create.Type, renamed, "", op.TempID)
		}
		return nil

	case OpCreateRelationship:
		op := decoded.(*ops.CreateRelationshipOp)
		key := relKey{kind: op.Type, sourceRef: op.SourceID, targetRef: op.TargetID, accessType: op.AccessType, strength: op.Strength}
		matches := idx.RelationshipMatches(key)
		if len(matches) > 0 {
			return engineerr.At(engineerr.CodeDuplicateRelationship, index,
				"relationship of kind "+op.Type+" between the given endpoints already exists")
		}
		idx.RegisterRelationship(key, "")
		return nil

	case OpCreateOrGetRelationship:
		op := decoded.(*ops.CreateOrGetRelationshipOp)
		strategy := resolveStrategy(op.OnDuplicate, globalStrategy)
		key := relKey{kind: op.MatchType, sourceRef: op.MatchSource, targetRef: op.MatchTarget}
		matches := idx.RelationshipMatches(key)
		switch {
		case len(matches) == 0:
			op.Action = "created"
			idx.RegisterRelationship(key, "")
		case strategy == StrategyError:
			return engineerr.At(engineerr.CodeDuplicateRelationship, index,
				"relationship of kind "+op.MatchType+" between the given endpoints already exists")
		case strategy == StrategyReuse:
			if len(matches) > 1 {
				return engineerr.At(engineerr.CodeAmbiguousMatch, index,
					"multiple relationships match the given endpoints")
			}
			op.Action = "reused"
			op.MatchedID = matches[0]
		}
		return nil
	}
	return nil
}

// resolveStrategy applies a per-operation onDuplicate override over the
// plan-level duplicateStrategy — the per-operation value always wins
// (spec.md §6 / the duplicate_strategy_shadow guard warning).
func resolveStrategy(perOp string, global DuplicateStrategy) DuplicateStrategy {
	if perOp != "" {
		return DuplicateStrategy(perOp)
	}
	return global
}
