// Package validation implements spec.md §4.5: per-plan schema checks,
// intra-batch duplicate tracking, and match/upsert normalisation, run
// before the batch compiler ever emits a sub-command. Grounded on the
// teacher's internal/validation package (Registry/Validator interface,
// table-driven dispatch), generalised from "entity type → state-transition
// validator" to "op tag → op validator."
package validation

import (
	"encoding/json"
	"fmt"
)

// OpTag is the closed set of operation tags accepted in a plan's "changes"
// list (spec.md §6). Implemented as a closed sum type dispatched by an
// exhaustive registry lookup (spec.md §9 Design Note) — unknown tags fail
// validation rather than falling through to a default.
type OpTag string

const (
	OpCreateElement            OpTag = "createElement"
	OpCreateOrGetElement       OpTag = "createOrGetElement"
	OpCreateRelationship       OpTag = "createRelationship"
	OpCreateOrGetRelationship  OpTag = "createOrGetRelationship"
	OpSetProperty              OpTag = "setProperty"
	OpUpdateElement            OpTag = "updateElement"
	OpUpdateRelationship       OpTag = "updateRelationship"
	OpDeleteElement            OpTag = "deleteElement"
	OpDeleteRelationship       OpTag = "deleteRelationship"
	OpMoveToFolder             OpTag = "moveToFolder"
	OpCreateFolder             OpTag = "createFolder"
	OpCreateView               OpTag = "createView"
	OpDeleteView               OpTag = "deleteView"
	OpDuplicateView            OpTag = "duplicateView"
	OpSetViewRouter            OpTag = "setViewRouter"
	OpLayoutView               OpTag = "layoutView"
	OpAddToView                OpTag = "addToView"
	OpNestInView               OpTag = "nestInView"
	OpAddConnectionToView      OpTag = "addConnectionToView"
	OpDeleteConnectionFromView OpTag = "deleteConnectionFromView"
	OpStyleViewObject          OpTag = "styleViewObject"
	OpStyleConnection          OpTag = "styleConnection"
	OpMoveViewObject           OpTag = "moveViewObject"
	OpCreateNote               OpTag = "createNote"
	OpCreateGroup              OpTag = "createGroup"
)

// DuplicateStrategy is the plan-level or per-operation onDuplicate/
// duplicateStrategy value (spec.md §4.4).
type DuplicateStrategy string

const (
	StrategyError  DuplicateStrategy = "error"
	StrategyReuse  DuplicateStrategy = "reuse"
	StrategyRename DuplicateStrategy = "rename"
)

// rawOp is the envelope-level shape of one plan entry: enough to dispatch
// on Op while keeping the raw bytes around for the tag-specific decoder.
type rawOp struct {
	Op  string          `json:"op"`
	raw json.RawMessage `json:"-"`
}

func (r *rawOp) UnmarshalJSON(data []byte) error {
	var peek struct {
		Op string `json:"op"`
	}
	if err := json.Unmarshal(data, &peek); err != nil {
		return err
	}
	r.Op = peek.Op
	r.raw = append(json.RawMessage(nil), data...)
	return nil
}

// Raw exposes the original bytes for this entry so the ops subpackage can
// decode the tag-specific shape without re-parsing the envelope.
func (r rawOp) Raw() json.RawMessage { return r.raw }

// Envelope is the wire-agnostic plan shape (spec.md §6): "{changes: [Op],
// idempotencyKey?: string, duplicateStrategy?: ...}".
type Envelope struct {
	Changes           []rawOp `json:"changes"`
	IdempotencyKey    string  `json:"idempotencyKey,omitempty"`
	DuplicateStrategy string  `json:"duplicateStrategy,omitempty"`
}

// ValidatedOp is one plan entry after successful validation: its tag, its
// index in the plan (for error reporting and result ordering), and the
// concrete, normalised, tag-specific struct the compiler consumes. Decoding
// happens exactly once — Decoded is never re-parsed from raw bytes again,
// so kind normalisation (spec.md §4.5 check 3: "normalised kind is written
// back into the operation, mutating the validated plan") is simply a
// mutation of the field on this struct before compilation begins.
type ValidatedOp struct {
	Tag     OpTag
	Index   int
	Decoded any
}

// Plan is a fully validated plan, ready for the batch compiler.
type Plan struct {
	Ops               []ValidatedOp
	IdempotencyKey    string
	DuplicateStrategy DuplicateStrategy
	Warnings          []GuardWarning
}

// Config bounds the validator's envelope checks (spec.md §4.5 check 1).
type Config struct {
	MaxChanges int
}

// DefaultConfig mirrors the teacher's convention of small, explicit
// defaults in internal/config rather than implicit zero values.
func DefaultConfig() Config {
	return Config{MaxChanges: 500}
}

func validTag(tag string) bool {
	switch OpTag(tag) {
	case OpCreateElement, OpCreateOrGetElement, OpCreateRelationship, OpCreateOrGetRelationship,
		OpSetProperty, OpUpdateElement, OpUpdateRelationship, OpDeleteElement, OpDeleteRelationship,
		OpMoveToFolder, OpCreateFolder, OpCreateView, OpDeleteView, OpDuplicateView, OpSetViewRouter,
		OpLayoutView, OpAddToView, OpNestInView, OpAddConnectionToView, OpDeleteConnectionFromView,
		OpStyleViewObject, OpStyleConnection, OpMoveViewObject, OpCreateNote, OpCreateGroup:
		return true
	default:
		return false
	}
}

func validDuplicateStrategy(s string) bool {
	switch DuplicateStrategy(s) {
	case "", StrategyError, StrategyReuse, StrategyRename:
		return true
	default:
		return false
	}
}

func errf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}
