package ops

import (
	"encoding/json"

	"github.com/archimate-engine/batchmut/internal/engineerr"
	"github.com/archimate-engine/batchmut/internal/model"
)

// CreateElementOp is the decoded, normalised "createElement" operation.
type CreateElementOp struct {
	Type          string
	Name          string
	Documentation string
	Properties    model.Properties
	Folder        string
	TempID        string
}

func decodeCreateElement(raw json.RawMessage, index int) (*CreateElementOp, *engineerr.Error) {
	var wire struct {
		Type          string          `json:"type"`
		Name          string          `json:"name"`
		Documentation string          `json:"documentation,omitempty"`
		Properties    []PropertyInput `json:"properties,omitempty"`
		Folder        string          `json:"folder,omitempty"`
		TempID        string          `json:"tempId,omitempty"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "createElement: "+err.Error())
	}
	if wire.Type == "" || wire.Name == "" {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "createElement requires type and name")
	}
	normalized := model.NormalizeKind(wire.Type)
	if !model.IsValidElementKind(normalized) {
		return nil, engineerr.At(engineerr.CodeInvalidElementKind, index, "unknown element kind "+wire.Type)
	}
	return &CreateElementOp{
		Type:          normalized,
		Name:          wire.Name,
		Documentation: wire.Documentation,
		Properties:    toProperties(wire.Properties),
		Folder:        wire.Folder,
		TempID:        wire.TempID,
	}, nil
}

// CreateOrGetElementOp is the decoded "createOrGetElement" upsert operation.
type CreateOrGetElementOp struct {
	Create        CreateElementOp
	MatchType     string
	MatchName     string
	OnDuplicate   string
	TempID        string

	// Decision is filled in by the validator's duplicate-policy pass
	// (after decodeCreateOrGetElement returns) so the compiler never
	// re-derives it: Action is one of "created"/"reused"/"renamed",
	// MatchedID is the existing element's id when Action is "reused", and
	// FinalName is the name actually used to create when Action is
	// "renamed" (Create.Name otherwise).
	Action    string
	MatchedID string
	FinalName string
}

func decodeCreateOrGetElement(raw json.RawMessage, index int) (*CreateOrGetElementOp, *engineerr.Error) {
	var wire struct {
		Create      EntitySpec `json:"create"`
		Match       EntitySpec `json:"match"`
		OnDuplicate string     `json:"onDuplicate,omitempty"`
		TempID      string     `json:"tempId,omitempty"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "createOrGetElement: "+err.Error())
	}
	if wire.Create.Type == "" || wire.Create.Name == "" || wire.Match.Type == "" || wire.Match.Name == "" {
		return nil, engineerr.At(engineerr.CodeValidationError, index,
			"createOrGetElement requires create{type,name} and match{type,name}")
	}
	createKind := model.NormalizeKind(wire.Create.Type)
	matchKind := model.NormalizeKind(wire.Match.Type)
	if createKind != matchKind || wire.Create.Name != wire.Match.Name {
		return nil, engineerr.At(engineerr.CodeInvalidMatchSpecification, index,
			"createOrGetElement create and match must agree on type and name")
	}
	if !model.IsValidElementKind(createKind) {
		return nil, engineerr.At(engineerr.CodeInvalidElementKind, index, "unknown element kind "+wire.Create.Type)
	}
	if !validOnDuplicate(wire.OnDuplicate, true) {
		return nil, engineerr.At(engineerr.CodeInvalidDuplicateStrategy, index, "invalid onDuplicate "+wire.OnDuplicate)
	}
	return &CreateOrGetElementOp{
		Create: CreateElementOp{
			Type:          createKind,
			Name:          wire.Create.Name,
			Documentation: wire.Create.Documentation,
			Properties:    toProperties(wire.Create.Properties),
			Folder:        wire.Create.Folder,
		},
		MatchType:   matchKind,
		MatchName:   wire.Match.Name,
		OnDuplicate: wire.OnDuplicate,
		TempID:      wire.TempID,
	}, nil
}

// validOnDuplicate reports whether s is a legal onDuplicate value.
// allowRename is false for relationships (spec.md §6: createOrGetRelationship
// "onDuplicate (∉ rename)" — a relationship has no name field to rename).
func validOnDuplicate(s string, allowRename bool) bool {
	switch s {
	case "", "error", "reuse":
		return true
	case "rename":
		return allowRename
	default:
		return false
	}
}
