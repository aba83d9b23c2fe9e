package ops

import (
	"encoding/json"

	"github.com/archimate-engine/batchmut/internal/engineerr"
	"github.com/archimate-engine/batchmut/internal/model"
)

// CreateRelationshipOp is the decoded "createRelationship" operation.
type CreateRelationshipOp struct {
	Type          string
	SourceID      string
	TargetID      string
	Name          string
	Documentation string
	AccessType    model.AccessType
	Strength      model.Strength
	TempID        string
}

func decodeCreateRelationship(raw json.RawMessage, index int) (*CreateRelationshipOp, *engineerr.Error) {
	var wire struct {
		Type          string `json:"type"`
		SourceID      string `json:"sourceId"`
		TargetID      string `json:"targetId"`
		Name          string `json:"name,omitempty"`
		Documentation string `json:"documentation,omitempty"`
		AccessType    string `json:"accessType,omitempty"`
		Strength      string `json:"strength,omitempty"`
		TempID        string `json:"tempId,omitempty"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "createRelationship: "+err.Error())
	}
	if wire.Type == "" || wire.SourceID == "" || wire.TargetID == "" {
		return nil, engineerr.At(engineerr.CodeValidationError, index,
			"createRelationship requires type, sourceId, targetId")
	}
	normalized := model.NormalizeKind(wire.Type)
	if !model.IsValidRelationshipKind(normalized) {
		return nil, engineerr.At(engineerr.CodeInvalidRelationshipKind, index, "unknown relationship kind "+wire.Type)
	}
	accessType, strength, verr := validateKindAttrs(normalized, wire.AccessType, wire.Strength, index)
	if verr != nil {
		return nil, verr
	}
	return &CreateRelationshipOp{
		Type:          normalized,
		SourceID:      wire.SourceID,
		TargetID:      wire.TargetID,
		Name:          wire.Name,
		Documentation: wire.Documentation,
		AccessType:    accessType,
		Strength:      strength,
		TempID:        wire.TempID,
	}, nil
}

// CreateOrGetRelationshipOp is the decoded "createOrGetRelationship" upsert
// operation.
type CreateOrGetRelationshipOp struct {
	Create      CreateRelationshipOp
	MatchType   string
	MatchSource string
	MatchTarget string
	OnDuplicate string
	TempID      string

	// Decision, as on CreateOrGetElementOp: Action ∈
	// {"created","reused"}; MatchedID is the existing relationship's id
	// when Action is "reused" (relationships have no rename strategy).
	Action    string
	MatchedID string
}

func decodeCreateOrGetRelationship(raw json.RawMessage, index int) (*CreateOrGetRelationshipOp, *engineerr.Error) {
	var wire struct {
		Create      EntitySpec `json:"create"`
		Match       EntitySpec `json:"match"`
		OnDuplicate string     `json:"onDuplicate,omitempty"`
		TempID      string     `json:"tempId,omitempty"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "createOrGetRelationship: "+err.Error())
	}
	if wire.Create.Type == "" || wire.Create.SourceID == "" || wire.Create.TargetID == "" ||
		wire.Match.Type == "" || wire.Match.SourceID == "" || wire.Match.TargetID == "" {
		return nil, engineerr.At(engineerr.CodeValidationError, index,
			"createOrGetRelationship requires create{type,sourceId,targetId} and match{same}")
	}
	createKind := model.NormalizeKind(wire.Create.Type)
	matchKind := model.NormalizeKind(wire.Match.Type)
	if createKind != matchKind || wire.Create.SourceID != wire.Match.SourceID || wire.Create.TargetID != wire.Match.TargetID {
		return nil, engineerr.At(engineerr.CodeInvalidMatchSpecification, index,
			"createOrGetRelationship create and match must agree on type, sourceId, and targetId")
	}
	if !model.IsValidRelationshipKind(createKind) {
		return nil, engineerr.At(engineerr.CodeInvalidRelationshipKind, index, "unknown relationship kind "+wire.Create.Type)
	}
	if !validOnDuplicate(wire.OnDuplicate, false) {
		return nil, engineerr.At(engineerr.CodeInvalidDuplicateStrategy, index, "invalid onDuplicate "+wire.OnDuplicate)
	}
	accessType, strength, verr := validateKindAttrs(createKind, wire.Create.AccessType, wire.Create.Strength, index)
	if verr != nil {
		return nil, verr
	}
	return &CreateOrGetRelationshipOp{
		Create: CreateRelationshipOp{
			Type:          createKind,
			SourceID:      wire.Create.SourceID,
			TargetID:      wire.Create.TargetID,
			Name:          wire.Create.Name,
			Documentation: wire.Create.Documentation,
			AccessType:    accessType,
			Strength:      strength,
		},
		MatchType:   matchKind,
		MatchSource: wire.Match.SourceID,
		MatchTarget: wire.Match.TargetID,
		OnDuplicate: wire.OnDuplicate,
		TempID:      wire.TempID,
	}, nil
}

// validateKindAttrs validates the kind-specific attributes of spec.md §3:
// access_type only for access-relationship, strength only for
// influence-relationship.
func validateKindAttrs(kind, access, strength string, index int) (model.AccessType, model.Strength, *engineerr.Error) {
	var at model.AccessType
	var st model.Strength
	if access != "" {
		at = model.AccessType(access)
		switch at {
		case model.AccessRead, model.AccessWrite, model.AccessAccess, model.AccessReadWrite:
		default:
			return "", "", engineerr.At(engineerr.CodeValidationError, index, "invalid accessType "+access)
		}
	}
	if strength != "" {
		st = model.Strength(strength)
		switch st {
		case model.StrengthPlus, model.StrengthMinus, model.StrengthNeutral, model.StrengthUnknown:
		default:
			return "", "", engineerr.At(engineerr.CodeValidationError, index, "invalid strength "+strength)
		}
	}
	return at, st, nil
}
