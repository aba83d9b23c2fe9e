package ops

import (
	"encoding/json"

	"github.com/archimate-engine/batchmut/internal/engineerr"
	"github.com/archimate-engine/batchmut/internal/model"
)

// SetPropertyOp is the decoded "setProperty" operation.
type SetPropertyOp struct {
	ID    string
	Key   string
	Value string
}

func decodeSetProperty(raw json.RawMessage, index int) (*SetPropertyOp, *engineerr.Error) {
	var wire struct {
		ID    string `json:"id"`
		Key   string `json:"key"`
		Value string `json:"value"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "setProperty: "+err.Error())
	}
	if wire.ID == "" || wire.Key == "" {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "setProperty requires id and key")
	}
	return &SetPropertyOp{ID: wire.ID, Key: wire.Key, Value: wire.Value}, nil
}

// UpdateElementOp is the decoded "updateElement" operation. Nil fields are
// "not supplied" — the compiler only touches the fields that were set.
type UpdateElementOp struct {
	ID            string
	Name          *string
	Documentation *string
	Properties    model.Properties
	HasProperties bool
}

func decodeUpdateElement(raw json.RawMessage, index int) (*UpdateElementOp, *engineerr.Error) {
	var wire struct {
		ID            string          `json:"id"`
		Name          *string         `json:"name,omitempty"`
		Documentation *string         `json:"documentation,omitempty"`
		Properties    []PropertyInput `json:"properties,omitempty"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "updateElement: "+err.Error())
	}
	if wire.ID == "" {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "updateElement requires id")
	}
	hasProps := wire.Properties != nil
	if wire.Name == nil && wire.Documentation == nil && !hasProps {
		return nil, engineerr.At(engineerr.CodeValidationError, index,
			"updateElement requires at least one of name, documentation, properties")
	}
	return &UpdateElementOp{
		ID:            wire.ID,
		Name:          wire.Name,
		Documentation: wire.Documentation,
		Properties:    toProperties(wire.Properties),
		HasProperties: hasProps,
	}, nil
}

// UpdateRelationshipOp is the decoded "updateRelationship" operation.
type UpdateRelationshipOp struct {
	ID            string
	Name          *string
	Documentation *string
	AccessType    *model.AccessType
	Strength      *model.Strength
}

func decodeUpdateRelationship(raw json.RawMessage, index int) (*UpdateRelationshipOp, *engineerr.Error) {
	var wire struct {
		ID            string  `json:"id"`
		Name          *string `json:"name,omitempty"`
		Documentation *string `json:"documentation,omitempty"`
		AccessType    *string `json:"accessType,omitempty"`
		Strength      *string `json:"strength,omitempty"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "updateRelationship: "+err.Error())
	}
	if wire.ID == "" {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "updateRelationship requires id")
	}
	if wire.Name == nil && wire.Documentation == nil && wire.AccessType == nil && wire.Strength == nil {
		return nil, engineerr.At(engineerr.CodeValidationError, index,
			"updateRelationship requires at least one of name, documentation, accessType, strength")
	}
	out := &UpdateRelationshipOp{ID: wire.ID, Name: wire.Name, Documentation: wire.Documentation}
	if wire.AccessType != nil {
		at := model.AccessType(*wire.AccessType)
		switch at {
		case model.AccessRead, model.AccessWrite, model.AccessAccess, model.AccessReadWrite:
		default:
			return nil, engineerr.At(engineerr.CodeValidationError, index, "invalid accessType "+*wire.AccessType)
		}
		out.AccessType = &at
	}
	if wire.Strength != nil {
		st := model.Strength(*wire.Strength)
		switch st {
		case model.StrengthPlus, model.StrengthMinus, model.StrengthNeutral, model.StrengthUnknown:
		default:
			return nil, engineerr.At(engineerr.CodeValidationError, index, "invalid strength "+*wire.Strength)
		}
		out.Strength = &st
	}
	return out, nil
}
