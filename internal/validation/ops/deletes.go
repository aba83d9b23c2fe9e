package ops

import (
	"encoding/json"

	"github.com/archimate-engine/batchmut/internal/engineerr"
)

// DeleteElementOp is the decoded "deleteElement" operation.
type DeleteElementOp struct {
	ID      string
	Cascade bool
}

func decodeDeleteElement(raw json.RawMessage, index int) (*DeleteElementOp, *engineerr.Error) {
	wire := struct {
		ID      string `json:"id"`
		Cascade *bool  `json:"cascade,omitempty"`
	}{}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "deleteElement: "+err.Error())
	}
	if wire.ID == "" {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "deleteElement requires id")
	}
	cascade := true
	if wire.Cascade != nil {
		cascade = *wire.Cascade
	}
	return &DeleteElementOp{ID: wire.ID, Cascade: cascade}, nil
}

// DeleteRelationshipOp is the decoded "deleteRelationship" operation.
type DeleteRelationshipOp struct {
	ID string
}

func decodeDeleteRelationship(raw json.RawMessage, index int) (*DeleteRelationshipOp, *engineerr.Error) {
	var wire struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "deleteRelationship: "+err.Error())
	}
	if wire.ID == "" {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "deleteRelationship requires id")
	}
	return &DeleteRelationshipOp{ID: wire.ID}, nil
}

// DeleteViewOp is the decoded "deleteView" operation.
type DeleteViewOp struct {
	ViewID string
}

func decodeDeleteView(raw json.RawMessage, index int) (*DeleteViewOp, *engineerr.Error) {
	var wire struct {
		ViewID string `json:"viewId"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "deleteView: "+err.Error())
	}
	if wire.ViewID == "" {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "deleteView requires viewId")
	}
	return &DeleteViewOp{ViewID: wire.ViewID}, nil
}
