package ops

import (
	"encoding/json"

	"github.com/archimate-engine/batchmut/internal/engineerr"
)

// AddConnectionToViewOp is the decoded "addConnectionToView" operation.
type AddConnectionToViewOp struct {
	ViewID                  string
	RelationshipID          string
	SourceVisualID          string
	TargetVisualID          string
	AutoSwapDirection       bool
	AutoResolveVisuals      bool
	SkipExistingConnections bool
}

func decodeAddConnectionToView(raw json.RawMessage, index int) (*AddConnectionToViewOp, *engineerr.Error) {
	var wire struct {
		ViewID                  string `json:"viewId"`
		RelationshipID          string `json:"relationshipId"`
		SourceVisualID          string `json:"sourceVisualId,omitempty"`
		TargetVisualID          string `json:"targetVisualId,omitempty"`
		AutoSwapDirection       bool   `json:"autoSwapDirection,omitempty"`
		AutoResolveVisuals      bool   `json:"autoResolveVisuals,omitempty"`
		SkipExistingConnections bool   `json:"skipExistingConnections,omitempty"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "addConnectionToView: "+err.Error())
	}
	if wire.ViewID == "" || wire.RelationshipID == "" {
		return nil, engineerr.At(engineerr.CodeValidationError, index,
			"addConnectionToView requires viewId and relationshipId")
	}
	return &AddConnectionToViewOp{
		ViewID: wire.ViewID, RelationshipID: wire.RelationshipID,
		SourceVisualID: wire.SourceVisualID, TargetVisualID: wire.TargetVisualID,
		AutoSwapDirection: wire.AutoSwapDirection, AutoResolveVisuals: wire.AutoResolveVisuals,
		SkipExistingConnections: wire.SkipExistingConnections,
	}, nil
}

// DeleteConnectionFromViewOp is the decoded "deleteConnectionFromView"
// operation.
type DeleteConnectionFromViewOp struct {
	ViewID       string
	ConnectionID string
}

func decodeDeleteConnectionFromView(raw json.RawMessage, index int) (*DeleteConnectionFromViewOp, *engineerr.Error) {
	var wire struct {
		ViewID       string `json:"viewId"`
		ConnectionID string `json:"connectionId"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "deleteConnectionFromView: "+err.Error())
	}
	if wire.ViewID == "" || wire.ConnectionID == "" {
		return nil, engineerr.At(engineerr.CodeValidationError, index,
			"deleteConnectionFromView requires viewId and connectionId")
	}
	return &DeleteConnectionFromViewOp{ViewID: wire.ViewID, ConnectionID: wire.ConnectionID}, nil
}
