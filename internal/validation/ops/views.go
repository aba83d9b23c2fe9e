package ops

import (
	"encoding/json"

	"github.com/archimate-engine/batchmut/internal/engineerr"
	"github.com/archimate-engine/batchmut/internal/model"
)

// CreateViewOp is the decoded "createView" operation.
type CreateViewOp struct {
	Name          string
	Documentation string
	Viewpoint     string
	FolderID      string
	TempID        string
}

func decodeCreateView(raw json.RawMessage, index int) (*CreateViewOp, *engineerr.Error) {
	var wire struct {
		Name          string `json:"name"`
		Documentation string `json:"documentation,omitempty"`
		Viewpoint     string `json:"viewpoint,omitempty"`
		FolderID      string `json:"folderId,omitempty"`
		TempID        string `json:"tempId,omitempty"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "createView: "+err.Error())
	}
	if wire.Name == "" {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "createView requires name")
	}
	return &CreateViewOp{
		Name: wire.Name, Documentation: wire.Documentation, Viewpoint: wire.Viewpoint,
		FolderID: wire.FolderID, TempID: wire.TempID,
	}, nil
}

// DuplicateViewOp is the decoded "duplicateView" operation.
type DuplicateViewOp struct {
	ViewID string
	Name   string
}

func decodeDuplicateView(raw json.RawMessage, index int) (*DuplicateViewOp, *engineerr.Error) {
	var wire struct {
		ViewID string `json:"viewId"`
		Name   string `json:"name,omitempty"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "duplicateView: "+err.Error())
	}
	if wire.ViewID == "" {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "duplicateView requires viewId")
	}
	return &DuplicateViewOp{ViewID: wire.ViewID, Name: wire.Name}, nil
}

// SetViewRouterOp is the decoded "setViewRouter" operation.
type SetViewRouterOp struct {
	ViewID     string
	RouterKind model.RouterKind
}

func decodeSetViewRouter(raw json.RawMessage, index int) (*SetViewRouterOp, *engineerr.Error) {
	var wire struct {
		ViewID     string `json:"viewId"`
		RouterType string `json:"routerType"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "setViewRouter: "+err.Error())
	}
	if wire.ViewID == "" {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "setViewRouter requires viewId")
	}
	kind := model.RouterKind(wire.RouterType)
	switch kind {
	case model.RouterBendpoint, model.RouterManhattan:
	default:
		return nil, engineerr.At(engineerr.CodeValidationError, index, "invalid routerType "+wire.RouterType)
	}
	return &SetViewRouterOp{ViewID: wire.ViewID, RouterKind: kind}, nil
}

// LayoutViewOp is the decoded "layoutView" operation. The layout algorithm
// itself is a host/renderer concern outside this engine's scope (spec.md
// §6: "nodesPositioned, edgesRouted" are reported counts, not computed
// geometry) — this op only validates and passes the parameters through.
type LayoutViewOp struct {
	ViewID    string
	Algorithm string
	RankDir   string
	NodeSep   *float64
	RankSep   *float64
	EdgeSep   *float64
	MarginX   *float64
	MarginY   *float64
}

func decodeLayoutView(raw json.RawMessage, index int) (*LayoutViewOp, *engineerr.Error) {
	var wire struct {
		ViewID    string   `json:"viewId"`
		Algorithm string   `json:"algorithm,omitempty"`
		RankDir   string   `json:"rankdir,omitempty"`
		NodeSep   *float64 `json:"nodesep,omitempty"`
		RankSep   *float64 `json:"ranksep,omitempty"`
		EdgeSep   *float64 `json:"edgesep,omitempty"`
		MarginX   *float64 `json:"marginx,omitempty"`
		MarginY   *float64 `json:"marginy,omitempty"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "layoutView: "+err.Error())
	}
	if wire.ViewID == "" {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "layoutView requires viewId")
	}
	if wire.Algorithm != "" && wire.Algorithm != "dagre" && wire.Algorithm != "sugiyama" {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "invalid layout algorithm "+wire.Algorithm)
	}
	return &LayoutViewOp{
		ViewID: wire.ViewID, Algorithm: wire.Algorithm, RankDir: wire.RankDir,
		NodeSep: wire.NodeSep, RankSep: wire.RankSep, EdgeSep: wire.EdgeSep,
		MarginX: wire.MarginX, MarginY: wire.MarginY,
	}, nil
}
