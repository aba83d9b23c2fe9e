package ops

import (
	"encoding/json"

	"github.com/archimate-engine/batchmut/internal/engineerr"
)

// defaultBounds are the "default bounds to (100,100,120,55)" of spec.md
// §4.6's addToView lowering.
const (
	DefaultX = 100
	DefaultY = 100
	DefaultW = 120
	DefaultH = 55
)

// AddToViewOp is the decoded "addToView" operation.
type AddToViewOp struct {
	ViewID        string
	ElementID     string
	X, Y, W, H    float64
	ParentVisual  string
	TempID        string
}

func decodeAddToView(raw json.RawMessage, index int) (*AddToViewOp, *engineerr.Error) {
	var wire struct {
		ViewID       string   `json:"viewId"`
		ElementID    string   `json:"elementId"`
		X            *float64 `json:"x,omitempty"`
		Y            *float64 `json:"y,omitempty"`
		Width        *float64 `json:"width,omitempty"`
		Height       *float64 `json:"height,omitempty"`
		ParentVisual string   `json:"parentVisualId,omitempty"`
		TempID       string   `json:"tempId,omitempty"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "addToView: "+err.Error())
	}
	if wire.ViewID == "" || wire.ElementID == "" {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "addToView requires viewId and elementId")
	}
	op := &AddToViewOp{
		ViewID: wire.ViewID, ElementID: wire.ElementID, ParentVisual: wire.ParentVisual, TempID: wire.TempID,
		X: DefaultX, Y: DefaultY, W: DefaultW, H: DefaultH,
	}
	if wire.X != nil {
		op.X = *wire.X
	}
	if wire.Y != nil {
		op.Y = *wire.Y
	}
	if wire.Width != nil {
		op.W = *wire.Width
	}
	if wire.Height != nil {
		op.H = *wire.Height
	}
	return op, nil
}

// NestInViewOp is the decoded "nestInView" operation.
type NestInViewOp struct {
	ViewID       string
	VisualID     string
	ParentVisual string
	X, Y         *float64
}

func decodeNestInView(raw json.RawMessage, index int) (*NestInViewOp, *engineerr.Error) {
	var wire struct {
		ViewID       string   `json:"viewId"`
		VisualID     string   `json:"visualId"`
		ParentVisual string   `json:"parentVisualId"`
		X            *float64 `json:"x,omitempty"`
		Y            *float64 `json:"y,omitempty"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "nestInView: "+err.Error())
	}
	if wire.ViewID == "" || wire.VisualID == "" || wire.ParentVisual == "" {
		return nil, engineerr.At(engineerr.CodeValidationError, index,
			"nestInView requires viewId, visualId, parentVisualId")
	}
	if wire.VisualID == wire.ParentVisual {
		return nil, engineerr.At(engineerr.CodeUnsupportedContainer, index, "nestInView cannot nest a visual under itself")
	}
	return &NestInViewOp{ViewID: wire.ViewID, VisualID: wire.VisualID, ParentVisual: wire.ParentVisual, X: wire.X, Y: wire.Y}, nil
}

// MoveViewObjectOp is the decoded "moveViewObject" operation.
type MoveViewObjectOp struct {
	VisualID      string
	X, Y, W, H    *float64
}

func decodeMoveViewObject(raw json.RawMessage, index int) (*MoveViewObjectOp, *engineerr.Error) {
	var wire struct {
		VisualID string   `json:"viewObjectId"`
		X        *float64 `json:"x,omitempty"`
		Y        *float64 `json:"y,omitempty"`
		Width    *float64 `json:"width,omitempty"`
		Height   *float64 `json:"height,omitempty"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "moveViewObject: "+err.Error())
	}
	if wire.VisualID == "" {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "moveViewObject requires viewObjectId")
	}
	if wire.X == nil && wire.Y == nil && wire.Width == nil && wire.Height == nil {
		return nil, engineerr.At(engineerr.CodeValidationError, index,
			"moveViewObject requires at least one of x, y, width, height")
	}
	return &MoveViewObjectOp{VisualID: wire.VisualID, X: wire.X, Y: wire.Y, W: wire.Width, H: wire.Height}, nil
}

// CreateNoteOp is the decoded "createNote" operation. Content/Text are
// aliases of the same field per spec.md §4.5 check 6.
type CreateNoteOp struct {
	ViewID     string
	Content    string
	X, Y, W, H float64
	TempID     string
}

func decodeCreateNote(raw json.RawMessage, index int) (*CreateNoteOp, *engineerr.Error) {
	var wire struct {
		ViewID  string   `json:"viewId"`
		Content string   `json:"content,omitempty"`
		Text    string   `json:"text,omitempty"`
		X       *float64 `json:"x,omitempty"`
		Y       *float64 `json:"y,omitempty"`
		Width   *float64 `json:"width,omitempty"`
		Height  *float64 `json:"height,omitempty"`
		TempID  string   `json:"tempId,omitempty"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "createNote: "+err.Error())
	}
	content := firstNonEmpty(wire.Content, wire.Text)
	if wire.ViewID == "" || content == "" {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "createNote requires viewId and content")
	}
	op := &CreateNoteOp{ViewID: wire.ViewID, Content: content, TempID: wire.TempID, X: DefaultX, Y: DefaultY, W: DefaultW, H: DefaultH}
	if wire.X != nil {
		op.X = *wire.X
	}
	if wire.Y != nil {
		op.Y = *wire.Y
	}
	if wire.Width != nil {
		op.W = *wire.Width
	}
	if wire.Height != nil {
		op.H = *wire.Height
	}
	return op, nil
}

// CreateGroupOp is the decoded "createGroup" operation.
type CreateGroupOp struct {
	ViewID        string
	Name          string
	Documentation string
	X, Y, W, H    float64
	TempID        string
}

func decodeCreateGroup(raw json.RawMessage, index int) (*CreateGroupOp, *engineerr.Error) {
	var wire struct {
		ViewID        string   `json:"viewId"`
		Name          string   `json:"name"`
		Documentation string   `json:"documentation,omitempty"`
		X             *float64 `json:"x,omitempty"`
		Y             *float64 `json:"y,omitempty"`
		Width         *float64 `json:"width,omitempty"`
		Height        *float64 `json:"height,omitempty"`
		TempID        string   `json:"tempId,omitempty"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "createGroup: "+err.Error())
	}
	if wire.ViewID == "" || wire.Name == "" {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "createGroup requires viewId and name")
	}
	op := &CreateGroupOp{
		ViewID: wire.ViewID, Name: wire.Name, Documentation: wire.Documentation, TempID: wire.TempID,
		X: DefaultX, Y: DefaultY, W: DefaultW, H: DefaultH,
	}
	if wire.X != nil {
		op.X = *wire.X
	}
	if wire.Y != nil {
		op.Y = *wire.Y
	}
	if wire.Width != nil {
		op.W = *wire.Width
	}
	if wire.Height != nil {
		op.H = *wire.Height
	}
	return op, nil
}
