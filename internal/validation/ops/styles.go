package ops

import (
	"encoding/json"

	"github.com/archimate-engine/batchmut/internal/engineerr"
	"github.com/archimate-engine/batchmut/internal/style"
)

// StyleViewObjectOp is the decoded "styleViewObject" operation. viewObjectId
// and visualId are aliases of the same field (spec.md §4.5 check 6).
type StyleViewObjectOp struct {
	VisualID  string
	FillColor *string
	LineColor *string
	FontColor *string
	Opacity   *int
	Font      *string
}

func decodeStyleViewObject(raw json.RawMessage, index int) (*StyleViewObjectOp, *engineerr.Error) {
	var wire struct {
		ViewObjectID string  `json:"viewObjectId,omitempty"`
		VisualID     string  `json:"visualId,omitempty"`
		FillColor    *string `json:"fillColor,omitempty"`
		LineColor    *string `json:"lineColor,omitempty"`
		FontColor    *string `json:"fontColor,omitempty"`
		Opacity      *int    `json:"opacity,omitempty"`
		Font         *string `json:"font,omitempty"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "styleViewObject: "+err.Error())
	}
	id := firstNonEmpty(wire.ViewObjectID, wire.VisualID)
	if id == "" {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "styleViewObject requires viewObjectId or visualId")
	}
	op := &StyleViewObjectOp{VisualID: id, Font: wire.Font}
	var verr *engineerr.Error
	if op.FillColor, verr = normalizeColorField(wire.FillColor, index); verr != nil {
		return nil, verr
	}
	if op.LineColor, verr = normalizeColorField(wire.LineColor, index); verr != nil {
		return nil, verr
	}
	if op.FontColor, verr = normalizeColorField(wire.FontColor, index); verr != nil {
		return nil, verr
	}
	if wire.Opacity != nil {
		v, err := style.NormalizeOpacity(*wire.Opacity)
		if err != nil {
			return nil, engineerr.At(engineerr.CodeValidationError, index, err.Error())
		}
		op.Opacity = &v
	}
	return op, nil
}

// normalizeColorField normalises an optional colour field, passing a null
// input through unchanged (spec.md §6: "null clears to default").
func normalizeColorField(raw *string, index int) (*string, *engineerr.Error) {
	if raw == nil {
		return nil, nil
	}
	normalized, err := style.NormalizeColor(*raw)
	if err != nil {
		return nil, engineerr.At(engineerr.CodeValidationError, index, err.Error())
	}
	return &normalized, nil
}

// StyleConnectionOp is the decoded "styleConnection" operation.
type StyleConnectionOp struct {
	ConnectionID string
	LineColor    *string
	LineWidth    *int
	FontColor    *string
	TextPosition *int
}

func decodeStyleConnection(raw json.RawMessage, index int) (*StyleConnectionOp, *engineerr.Error) {
	var wire struct {
		ConnectionID string  `json:"connectionId"`
		LineColor    *string `json:"lineColor,omitempty"`
		LineWidth    *int    `json:"lineWidth,omitempty"`
		FontColor    *string `json:"fontColor,omitempty"`
		TextPosition *int    `json:"textPosition,omitempty"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "styleConnection: "+err.Error())
	}
	if wire.ConnectionID == "" {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "styleConnection requires connectionId")
	}
	op := &StyleConnectionOp{ConnectionID: wire.ConnectionID}
	var verr *engineerr.Error
	if op.LineColor, verr = normalizeColorField(wire.LineColor, index); verr != nil {
		return nil, verr
	}
	if op.FontColor, verr = normalizeColorField(wire.FontColor, index); verr != nil {
		return nil, verr
	}
	if wire.LineWidth != nil {
		v, err := style.NormalizeLineWidth(*wire.LineWidth)
		if err != nil {
			return nil, engineerr.At(engineerr.CodeValidationError, index, err.Error())
		}
		op.LineWidth = &v
	}
	if wire.TextPosition != nil {
		v, err := style.NormalizeTextPosition(*wire.TextPosition)
		if err != nil {
			return nil, engineerr.At(engineerr.CodeValidationError, index, err.Error())
		}
		op.TextPosition = &v
	}
	return op, nil
}
