package engine

import (
	"github.com/archimate-engine/batchmut/internal/engineerr"
	"github.com/archimate-engine/batchmut/internal/model"
	"github.com/archimate-engine/batchmut/internal/validation/ops"
)

// findConnectionAnywhere looks a connection id up across every committed
// view's visual tree, since styleConnection's op payload carries no viewId.
func (c *Compiler) findConnectionAnywhere(id string) *model.VisualConnection {
	for _, view := range c.ctx.Model.Views {
		for _, n := range allVisuals(view) {
			for _, conn := range n.SourceConnections {
				if conn.ID == id {
					return conn
				}
			}
		}
	}
	return nil
}

// styleField builds a set-scalar-feature sub-command for one optional style
// attribute, no-op when the incoming pointer is nil (field not present in
// the op payload — spec.md §4.5: absent fields are left untouched).
func styleField[T any](label string, get func() T, set func(T), newValue *T) SubCommand {
	if newValue == nil {
		return SubCommand{Label: label, Apply: func() error { return nil }, Revert: func() error { return nil }}
	}
	return SetScalarFeature(label, get, set, *newValue)
}

func (c *Compiler) lowerStyleViewObject(op *ops.StyleViewObjectOp, index int) ([]SubCommand, OpResult, *engineerr.Error) {
	visual := c.findVisualAnywhere(op.VisualID)
	if visual == nil {
		return nil, OpResult{}, engineerr.At(engineerr.CodeMissingReference, index, "styleViewObject: unknown visualId "+op.VisualID)
	}
	var cmds []SubCommand
	var updated []string
	if op.FillColor != nil {
		updated = append(updated, "fillColor")
	}
	if op.LineColor != nil {
		updated = append(updated, "lineColor")
	}
	if op.FontColor != nil {
		updated = append(updated, "fontColor")
	}
	if op.Font != nil {
		updated = append(updated, "font")
	}
	if op.Opacity != nil {
		updated = append(updated, "opacity")
	}
	cmds = append(cmds, styleField("set fill color", func() string { return visual.Style.Fill }, func(v string) { visual.Style.Fill = v }, op.FillColor))
	cmds = append(cmds, styleField("set line color", func() string { return visual.Style.Line }, func(v string) { visual.Style.Line = v }, op.LineColor))
	cmds = append(cmds, styleField("set font color", func() string { return visual.Style.FontColor }, func(v string) { visual.Style.FontColor = v }, op.FontColor))
	cmds = append(cmds, styleField("set font", func() string { return visual.Style.Font }, func(v string) { visual.Style.Font = v }, op.Font))
	cmds = append(cmds, styleField("set opacity", func() *int { return visual.Style.Opacity }, func(v *int) { visual.Style.Opacity = v }, ptrToPtr(op.Opacity)))
	result := newResult(index, "styleViewObject")
	result.Fields["visualId"] = visual.ID
	result.Fields["updated"] = updated
	return cmds, result, nil
}

// ptrToPtr lifts *int into **int so styleField's nil-means-untouched check
// can distinguish "field absent" from "field present with value nil".
func ptrToPtr(v *int) **int {
	if v == nil {
		return nil
	}
	p := v
	return &p
}

func (c *Compiler) lowerStyleConnection(op *ops.StyleConnectionOp, index int) ([]SubCommand, OpResult, *engineerr.Error) {
	conn := c.findConnectionAnywhere(op.ConnectionID)
	if conn == nil {
		return nil, OpResult{}, engineerr.At(engineerr.CodeMissingReference, index, "styleConnection: unknown connectionId "+op.ConnectionID)
	}
	var cmds []SubCommand
	var updated []string
	if op.LineColor != nil {
		updated = append(updated, "lineColor")
	}
	if op.FontColor != nil {
		updated = append(updated, "fontColor")
	}
	if op.LineWidth != nil {
		updated = append(updated, "lineWidth")
	}
	if op.TextPosition != nil {
		updated = append(updated, "textPosition")
	}
	cmds = append(cmds, styleField("set line color", func() string { return conn.Style.Line }, func(v string) { conn.Style.Line = v }, op.LineColor))
	cmds = append(cmds, styleField("set font color", func() string { return conn.Style.FontColor }, func(v string) { conn.Style.FontColor = v }, op.FontColor))
	cmds = append(cmds, styleField("set line width", func() *int { return conn.Style.LineWidth }, func(v *int) { conn.Style.LineWidth = v }, ptrToPtr(op.LineWidth)))
	cmds = append(cmds, styleField("set text position", func() *int { return conn.Style.TextPosition }, func(v *int) { conn.Style.TextPosition = v }, ptrToPtr(op.TextPosition)))
	result := newResult(index, "styleConnection")
	result.Fields["connectionId"] = conn.ID
	result.Fields["updated"] = updated
	return cmds, result, nil
}
