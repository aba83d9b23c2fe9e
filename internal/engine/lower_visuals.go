package engine

import (
	"github.com/archimate-engine/batchmut/internal/engineerr"
	"github.com/archimate-engine/batchmut/internal/model"
	"github.com/archimate-engine/batchmut/internal/validation/ops"
)

// visualContainer resolves the container a new or re-parented visual should
// be installed under: an explicit parentVisualId, or the view root.
func (c *Compiler) visualContainer(viewID, parentVisual string, index int) (*model.View, *model.VisualNode, *engineerr.Error) {
	view := c.ctx.ResolveView(viewID)
	if view == nil {
		return nil, nil, engineerr.At(engineerr.CodeMissingReference, index, "unknown viewId "+viewID)
	}
	if parentVisual == "" {
		return view, nil, nil
	}
	parent := c.ctx.ResolveVisual(viewID, parentVisual)
	if parent == nil {
		return nil, nil, engineerr.At(engineerr.CodeMissingReference, index, "unknown parentVisualId "+parentVisual)
	}
	if !parent.Nestable() {
		return nil, nil, engineerr.At(engineerr.CodeUnsupportedContainer, index, "visual "+parentVisual+" cannot contain children")
	}
	return view, parent, nil
}

// installVisual builds the add-to-ordered-list sub-command that inserts v
// into container (a visual node, or the view root when container is nil).
func installVisual(view *model.View, container *model.VisualNode, v *model.VisualNode) SubCommand {
	return AddToOrderedList("add visual to view",
		func() {
			if container != nil {
				container.AddChild(v)
			} else {
				view.AddChild(v)
			}
		},
		func() {
			if container != nil {
				container.RemoveChild(v.ID)
			} else {
				view.RemoveChild(v.ID)
			}
		},
	)
}

// lowerAddToView is spec.md §4.6 Pass 2's addToView: resolve the concept
// element, default bounds to (100,100,120,55), create a visual, install it
// into the resolved container, and index it by (view_id, element_id) for
// same-plan addConnectionToView lookups.
func (c *Compiler) lowerAddToView(op *ops.AddToViewOp, index int) ([]SubCommand, OpResult, *engineerr.Error) {
	element := c.ctx.ResolveElement(op.ElementID)
	if element == nil {
		return nil, OpResult{}, engineerr.At(engineerr.CodeMissingReference, index, "addToView: unknown elementId "+op.ElementID)
	}
	view, container, ferr := c.visualContainer(op.ViewID, op.ParentVisual, index)
	if ferr != nil {
		return nil, OpResult{}, ferr
	}

	v := c.host.Factory.NewVisualNode()
	v.ConceptRef = element.ID
	v.Bounds = model.Bounds{X: op.X, Y: op.Y, W: op.W, H: op.H}
	c.ctx.BindVisual(op.TempID, v)
	c.ctx.IndexViewElement(op.ViewID, element.ID, v)

	cmd := installVisual(view, container, v)
	result := newResult(index, "addToView")
	result.Fields["visualId"] = v.ID
	result.Fields["viewId"] = view.ID
	result.Fields["elementId"] = element.ID
	return []SubCommand{cmd}, result, nil
}

// lowerNestInView reparents an existing visual under a new container
// (spec.md §4.6 Pass 2's nestInView), rejecting moves that would create a
// containment cycle.
func (c *Compiler) lowerNestInView(op *ops.NestInViewOp, index int) ([]SubCommand, OpResult, *engineerr.Error) {
	view := c.ctx.ResolveView(op.ViewID)
	if view == nil {
		return nil, OpResult{}, engineerr.At(engineerr.CodeMissingReference, index, "nestInView: unknown viewId "+op.ViewID)
	}
	visual := c.ctx.ResolveVisual(op.ViewID, op.VisualID)
	if visual == nil {
		return nil, OpResult{}, engineerr.At(engineerr.CodeMissingReference, index, "nestInView: unknown visualId "+op.VisualID)
	}
	newParent := c.ctx.ResolveVisual(op.ViewID, op.ParentVisual)
	if newParent == nil {
		return nil, OpResult{}, engineerr.At(engineerr.CodeMissingReference, index, "nestInView: unknown parentVisualId "+op.ParentVisual)
	}
	if !newParent.Nestable() {
		return nil, OpResult{}, engineerr.At(engineerr.CodeUnsupportedContainer, index, "visual "+op.ParentVisual+" cannot contain children")
	}
	if model.WouldCreateCycle(visual, newParent) {
		return nil, OpResult{}, engineerr.At(engineerr.CodeUnsupportedContainer, index, "nestInView would create a containment cycle")
	}

	oldParent := findVisualParent(view, visual.ID)
	newBounds := visual.Bounds
	if op.X != nil {
		newBounds.X = *op.X
	}
	if op.Y != nil {
		newBounds.Y = *op.Y
	}
	oldBounds := visual.Bounds

	cmd := SubCommand{
		Label: "reparent visual",
		Apply: func() error {
			removeVisualFromParent(view, oldParent, visual.ID)
			newParent.AddChild(visual)
			visual.Bounds = newBounds
			return nil
		},
		Revert: func() error {
			newParent.RemoveChild(visual.ID)
			insertVisualIntoParent(view, oldParent, visual)
			visual.Bounds = oldBounds
			return nil
		},
	}
	result := newResult(index, "nestInView")
	result.Fields["visualId"] = visual.ID
	result.Fields["parentVisualId"] = newParent.ID
	return []SubCommand{cmd}, result, nil
}

// findVisualParent returns the visual node that directly contains childID,
// or nil if childID is a direct child of the view root.
func findVisualParent(view *model.View, childID string) *model.VisualNode {
	var walk func(nodes []*model.VisualNode, parent *model.VisualNode) *model.VisualNode
	walk = func(nodes []*model.VisualNode, parent *model.VisualNode) *model.VisualNode {
		for _, n := range nodes {
			if n.ID == childID {
				return parent
			}
			if found := walk(n.Children, n); found != nil || containsID(n.Children, childID) {
				return found
			}
		}
		return nil
	}
	if found := walk(view.Children, nil); found != nil || containsID(view.Children, childID) {
		return found
	}
	return nil
}

func containsID(nodes []*model.VisualNode, id string) bool {
	for _, n := range nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}

func removeVisualFromParent(view *model.View, parent *model.VisualNode, childID string) {
	if parent != nil {
		parent.RemoveChild(childID)
		return
	}
	view.RemoveChild(childID)
}

func insertVisualIntoParent(view *model.View, parent *model.VisualNode, child *model.VisualNode) {
	if parent != nil {
		parent.AddChild(child)
		return
	}
	view.AddChild(child)
}

// lowerMoveViewObject applies a partial bounds update (spec.md §4.6 Pass 2's
// moveViewObject: "any of x, y, width, height present; unset fields keep
// their current value").
func (c *Compiler) lowerMoveViewObject(op *ops.MoveViewObjectOp, index int) ([]SubCommand, OpResult, *engineerr.Error) {
	visual := c.findVisualAnywhere(op.VisualID)
	if visual == nil {
		return nil, OpResult{}, engineerr.At(engineerr.CodeMissingReference, index, "moveViewObject: unknown viewObjectId "+op.VisualID)
	}
	newBounds := visual.Bounds
	if op.X != nil {
		newBounds.X = *op.X
	}
	if op.Y != nil {
		newBounds.Y = *op.Y
	}
	if op.W != nil {
		newBounds.W = *op.W
	}
	if op.H != nil {
		newBounds.H = *op.H
	}
	cmd := SetBounds("move view object", visual, newBounds)
	result := newResult(index, "moveViewObject")
	result.Fields["visualId"] = visual.ID
	result.Fields["x"] = newBounds.X
	result.Fields["y"] = newBounds.Y
	result.Fields["width"] = newBounds.W
	result.Fields["height"] = newBounds.H
	return []SubCommand{cmd}, result, nil
}

// findVisualAnywhere looks a visual id up among this plan's temp-id visuals,
// then across every committed view, since
// moveViewObject's op payload carries no viewId (spec.md §4.5).
func (c *Compiler) findVisualAnywhere(id string) *model.VisualNode {
	if v, ok := c.ctx.tempVisuals[id]; ok {
		return v
	}
	for _, view := range c.ctx.Model.Views {
		if v := model.FindVisual(view, id); v != nil {
			return v
		}
	}
	return nil
}

func (c *Compiler) lowerCreateNote(op *ops.CreateNoteOp, index int) ([]SubCommand, OpResult, *engineerr.Error) {
	view, container, ferr := c.visualContainer(op.ViewID, "", index)
	if ferr != nil {
		return nil, OpResult{}, ferr
	}
	v := c.host.Factory.NewVisualNode()
	v.Content = op.Content
	v.Bounds = model.Bounds{X: op.X, Y: op.Y, W: op.W, H: op.H}
	c.ctx.BindVisual(op.TempID, v)

	cmd := installVisual(view, container, v)
	result := newResult(index, "createNote")
	result.Fields["noteId"] = v.ID
	result.Fields["viewId"] = view.ID
	return []SubCommand{cmd}, result, nil
}

func (c *Compiler) lowerCreateGroup(op *ops.CreateGroupOp, index int) ([]SubCommand, OpResult, *engineerr.Error) {
	view, container, ferr := c.visualContainer(op.ViewID, "", index)
	if ferr != nil {
		return nil, OpResult{}, ferr
	}
	v := c.host.Factory.NewVisualNode()
	v.Name = op.Name
	v.IsGroup = true
	v.Bounds = model.Bounds{X: op.X, Y: op.Y, W: op.W, H: op.H}
	c.ctx.BindVisual(op.TempID, v)

	cmd := installVisual(view, container, v)
	result := newResult(index, "createGroup")
	result.Fields["groupId"] = v.ID
	result.Fields["viewId"] = view.ID
	result.Fields["name"] = v.Name
	return []SubCommand{cmd}, result, nil
}
