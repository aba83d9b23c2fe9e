package engine

import (
	"github.com/archimate-engine/batchmut/internal/engineerr"
	"github.com/archimate-engine/batchmut/internal/model"
	"github.com/archimate-engine/batchmut/internal/validation/ops"
)

// removeConnectionSubCommand builds the dual sub-command that removes conn
// from both its source's out-list and its target's in-list within view
// (spec.md §4.6 Pass 3 bullet 1, and the inverse of addConnectionToView's
// install). Revert re-appends rather than re-inserting at the original
// index — VisualNode carries no index-preserving insert primitive for
// connection lists, only for Children (see internal/model/view.go).
func (c *Compiler) removeConnectionSubCommand(viewID string, conn *model.VisualConnection) SubCommand {
	view := c.ctx.Model.FindView(viewID)
	source := model.FindVisual(view, conn.SourceID)
	target := model.FindVisual(view, conn.TargetID)
	return SubCommand{
		Label: "remove connection from view",
		Apply: func() error {
			if source != nil {
				source.RemoveSourceConnection(conn.ID)
			}
			if target != nil {
				target.RemoveTargetConnection(conn.ID)
			}
			return nil
		},
		Revert: func() error {
			if source != nil {
				source.AddSourceConnection(conn)
			}
			if target != nil {
				target.AddTargetConnection(conn)
			}
			return nil
		},
	}
}

func (c *Compiler) lowerDeleteConnectionFromView(op *ops.DeleteConnectionFromViewOp, index int) ([]SubCommand, OpResult, *engineerr.Error) {
	view := c.ctx.Model.FindView(op.ViewID)
	if view == nil {
		return nil, OpResult{}, engineerr.At(engineerr.CodeMissingReference, index, "deleteConnectionFromView: unknown viewId "+op.ViewID)
	}
	var conn *model.VisualConnection
	for _, n := range allVisuals(view) {
		for _, c := range n.SourceConnections {
			if c.ID == op.ConnectionID {
				conn = c
			}
		}
	}
	if conn == nil {
		return nil, OpResult{}, engineerr.At(engineerr.CodeMissingReference, index, "deleteConnectionFromView: unknown connectionId "+op.ConnectionID)
	}
	result := newResult(index, "deleteConnectionFromView")
	result.Fields["connectionId"] = conn.ID
	return []SubCommand{c.removeConnectionSubCommand(op.ViewID, conn)}, result, nil
}

// allVisuals flattens view's visual tree depth-first.
func allVisuals(view *model.View) []*model.VisualNode {
	var out []*model.VisualNode
	var walk func(nodes []*model.VisualNode)
	walk = func(nodes []*model.VisualNode) {
		for _, n := range nodes {
			out = append(out, n)
			walk(n.Children)
		}
	}
	walk(view.Children)
	return out
}

func (c *Compiler) lowerDeleteElement(op *ops.DeleteElementOp, index int) ([]SubCommand, OpResult, *engineerr.Error) {
	e := c.ctx.Model.FindElement(op.ID)
	if e == nil {
		return nil, OpResult{}, engineerr.At(engineerr.CodeMissingReference, index, "deleteElement: unknown id "+op.ID)
	}
	result := newResult(index, "deleteElement")
	result.Fields["id"] = e.ID
	result.Fields["name"] = e.Name
	result.Fields["cascade"] = op.Cascade

	var cmds []SubCommand
	if op.Cascade {
		plan := computeCascade(c.ctx.Model, e.ID)
		for _, cc := range plan.Connections {
			cmds = append(cmds, c.removeConnectionSubCommand(cc.ViewID, cc.Conn))
		}
		for _, cv := range plan.Visuals {
			cmds = append(cmds, c.removeVisualSubCommand(cv))
		}
		for _, rel := range plan.Relationships {
			cmds = append(cmds, c.removeRelationshipSubCommand(rel, rel.ParentFolder))
		}
		result.Fields["cascadedRelationships"] = len(plan.Relationships)
		result.Fields["cascadedVisuals"] = len(plan.Visuals)
		result.Fields["cascadedConnections"] = len(plan.Connections)
	}
	cmds = append(cmds, c.removeElementSubCommand(e, e.ParentFolder))
	return cmds, result, nil
}

// removeVisualSubCommand removes a visual node from its container (the view
// root or a nesting parent visual), restoring it at the same index on
// revert.
func (c *Compiler) removeVisualSubCommand(cv cascadeVisual) SubCommand {
	view := c.ctx.Model.FindView(cv.ViewID)
	var idx int
	return SubCommand{
		Label: "remove visual from view",
		Apply: func() error {
			if cv.Container != nil {
				idx = cv.Container.RemoveChild(cv.Visual.ID)
			} else {
				idx = view.RemoveChild(cv.Visual.ID)
			}
			return nil
		},
		Revert: func() error {
			if cv.Container != nil {
				cv.Container.InsertChildAt(cv.Visual, idx)
			} else {
				view.InsertChildAt(cv.Visual, idx)
			}
			return nil
		},
	}
}

// removeFromParentFolderSubCommand removes entityID from the folder
// identified by folderID, reinserting at the same index on revert. This
// alone leaves entityID resolvable by id (spec.md §4.1's flat maps are
// untouched) — callers that must leave no trace behind use
// removeElementSubCommand / removeRelationshipSubCommand instead.
func (c *Compiler) removeFromParentFolderSubCommand(entityID, folderID string) SubCommand {
	var idx int
	return SubCommand{
		Label: "remove entity from folder",
		Apply: func() error {
			idx = c.ctx.Model.FindFolder(folderID).RemoveElement(entityID)
			return nil
		},
		Revert: func() error {
			c.ctx.Model.FindFolder(folderID).InsertElementAt(entityID, idx)
			return nil
		},
	}
}

// removeElementSubCommand removes e from its parent folder and from the
// model's flat element map, the mirror image of addElementToFolder — so
// that a deleted element leaves no trace (spec.md §7's create-then-delete
// invariant) and reverting a delete restores both sides symmetrically.
func (c *Compiler) removeElementSubCommand(e *model.Element, folderID string) SubCommand {
	var idx int
	return SubCommand{
		Label: "remove element from model",
		Apply: func() error {
			idx = c.ctx.Model.FindFolder(folderID).RemoveElement(e.ID)
			delete(c.ctx.Model.Elements, e.ID)
			return nil
		},
		Revert: func() error {
			c.ctx.Model.Elements[e.ID] = e
			c.ctx.Model.FindFolder(folderID).InsertElementAt(e.ID, idx)
			return nil
		},
	}
}

// removeRelationshipSubCommand is removeElementSubCommand's counterpart
// for relationships.
func (c *Compiler) removeRelationshipSubCommand(r *model.Relationship, folderID string) SubCommand {
	var idx int
	return SubCommand{
		Label: "remove relationship from model",
		Apply: func() error {
			idx = c.ctx.Model.FindFolder(folderID).RemoveElement(r.ID)
			delete(c.ctx.Model.Relationships, r.ID)
			return nil
		},
		Revert: func() error {
			c.ctx.Model.Relationships[r.ID] = r
			c.ctx.Model.FindFolder(folderID).InsertElementAt(r.ID, idx)
			return nil
		},
	}
}

func (c *Compiler) lowerDeleteRelationship(op *ops.DeleteRelationshipOp, index int) ([]SubCommand, OpResult, *engineerr.Error) {
	r := c.ctx.Model.FindRelationship(op.ID)
	if r == nil {
		return nil, OpResult{}, engineerr.At(engineerr.CodeMissingReference, index, "deleteRelationship: unknown id "+op.ID)
	}
	var cmds []SubCommand
	for _, v := range c.ctx.Model.FindAllViews() {
		for _, hit := range model.FindConnectionsForRelationship(v, r.ID) {
			cmds = append(cmds, c.removeConnectionSubCommand(v.ID, hit.Connection))
		}
	}
	cmds = append(cmds, c.removeRelationshipSubCommand(r, r.ParentFolder))
	result := newResult(index, "deleteRelationship")
	result.Fields["id"] = r.ID
	result.Fields["name"] = r.Name
	return cmds, result, nil
}

func (c *Compiler) lowerDeleteView(op *ops.DeleteViewOp, index int) ([]SubCommand, OpResult, *engineerr.Error) {
	view := c.ctx.Model.FindView(op.ViewID)
	if view == nil {
		return nil, OpResult{}, engineerr.At(engineerr.CodeMissingReference, index, "deleteView: unknown viewId "+op.ViewID)
	}
	folderCmd := c.removeFromParentFolderSubCommand(view.ID, view.ParentFolder)
	cmd := SubCommand{
		Label: "delete view",
		Apply: func() error {
			if err := folderCmd.Apply(); err != nil {
				return err
			}
			delete(c.ctx.Model.Views, view.ID)
			return nil
		},
		Revert: func() error {
			c.ctx.Model.Views[view.ID] = view
			return folderCmd.Revert()
		},
	}
	result := newResult(index, "deleteView")
	result.Fields["viewId"] = view.ID
	result.Fields["viewName"] = view.Name
	return []SubCommand{cmd}, result, nil
}
