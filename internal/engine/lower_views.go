package engine

import (
	"github.com/archimate-engine/batchmut/internal/engineerr"
	"github.com/archimate-engine/batchmut/internal/model"
	"github.com/archimate-engine/batchmut/internal/validation/ops"
)

// viewsFolder resolves a view's container folder: an explicit ref if given,
// else the model's canonical FolderViews top-level folder.
func (c *Compiler) viewsFolder(ref string, index int) (*model.Folder, *engineerr.Error) {
	if ref != "" {
		f := c.ctx.ResolveFolderRef(ref)
		if f == nil {
			return nil, engineerr.At(engineerr.CodeMissingReference, index, "folder not found for ref "+ref)
		}
		return f, nil
	}
	f := c.ctx.Model.FindFolder(string(model.FolderViews))
	if f == nil {
		return nil, engineerr.At(engineerr.CodeMissingReference, index, "no views folder in model")
	}
	return f, nil
}

func (c *Compiler) lowerCreateView(op *ops.CreateViewOp, index int) ([]SubCommand, OpResult, *engineerr.Error) {
	folder, ferr := c.viewsFolder(op.FolderID, index)
	if ferr != nil {
		return nil, OpResult{}, ferr
	}
	v := c.host.Factory.NewView()
	v.Name = op.Name
	v.Documentation = op.Documentation
	v.Viewpoint = op.Viewpoint
	v.RouterKind = model.RouterBendpoint
	c.ctx.BindView(op.TempID, v)

	folderID := folder.ID
	cmd := AddToOrderedList("add view to folder",
		func() {
			c.ctx.Model.Views[v.ID] = v
			c.ctx.Model.FindFolder(folderID).AddElement(v.ID)
		},
		func() {
			c.ctx.Model.FindFolder(folderID).RemoveElement(v.ID)
			delete(c.ctx.Model.Views, v.ID)
		},
	)
	v.ParentFolder = folder.ID
	result := newResult(index, "createView")
	result.Fields["viewId"] = v.ID
	result.Fields["viewName"] = v.Name
	result.Fields["viewpoint"] = v.Viewpoint
	return []SubCommand{cmd}, result, nil
}

// lowerDuplicateView performs a deep structural copy of a view subtree with
// fresh ids for the view and every descendant node and connection (spec.md
// §4.6 Pass 2 bullet "duplicateView: performs a deep structural copy...").
func (c *Compiler) lowerDuplicateView(op *ops.DuplicateViewOp, index int) ([]SubCommand, OpResult, *engineerr.Error) {
	src := c.ctx.ResolveView(op.ViewID)
	if src == nil {
		return nil, OpResult{}, engineerr.At(engineerr.CodeMissingReference, index, "duplicateView: unknown viewId "+op.ViewID)
	}
	folder := c.ctx.Model.FindFolder(src.ParentFolder)
	name := op.Name
	if name == "" {
		name = src.Name + " (copy)"
	}

	clone := c.host.Factory.NewView()
	clone.Name = name
	clone.Documentation = src.Documentation
	clone.Viewpoint = src.Viewpoint
	clone.RouterKind = src.RouterKind
	cloneOf := make(map[string]*model.VisualNode)
	copied := false

	folderID := folder.ID
	cmd := AddToOrderedList("add duplicated view to folder",
		func() {
			// The copy is taken when the plan runs, so visuals and
			// connections that earlier operations of the same plan add to
			// src are carried over; a redo keeps the first copy.
			if !copied {
				clone.Children = deepCopyVisualTree(c.host, src.Children, cloneOf)
				reindexConnections(c.host, src.Children, cloneOf)
				copied = true
			}
			c.ctx.Model.Views[clone.ID] = clone
			c.ctx.Model.FindFolder(folderID).AddElement(clone.ID)
		},
		func() {
			c.ctx.Model.FindFolder(folderID).RemoveElement(clone.ID)
			delete(c.ctx.Model.Views, clone.ID)
		},
	)
	clone.ParentFolder = folder.ID
	result := newResult(index, "duplicateView")
	result.Fields["newViewId"] = clone.ID
	result.Fields["newViewName"] = clone.Name
	return []SubCommand{cmd}, result, nil
}

// deepCopyVisualTree recursively copies a visual subtree with fresh ids,
// preserving bounds, style, content and nesting. cloneOf records source
// node id → clone so reindexConnections can translate connection
// endpoints once every node in the subtree has been copied.
func deepCopyVisualTree(host Host, nodes []*model.VisualNode, cloneOf map[string]*model.VisualNode) []*model.VisualNode {
	out := make([]*model.VisualNode, 0, len(nodes))
	for _, n := range nodes {
		clone := host.Factory.NewVisualNode()
		clone.ConceptRef = n.ConceptRef
		clone.Bounds = n.Bounds
		clone.Style = n.Style
		clone.Content = n.Content
		clone.Name = n.Name
		clone.IsGroup = n.IsGroup
		clone.Children = deepCopyVisualTree(host, n.Children, cloneOf)
		cloneOf[n.ID] = clone
		out = append(out, clone)
	}
	return out
}

// reindexConnections rebuilds every source/target connection found in the
// original subtree onto the corresponding cloned nodes, with fresh
// connection ids (spec.md §4.6: "fresh IDs for the view and every
// descendant node and connection"). A connection whose endpoint lies
// outside the copied subtree is dropped rather than left dangling.
func reindexConnections(host Host, nodes []*model.VisualNode, cloneOf map[string]*model.VisualNode) {
	seen := make(map[string]*model.VisualConnection)
	var walk func(nodes []*model.VisualNode)
	walk = func(nodes []*model.VisualNode) {
		for _, n := range nodes {
			for _, conn := range n.SourceConnections {
				if _, ok := seen[conn.ID]; ok {
					continue
				}
				cloneSource, sourceOK := cloneOf[conn.SourceID]
				cloneTarget, targetOK := cloneOf[conn.TargetID]
				if !sourceOK || !targetOK {
					continue
				}
				clone := host.Factory.NewVisualConnection()
				clone.RelationshipRef = conn.RelationshipRef
				clone.SourceID = cloneSource.ID
				clone.TargetID = cloneTarget.ID
				clone.Style = conn.Style
				clone.Bendpoints = append([]model.Point(nil), conn.Bendpoints...)
				cloneSource.AddSourceConnection(clone)
				cloneTarget.AddTargetConnection(clone)
				seen[conn.ID] = clone
			}
			walk(n.Children)
		}
	}
	walk(nodes)
}

func (c *Compiler) lowerSetViewRouter(op *ops.SetViewRouterOp, index int) ([]SubCommand, OpResult, *engineerr.Error) {
	v := c.ctx.ResolveView(op.ViewID)
	if v == nil {
		return nil, OpResult{}, engineerr.At(engineerr.CodeMissingReference, index, "setViewRouter: unknown viewId "+op.ViewID)
	}
	cmd := SetScalarFeature("set router kind", func() model.RouterKind { return v.RouterKind }, func(k model.RouterKind) { v.RouterKind = k }, op.RouterKind)
	result := newResult(index, "setViewRouter")
	result.Fields["viewId"] = v.ID
	return []SubCommand{cmd}, result, nil
}

// lowerLayoutView validates and passes layout parameters through; actual
// node positioning is a host/renderer concern (spec.md §4.6: "nodesPositioned,
// edgesRouted are reported counts, not computed geometry").
func (c *Compiler) lowerLayoutView(op *ops.LayoutViewOp, index int) ([]SubCommand, OpResult, *engineerr.Error) {
	v := c.ctx.ResolveView(op.ViewID)
	if v == nil {
		return nil, OpResult{}, engineerr.At(engineerr.CodeMissingReference, index, "layoutView: unknown viewId "+op.ViewID)
	}
	result := newResult(index, "layoutView")
	result.Fields["viewId"] = v.ID
	result.Fields["nodesPositioned"] = len(allVisuals(v))
	result.Fields["edgesRouted"] = countConnections(v)
	// Recount when the plan runs, so visuals and connections that earlier
	// operations of the same plan add to v are included.
	cmd := SubCommand{
		Label: "report layout counts",
		Apply: func() error {
			result.Fields["nodesPositioned"] = len(allVisuals(v))
			result.Fields["edgesRouted"] = countConnections(v)
			return nil
		},
		Revert: func() error { return nil },
	}
	return []SubCommand{cmd}, result, nil
}

func countConnections(v *model.View) int {
	n := 0
	for _, node := range allVisuals(v) {
		n += len(node.SourceConnections)
	}
	return n
}
