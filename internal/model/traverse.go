package model

// This file implements the traversal primitives of spec.md §4.2. All of
// them are synchronous, depth-first, read-only walks; none mutate the
// model. Grounded on internal/emergent/idmap.go's dual-indexing helpers,
// generalised here from "index by id or canonical id" to "walk the folder
// or visual tree and collect matches."

// FindElement returns the Element with id from the flat element map, or
// nil if not found. It does not walk the folder tree, so an element that
// no folder reaches is still returned. Relationships are not returned by
// FindElement — use FindRelationship.
func (m *Model) FindElement(id string) *Element {
	return m.Elements[id]
}

// FindRelationship returns the Relationship with id, or nil.
func (m *Model) FindRelationship(id string) *Relationship {
	return m.Relationships[id]
}

// FindView returns the View with id, or nil.
func (m *Model) FindView(id string) *View {
	return m.Views[id]
}

// FindFolder tries id, then case-insensitive name, then kind token — same
// three keys as ResolveFolder but without temp-ids or a default fallback,
// matching spec.md §4.2's read-only find_folder primitive.
func (m *Model) FindFolder(idOrNameOrKind string) *Folder {
	if f, ok := m.Folders[idOrNameOrKind]; ok {
		return f
	}
	if f := m.findFolderByName(idOrNameOrKind); f != nil {
		return f
	}
	return m.findFolderByKind(FolderKind(idOrNameOrKind))
}

// FindAllViews returns every View in the model (spec.md §4.2
// find_all_views). Order follows map iteration and is not stable; callers
// that need deterministic order should sort by View.ID.
func (m *Model) FindAllViews() []*View {
	out := make([]*View, 0, len(m.Views))
	for _, v := range m.Views {
		out = append(out, v)
	}
	return out
}

// RelationshipHit pairs a Relationship with the Folder that contains it.
type RelationshipHit struct {
	Relationship *Relationship
	ParentFolder *Folder
}

// FindRelationshipsForElement scans every relationship in the model for one
// whose source or target equals elementID (spec.md §4.2
// find_relationships_for_element).
func (m *Model) FindRelationshipsForElement(elementID string) []RelationshipHit {
	var out []RelationshipHit
	for _, r := range m.Relationships {
		if r.SourceID == elementID || r.TargetID == elementID {
			out = append(out, RelationshipHit{Relationship: r, ParentFolder: m.Folders[r.ParentFolder]})
		}
	}
	return out
}

// VisualHit pairs a VisualNode with its immediate container (the View root
// represented as a nil *VisualNode, or the nesting VisualNode).
type VisualHit struct {
	Visual    *VisualNode
	Container *VisualNode // nil means the view root
}

// FindVisualsForElement walks view's visual tree depth-first and returns
// every VisualNode whose ConceptRef equals elementID, paired with its
// immediate container (spec.md §4.2 find_visuals_for_element).
func FindVisualsForElement(view *View, elementID string) []VisualHit {
	var out []VisualHit
	var walk func(nodes []*VisualNode, container *VisualNode)
	walk = func(nodes []*VisualNode, container *VisualNode) {
		for _, n := range nodes {
			if n.ConceptRef == elementID {
				out = append(out, VisualHit{Visual: n, Container: container})
			}
			walk(n.Children, n)
		}
	}
	walk(view.Children, nil)
	return out
}

// ConnectionHit pairs a VisualConnection with the visuals it joins.
type ConnectionHit struct {
	Connection *VisualConnection
	Source     *VisualNode
	Target     *VisualNode
}

// FindConnectionsForRelationship walks view's visual tree depth-first and
// returns every source-connection entry whose RelationshipRef equals relID
// (spec.md §4.2 find_connections_for_relationship). Connections are always
// installed in their source node's SourceConnections list by the
// sub-command factory (see internal/engine), so scanning source-out-lists
// alone is sufficient — this resolves the teacher-ambiguity noted in
// spec.md §9 by construction.
func FindConnectionsForRelationship(view *View, relID string) []ConnectionHit {
	bySource := visualsByID(view)
	var out []ConnectionHit
	var walk func(nodes []*VisualNode)
	walk = func(nodes []*VisualNode) {
		for _, n := range nodes {
			for _, c := range n.SourceConnections {
				if c.RelationshipRef == relID {
					out = append(out, ConnectionHit{
						Connection: c,
						Source:     n,
						Target:     bySource[c.TargetID],
					})
				}
			}
			walk(n.Children)
		}
	}
	walk(view.Children)
	return out
}

// FindConnectionsForVisual concatenates visual's own source- and
// target-connection lists (spec.md §4.2 find_connections_for_visual).
func FindConnectionsForVisual(visual *VisualNode) []*VisualConnection {
	out := make([]*VisualConnection, 0, len(visual.SourceConnections)+len(visual.TargetConnections))
	out = append(out, visual.SourceConnections...)
	out = append(out, visual.TargetConnections...)
	return out
}

// FindVisualForConceptInView returns the first visual in view backed by
// elementID, or nil (spec.md §4.2 find_visual_for_concept_in_view — used by
// addConnectionToView's committed-view traversal fallback).
func FindVisualForConceptInView(view *View, elementID string) *VisualNode {
	hits := FindVisualsForElement(view, elementID)
	if len(hits) == 0 {
		return nil
	}
	return hits[0].Visual
}

// FindVisual walks view's visual tree and returns the node with id, or nil.
func FindVisual(view *View, id string) *VisualNode {
	var found *VisualNode
	var walk func(nodes []*VisualNode)
	walk = func(nodes []*VisualNode) {
		for _, n := range nodes {
			if found != nil {
				return
			}
			if n.ID == id {
				found = n
				return
			}
			walk(n.Children)
		}
	}
	walk(view.Children)
	return found
}

// visualsByID indexes every visual in a view by id for O(1) endpoint
// lookups while walking connections.
func visualsByID(view *View) map[string]*VisualNode {
	idx := make(map[string]*VisualNode)
	var walk func(nodes []*VisualNode)
	walk = func(nodes []*VisualNode) {
		for _, n := range nodes {
			idx[n.ID] = n
			walk(n.Children)
		}
	}
	walk(view.Children)
	return idx
}

// WouldCreateCycle reports whether nesting candidate under newParent would
// make candidate contain itself transitively — true when newParent is
// candidate itself or lies anywhere in candidate's existing subtree (spec.md
// §8 boundary behaviour: "circular nesting (nest visual into itself)
// rejected").
func WouldCreateCycle(candidate *VisualNode, newParent *VisualNode) bool {
	if candidate == newParent {
		return true
	}
	var walk func(n *VisualNode) bool
	walk = func(n *VisualNode) bool {
		if n == newParent {
			return true
		}
		for _, c := range n.Children {
			if walk(c) {
				return true
			}
		}
		return false
	}
	return walk(candidate)
}
