// Package query implements cross-reference search over the graph model:
// finding elements and relationships by kind, name, or incidence. It
// supplements spec.md §4.2's traversal primitives with the kind of lookup
// the validator's duplicate checks and operational diagnostics need, and
// composes internal/model's traversal primitives rather than re-walking the
// tree in a different way.
//
// Grounded on the teacher's internal/tools/query/query.go and search.go —
// reduced here from "query workflow entities by type/status/free text" to
// "find elements/relationships/visuals by kind, name, or incidence."
package query

import (
	"strings"

	"github.com/archimate-engine/batchmut/internal/model"
)

// ByKindAndName returns every Element whose normalised kind and name match
// exactly — the match key spec.md §4.4 uses for element duplicate
// detection.
func ByKindAndName(m *model.Model, kind, name string) []*model.Element {
	var out []*model.Element
	for _, e := range m.Elements {
		if e.Kind == kind && e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

// RelationshipMatch is the match key spec.md §4.4 uses for relationship
// duplicate detection: "(normalised-kind, source-ref, target-ref,
// access-kind?, strength?)".
type RelationshipMatch struct {
	Kind       string
	SourceID   string
	TargetID   string
	AccessType model.AccessType // "" means "don't compare"
	Strength   model.Strength   // "" means "don't compare"
}

// ByRelationshipMatch returns every Relationship matching key.
func ByRelationshipMatch(m *model.Model, key RelationshipMatch) []*model.Relationship {
	var out []*model.Relationship
	for _, r := range m.Relationships {
		if r.Kind != key.Kind || r.SourceID != key.SourceID || r.TargetID != key.TargetID {
			continue
		}
		if key.AccessType != "" && r.AccessType != key.AccessType {
			continue
		}
		if key.Strength != "" && r.Strength != key.Strength {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ByKind returns every Element of the given kind.
func ByKind(m *model.Model, kind string) []*model.Element {
	var out []*model.Element
	for _, e := range m.Elements {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// ByNameSubstring returns every Element whose name contains substr,
// case-insensitively.
func ByNameSubstring(m *model.Model, substr string) []*model.Element {
	needle := strings.ToLower(substr)
	var out []*model.Element
	for _, e := range m.Elements {
		if strings.Contains(strings.ToLower(e.Name), needle) {
			out = append(out, e)
		}
	}
	return out
}

// Incidence bundles everything directly attached to one element: its
// incident relationships, its visuals across every view, and the visual
// connections that represent those relationships.
type Incidence struct {
	Relationships []model.RelationshipHit
	Visuals       []ViewVisual
	Connections   []ViewConnection
}

// ViewVisual locates a visual hit within a specific view.
type ViewVisual struct {
	ViewID string
	Hit    model.VisualHit
}

// ViewConnection locates a connection hit within a specific view.
type ViewConnection struct {
	ViewID string
	Hit    model.ConnectionHit
}

// FindIncident gathers every relationship, visual, and visual connection
// touching elementID, in one call — used by the cascade planner
// (internal/engine).
func FindIncident(m *model.Model, elementID string) Incidence {
	inc := Incidence{
		Relationships: m.FindRelationshipsForElement(elementID),
	}
	for _, v := range m.FindAllViews() {
		for _, hit := range model.FindVisualsForElement(v, elementID) {
			inc.Visuals = append(inc.Visuals, ViewVisual{ViewID: v.ID, Hit: hit})
		}
	}
	for _, rh := range inc.Relationships {
		for _, v := range m.FindAllViews() {
			for _, hit := range model.FindConnectionsForRelationship(v, rh.Relationship.ID) {
				inc.Connections = append(inc.Connections, ViewConnection{ViewID: v.ID, Hit: hit})
			}
		}
	}
	return inc
}
