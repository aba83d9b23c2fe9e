package engine

import (
	"github.com/archimate-engine/batchmut/internal/model"
	"github.com/archimate-engine/batchmut/internal/query"
)

// cascadePlan is the closure a cascading deleteElement computes (spec.md
// §4.6 Pass 3 bullet 2): every relationship incident to the element, every
// visual connection representing one of those relationships or touching
// one of the element's own visuals, and every visual node for the element,
// across every view. Grounded on internal/query.FindIncident, which
// already walks all three axes — cascade just dedups and adds the
// "connections attached to the element's own visuals" step query.Incidence
// does not itself merge.
type cascadePlan struct {
	Relationships []*model.Relationship
	Connections   []cascadeConnection
	Visuals       []cascadeVisual
}

type cascadeConnection struct {
	ViewID string
	Conn   *model.VisualConnection
}

type cascadeVisual struct {
	ViewID    string
	Visual    *model.VisualNode
	Container *model.VisualNode // nil means the view root
}

func computeCascade(m *model.Model, elementID string) cascadePlan {
	inc := query.FindIncident(m, elementID)

	var plan cascadePlan
	plan.Relationships = make([]*model.Relationship, 0, len(inc.Relationships))
	for _, rh := range inc.Relationships {
		plan.Relationships = append(plan.Relationships, rh.Relationship)
	}

	seenConn := make(map[string]bool)
	addConn := func(viewID string, c *model.VisualConnection) {
		if seenConn[c.ID] {
			return
		}
		seenConn[c.ID] = true
		plan.Connections = append(plan.Connections, cascadeConnection{ViewID: viewID, Conn: c})
	}

	for _, vc := range inc.Connections {
		addConn(vc.ViewID, vc.Hit.Connection)
	}
	for _, vv := range inc.Visuals {
		plan.Visuals = append(plan.Visuals, cascadeVisual{ViewID: vv.ViewID, Visual: vv.Hit.Visual, Container: vv.Hit.Container})
		for _, c := range model.FindConnectionsForVisual(vv.Hit.Visual) {
			addConn(vv.ViewID, c)
		}
	}
	return plan
}
