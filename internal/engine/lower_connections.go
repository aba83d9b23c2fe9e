package engine

import (
	"github.com/archimate-engine/batchmut/internal/engineerr"
	"github.com/archimate-engine/batchmut/internal/model"
	"github.com/archimate-engine/batchmut/internal/validation/ops"
)

// resolveConnectionEndpoint resolves a visual for one endpoint of
// addConnectionToView (spec.md §4.6 Pass 2): an explicit visual id if given,
// else the same-plan (view,element) index, else a committed-view traversal
// by concept id. elementID is the endpoint element the caller took from the
// endpoint cache or from the committed relationship.
// autoResolve gates the broadest fallback step, (d) traversal of committed
// view children — the one the wire field autoResolveVisuals names. The
// returned bool reports whether that fallback is what produced the hit, so
// the caller can surface it as the result's "autoResolved" flag.
func (c *Compiler) resolveConnectionEndpoint(viewID, explicitVisualID, elementID string, autoResolve bool) (*model.VisualNode, bool) {
	if explicitVisualID != "" {
		return c.ctx.ResolveVisual(viewID, explicitVisualID), false
	}
	if v, ok := c.ctx.VisualForViewElement(viewID, elementID); ok {
		return v, false
	}
	if !autoResolve {
		return nil, false
	}
	view := c.ctx.ResolveView(viewID)
	if view == nil {
		return nil, false
	}
	return model.FindVisualForConceptInView(view, elementID), true
}

// lowerAddConnectionToView is spec.md §4.6 Pass 2's addConnectionToView:
// resolve both endpoint visuals, validate direction against the
// relationship's resolved source/target (auto-swapping when asked), and
// install the connection on both the source's out-list and the target's
// in-list.
func (c *Compiler) lowerAddConnectionToView(op *ops.AddConnectionToViewOp, index int) ([]SubCommand, OpResult, *engineerr.Error) {
	view := c.ctx.ResolveView(op.ViewID)
	if view == nil {
		return nil, OpResult{}, engineerr.At(engineerr.CodeMissingReference, index, "addConnectionToView: unknown viewId "+op.ViewID)
	}

	ep, ok := c.ctx.Endpoints(op.RelationshipID)
	if !ok {
		rel := c.ctx.Model.FindRelationship(op.RelationshipID)
		if rel == nil {
			return nil, OpResult{}, engineerr.At(engineerr.CodeMissingReference, index, "addConnectionToView: unknown relationshipId "+op.RelationshipID)
		}
		ep = endpoints{Source: c.ctx.Model.FindElement(rel.SourceID), Target: c.ctx.Model.FindElement(rel.TargetID)}
	}
	if ep.Source == nil || ep.Target == nil {
		return nil, OpResult{}, engineerr.At(engineerr.CodeMissingReference, index, "addConnectionToView: relationship endpoints not resolved")
	}
	relID := op.RelationshipID
	if r, ok := c.ctx.tempRelationships[op.RelationshipID]; ok {
		relID = r.ID
	}

	sourceVisual, sourceAuto := c.resolveConnectionEndpoint(op.ViewID, op.SourceVisualID, ep.Source.ID, op.AutoResolveVisuals)
	targetVisual, targetAuto := c.resolveConnectionEndpoint(op.ViewID, op.TargetVisualID, ep.Target.ID, op.AutoResolveVisuals)
	if sourceVisual == nil || targetVisual == nil {
		// spec.md §7: the source/target element is absent from the view —
		// this op is skipped, not fatal; the rest of the plan still runs.
		result := newResult(index, "addConnectionToView")
		result.Skipped = true
		result.Fields["skipped"] = true
		return nil, result, nil
	}
	autoResolved := sourceAuto || targetAuto

	if op.SkipExistingConnections {
		for _, hit := range model.FindConnectionsForRelationship(view, relID) {
			if hit.Connection.SourceID == sourceVisual.ID && hit.Connection.TargetID == targetVisual.ID {
				result := newResult(index, "addConnectionToView")
				result.Skipped = true
				result.Fields["skipped"] = true
				result.Fields["connectionId"] = hit.Connection.ID
				return nil, result, nil
			}
		}
	}

	// Direction validation: the connection's source visual must back the
	// relationship's source element, unless auto-swap is requested.
	if sourceVisual.ConceptRef != ep.Source.ID || targetVisual.ConceptRef != ep.Target.ID {
		if op.AutoSwapDirection && sourceVisual.ConceptRef == ep.Target.ID && targetVisual.ConceptRef == ep.Source.ID {
			sourceVisual, targetVisual = targetVisual, sourceVisual
			autoResolved = true
		} else {
			return nil, OpResult{}, engineerr.At(engineerr.CodeDirectionMismatch, index,
				"addConnectionToView: source/target visuals do not match relationship direction")
		}
	}

	conn := c.host.Factory.NewVisualConnection()
	conn.RelationshipRef = relID
	conn.SourceID = sourceVisual.ID
	conn.TargetID = targetVisual.ID

	cmd := AddToOrderedList("add connection to view",
		func() {
			sourceVisual.AddSourceConnection(conn)
			targetVisual.AddTargetConnection(conn)
		},
		func() {
			sourceVisual.RemoveSourceConnection(conn.ID)
			targetVisual.RemoveTargetConnection(conn.ID)
		},
	)
	result := newResult(index, "addConnectionToView")
	result.Fields["connectionId"] = conn.ID
	result.Fields["viewId"] = view.ID
	result.Fields["relationshipId"] = relID
	if autoResolved {
		result.Fields["autoResolved"] = true
	}
	return []SubCommand{cmd}, result, nil
}
