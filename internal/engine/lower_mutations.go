package engine

import (
	"github.com/archimate-engine/batchmut/internal/engineerr"
	"github.com/archimate-engine/batchmut/internal/model"
	"github.com/archimate-engine/batchmut/internal/validation/ops"
)

// mergeProperties applies each entry of updates onto existing by key,
// updating in place or appending (spec.md §4.6 Pass 2 bullet 2: "find
// existing property by key ... and update, else create a new property and
// append").
func mergeProperties(existing, updates model.Properties) model.Properties {
	merged := existing.Clone()
	for _, u := range updates {
		merged, _ = merged.Set(u.Key, u.Value)
	}
	return merged
}

func (c *Compiler) resolveEntityKind(id string) (elem *model.Element, rel *model.Relationship) {
	if e := c.ctx.ResolveElement(id); e != nil {
		return e, nil
	}
	if r := c.ctx.Model.FindRelationship(id); r != nil {
		return nil, r
	}
	return nil, nil
}

func (c *Compiler) lowerSetProperty(op *ops.SetPropertyOp, index int) ([]SubCommand, OpResult, *engineerr.Error) {
	e, r := c.resolveEntityKind(op.ID)
	result := newResult(index, "setProperty")
	result.Fields["key"] = op.Key
	result.Fields["value"] = op.Value
	switch {
	case e != nil:
		merged := mergeProperties(e.Properties, model.Properties{{Key: op.Key, Value: op.Value}})
		cmd := SetScalarFeature("set property", func() model.Properties { return e.Properties }, func(v model.Properties) { e.Properties = v }, merged)
		result.Fields["id"] = e.ID
		return []SubCommand{cmd}, result, nil
	case r != nil:
		merged := mergeProperties(r.Properties, model.Properties{{Key: op.Key, Value: op.Value}})
		cmd := SetScalarFeature("set property", func() model.Properties { return r.Properties }, func(v model.Properties) { r.Properties = v }, merged)
		result.Fields["id"] = r.ID
		return []SubCommand{cmd}, result, nil
	}
	return nil, OpResult{}, engineerr.At(engineerr.CodeMissingReference, index, "setProperty: unknown id "+op.ID)
}

func (c *Compiler) lowerUpdateElement(op *ops.UpdateElementOp, index int) ([]SubCommand, OpResult, *engineerr.Error) {
	e := c.ctx.ResolveElement(op.ID)
	if e == nil {
		return nil, OpResult{}, engineerr.At(engineerr.CodeMissingReference, index, "updateElement: unknown id "+op.ID)
	}
	var cmds []SubCommand
	var updated []string
	if op.Name != nil {
		cmds = append(cmds, SetScalarFeature("set name", func() string { return e.Name }, func(v string) { e.Name = v }, *op.Name))
		updated = append(updated, "name")
	}
	if op.Documentation != nil {
		cmds = append(cmds, SetScalarFeature("set documentation", func() string { return e.Documentation }, func(v string) { e.Documentation = v }, *op.Documentation))
		updated = append(updated, "documentation")
	}
	if op.HasProperties {
		merged := mergeProperties(e.Properties, op.Properties)
		cmds = append(cmds, SetScalarFeature("set properties", func() model.Properties { return e.Properties }, func(v model.Properties) { e.Properties = v }, merged))
		updated = append(updated, "properties")
	}
	result := newResult(index, "updateElement")
	result.Fields["id"] = e.ID
	result.Fields["updated"] = updated
	return cmds, result, nil
}

func (c *Compiler) lowerUpdateRelationship(op *ops.UpdateRelationshipOp, index int) ([]SubCommand, OpResult, *engineerr.Error) {
	r := c.ctx.Model.FindRelationship(op.ID)
	if r == nil {
		if tr, ok := c.ctx.tempRelationships[op.ID]; ok {
			r = tr
		}
	}
	if r == nil {
		return nil, OpResult{}, engineerr.At(engineerr.CodeMissingReference, index, "updateRelationship: unknown id "+op.ID)
	}
	var cmds []SubCommand
	var updated []string
	if op.Name != nil {
		cmds = append(cmds, SetScalarFeature("set name", func() string { return r.Name }, func(v string) { r.Name = v }, *op.Name))
		updated = append(updated, "name")
	}
	if op.Documentation != nil {
		cmds = append(cmds, SetScalarFeature("set documentation", func() string { return r.Documentation }, func(v string) { r.Documentation = v }, *op.Documentation))
		updated = append(updated, "documentation")
	}
	if op.AccessType != nil {
		cmds = append(cmds, SetScalarFeature("set access type", func() model.AccessType { return r.AccessType }, func(v model.AccessType) { r.AccessType = v }, *op.AccessType))
		updated = append(updated, "accessType")
	}
	if op.Strength != nil {
		cmds = append(cmds, SetScalarFeature("set strength", func() model.Strength { return r.Strength }, func(v model.Strength) { r.Strength = v }, *op.Strength))
		updated = append(updated, "strength")
	}
	result := newResult(index, "updateRelationship")
	result.Fields["id"] = r.ID
	result.Fields["updated"] = updated
	return cmds, result, nil
}
