package engine

import (
	"github.com/archimate-engine/batchmut/internal/engineerr"
	"github.com/archimate-engine/batchmut/internal/model"
	"github.com/archimate-engine/batchmut/internal/validation/ops"
)

// lowerCreateOrGetRelationshipAllocate is Pass 1 for createOrGetRelationship
// (spec.md §4.6: "createOrGetRelationship-create-branch"): on "created" it
// allocates the bare object (kind set, id assigned) and stashes temp_id →
// obj, deferring source/target/name/doc/access/strength wiring to Pass 2
// alongside plain createRelationship. On "reused" it binds the existing
// relationship and emits no sub-commands.
func (c *Compiler) lowerCreateOrGetRelationshipAllocate(op *ops.CreateOrGetRelationshipOp, index int) ([]SubCommand, OpResult, *engineerr.Error) {
	if op.Action == "reused" {
		c.ctx.BindRelationship(op.TempID, c.ctx.Model.FindRelationship(op.MatchedID))
		return nil, OpResult{}, nil
	}
	r := c.host.Factory.NewRelationship()
	r.Kind = op.Create.Type
	c.ctx.BindRelationship(op.TempID, r)
	c.ctx.CreatedRelationshipIDs = append(c.ctx.CreatedRelationshipIDs, r.ID)
	return nil, OpResult{}, nil
}

// lowerCreateOrGetRelationshipWire is Pass 2's continuation of the
// create-branch: resolves endpoints and emits the wiring sub-commands. On
// "reused" this is a no-op that reports the matched id (spec.md §4.6:
// "reuse produces no sub-commands").
func (c *Compiler) lowerCreateOrGetRelationshipWire(op *ops.CreateOrGetRelationshipOp, index int) ([]SubCommand, OpResult, *engineerr.Error) {
	result := newResult(index, "createOrGetRelationship")
	result.Fields["action"] = op.Action
	if op.Action == "reused" {
		result.Fields["realId"] = op.MatchedID
		return nil, result, nil
	}

	r := c.ctx.tempRelationships[op.TempID]
	if r == nil {
		return nil, OpResult{}, engineerr.At(engineerr.CodeHostError, index, "createOrGetRelationship: allocated object missing")
	}
	source, target, cmds, err := c.wireRelationship(r, op.Create.SourceID, op.Create.TargetID, op.Create.Name, op.Create.Documentation,
		op.Create.AccessType, op.Create.Strength, op.TempID, index)
	if err != nil {
		return nil, OpResult{}, err
	}
	result.Fields["realId"] = r.ID
	result.Fields["endpoints"] = map[string]string{"source": source.ID, "target": target.ID}
	return cmds, result, nil
}

// lowerCreateRelationship is Pass 2 for a plain createRelationship: the
// object is allocated here (not in Pass 1, per spec.md §4.6) and wired in
// the same step.
func (c *Compiler) lowerCreateRelationship(op *ops.CreateRelationshipOp, index int) ([]SubCommand, OpResult, *engineerr.Error) {
	r := c.host.Factory.NewRelationship()
	r.Kind = op.Type
	source, target, cmds, err := c.wireRelationship(r, op.SourceID, op.TargetID, op.Name, op.Documentation, op.AccessType, op.Strength, op.TempID, index)
	if err != nil {
		return nil, OpResult{}, err
	}
	c.ctx.CreatedRelationshipIDs = append(c.ctx.CreatedRelationshipIDs, r.ID)
	result := newResult(index, "createRelationship")
	result.Fields["realId"] = r.ID
	result.Fields["type"] = r.Kind
	result.Fields["source"] = source.ID
	result.Fields["target"] = target.ID
	result.Fields["sourceName"] = source.Name
	result.Fields["targetName"] = target.Name
	return cmds, result, nil
}

// wireRelationship resolves source/target, populates the endpoint cache,
// binds tempID, and emits the set-scalar-feature and add-to-ordered-list
// sub-commands shared by createRelationship and the createOrGetRelationship
// create-branch (spec.md §4.6 Pass 2 bullet 1).
func (c *Compiler) wireRelationship(r *model.Relationship, sourceRef, targetRef, name, documentation string,
	accessType model.AccessType, strength model.Strength, tempID string, index int) (*model.Element, *model.Element, []SubCommand, *engineerr.Error) {

	source := c.ctx.ResolveElement(sourceRef)
	target := c.ctx.ResolveElement(targetRef)
	if source == nil || target == nil {
		return nil, nil, nil, engineerr.At(engineerr.CodeMissingReference, index, "relationship source or target not found")
	}
	c.ctx.SetEndpoints(r.ID, source, target)
	if tempID != "" {
		c.ctx.SetEndpoints(tempID, source, target)
	}
	c.ctx.BindRelationship(tempID, r)

	folder, ferr := c.resolveFolder(r.Kind, "", index)
	if ferr != nil {
		return nil, nil, nil, ferr
	}

	var cmds []SubCommand
	cmds = append(cmds, SetScalarFeature("set source", func() string { return r.SourceID }, func(v string) { r.SourceID = v }, source.ID))
	cmds = append(cmds, SetScalarFeature("set target", func() string { return r.TargetID }, func(v string) { r.TargetID = v }, target.ID))
	cmds = append(cmds, SetScalarFeature("set name", func() string { return r.Name }, func(v string) { r.Name = v }, name))
	cmds = append(cmds, SetScalarFeature("set documentation", func() string { return r.Documentation }, func(v string) { r.Documentation = v }, documentation))
	cmds = append(cmds, SetScalarFeature("set access type", func() model.AccessType { return r.AccessType }, func(v model.AccessType) { r.AccessType = v }, accessType))
	cmds = append(cmds, SetScalarFeature("set strength", func() model.Strength { return r.Strength }, func(v model.Strength) { r.Strength = v }, strength))

	folderID := folder.ID
	cmds = append(cmds, AddToOrderedList("add relationship to relations folder",
		func() {
			c.ctx.Model.Relationships[r.ID] = r
			c.ctx.Model.FindFolder(folderID).AddElement(r.ID)
		},
		func() {
			c.ctx.Model.FindFolder(folderID).RemoveElement(r.ID)
			delete(c.ctx.Model.Relationships, r.ID)
		},
	))
	r.ParentFolder = folder.ID
	return source, target, cmds, nil
}
