package engine

import (
	"github.com/archimate-engine/batchmut/internal/engineerr"
	"github.com/archimate-engine/batchmut/internal/model"
	"github.com/archimate-engine/batchmut/internal/validation/ops"
)

// lowerCreateElement is spec.md §4.6 Pass 1 for a plain createElement:
// allocate the object, emit set-scalar-feature for name/documentation/
// properties, emit add-to-ordered-list into the resolved folder.
func (c *Compiler) lowerCreateElement(op *ops.CreateElementOp, index int) ([]SubCommand, OpResult, *engineerr.Error) {
	e := c.host.Factory.NewElement()
	e.Kind = op.Type

	folder, ferr := c.resolveFolder(op.Type, op.Folder, index)
	if ferr != nil {
		return nil, OpResult{}, ferr
	}

	var cmds []SubCommand
	cmds = append(cmds, SetScalarFeature("set name", func() string { return e.Name }, func(v string) { e.Name = v }, op.Name))
	cmds = append(cmds, SetScalarFeature("set documentation", func() string { return e.Documentation }, func(v string) { e.Documentation = v }, op.Documentation))
	cmds = append(cmds, SetScalarFeature("set properties", func() model.Properties { return e.Properties }, func(v model.Properties) { e.Properties = v }, op.Properties))
	cmds = append(cmds, c.addElementToFolder(e, folder))

	c.ctx.BindElement(op.TempID, e)
	e.ParentFolder = folder.ID
	c.ctx.CreatedElementIDs = append(c.ctx.CreatedElementIDs, e.ID)

	result := newResult(index, "createElement")
	result.Fields["realId"] = e.ID
	result.Fields["name"] = e.Name
	result.Fields["type"] = e.Kind
	return cmds, result, nil
}

// lowerCreateOrGetElement is spec.md §4.6 Pass 1 for createOrGetElement.
// The duplicate decision (Action/MatchedID/FinalName) was already made
// during validation (internal/validation's applyDuplicatePolicy); a
// "reused" decision produces no sub-commands at all.
func (c *Compiler) lowerCreateOrGetElement(op *ops.CreateOrGetElementOp, index int) ([]SubCommand, OpResult, *engineerr.Error) {
	result := newResult(index, "createOrGetElement")
	result.Fields["action"] = op.Action

	if op.Action == "reused" {
		c.ctx.BindElement(op.TempID, c.ctx.Model.FindElement(op.MatchedID))
		result.Fields["realId"] = op.MatchedID
		result.Fields["name"] = op.MatchName
		return nil, result, nil
	}

	e := c.host.Factory.NewElement()
	e.Kind = op.Create.Type
	folder, ferr := c.resolveFolder(op.Create.Type, op.Create.Folder, index)
	if ferr != nil {
		return nil, OpResult{}, ferr
	}

	var cmds []SubCommand
	cmds = append(cmds, SetScalarFeature("set name", func() string { return e.Name }, func(v string) { e.Name = v }, op.FinalName))
	cmds = append(cmds, SetScalarFeature("set documentation", func() string { return e.Documentation }, func(v string) { e.Documentation = v }, op.Create.Documentation))
	cmds = append(cmds, SetScalarFeature("set properties", func() model.Properties { return e.Properties }, func(v model.Properties) { e.Properties = v }, op.Create.Properties))
	cmds = append(cmds, c.addElementToFolder(e, folder))

	c.ctx.BindElement(op.TempID, e)
	e.ParentFolder = folder.ID
	c.ctx.CreatedElementIDs = append(c.ctx.CreatedElementIDs, e.ID)

	result.Fields["realId"] = e.ID
	result.Fields["name"] = op.FinalName
	return cmds, result, nil
}

// resolveFolder resolves the folder an element should be installed
// into: an explicit ref if given, else the folder router's default for
// this kind (spec.md §4.1).
func (c *Compiler) resolveFolder(kind, ref string, index int) (*model.Folder, *engineerr.Error) {
	fallback := c.ctx.Model.DefaultFolderFor(kind)
	if ref == "" {
		if fallback == nil {
			return nil, engineerr.At(engineerr.CodeMissingReference, index, "no default folder for kind "+kind)
		}
		return fallback, nil
	}
	f, err := c.ctx.Model.ResolveFolder(ref, model.FolderKindFor(kind), c.ctx.tempFolderIDs(), fallback)
	if err != nil {
		return nil, engineerr.At(engineerr.CodeMissingReference, index, err.Error())
	}
	return f, nil
}

// addElementToFolder builds the add-to-ordered-list sub-command that
// installs e into folder, resolving folder lazily by id at apply/revert
// time so a folder created earlier in the same chunk is safe to target.
func (c *Compiler) addElementToFolder(e *model.Element, folder *model.Folder) SubCommand {
	folderID := folder.ID
	return AddToOrderedList("add element to folder",
		func() {
			c.ctx.Model.Elements[e.ID] = e
			c.ctx.Model.FindFolder(folderID).AddElement(e.ID)
		},
		func() {
			c.ctx.Model.FindFolder(folderID).RemoveElement(e.ID)
			delete(c.ctx.Model.Elements, e.ID)
		},
	)
}
