package engine

import (
	"github.com/archimate-engine/batchmut/internal/engineerr"
	"github.com/archimate-engine/batchmut/internal/model"
	"github.com/archimate-engine/batchmut/internal/validation/ops"
)

// resolveParentFolder resolves ref as a folder by temp-id, id, name, or
// kind token — model.Model.FindFolder (via CompileContext.ResolveFolderRef)
// already covers all four forms.
func (c *Compiler) resolveParentFolder(ref string, index int) (*resolvedFolder, *engineerr.Error) {
	f := c.ctx.ResolveFolderRef(ref)
	if f == nil {
		return nil, engineerr.At(engineerr.CodeMissingReference, index, "folder not found for ref "+ref)
	}
	return &resolvedFolder{f.ID, f.Kind}, nil
}

type resolvedFolder struct {
	ID   string
	Kind model.FolderKind
}

func (c *Compiler) lowerMoveToFolder(op *ops.MoveToFolderOp, index int) ([]SubCommand, OpResult, *engineerr.Error) {
	e, r := c.resolveEntityKind(op.ID)
	var entityID, oldFolderID, kind string
	switch {
	case e != nil:
		entityID, oldFolderID, kind = e.ID, e.ParentFolder, e.Kind
	case r != nil:
		entityID, oldFolderID, kind = r.ID, r.ParentFolder, r.Kind
	default:
		return nil, OpResult{}, engineerr.At(engineerr.CodeMissingReference, index, "moveToFolder: unknown id "+op.ID)
	}

	target, ferr := c.resolveFolder(kind, op.FolderRef, index)
	if ferr != nil {
		return nil, OpResult{}, ferr
	}
	newFolderID := target.ID

	cmd := SubCommand{
		Label: "move entity to folder",
		Apply: func() error {
			c.ctx.Model.FindFolder(oldFolderID).RemoveElement(entityID)
			c.ctx.Model.FindFolder(newFolderID).AddElement(entityID)
			if e != nil {
				e.ParentFolder = newFolderID
			} else {
				r.ParentFolder = newFolderID
			}
			return nil
		},
		Revert: func() error {
			c.ctx.Model.FindFolder(newFolderID).RemoveElement(entityID)
			c.ctx.Model.FindFolder(oldFolderID).AddElement(entityID)
			if e != nil {
				e.ParentFolder = oldFolderID
			} else {
				r.ParentFolder = oldFolderID
			}
			return nil
		},
	}
	result := newResult(index, "moveToFolder")
	result.Fields["id"] = entityID
	result.Fields["folderId"] = newFolderID
	return []SubCommand{cmd}, result, nil
}

func (c *Compiler) lowerCreateFolder(op *ops.CreateFolderOp, index int) ([]SubCommand, OpResult, *engineerr.Error) {
	parent, ferr := c.resolveParentFolder(op.ParentRef, index)
	if ferr != nil {
		return nil, OpResult{}, ferr
	}
	f := c.host.Factory.NewFolder()
	f.Name = op.Name
	f.Documentation = op.Documentation
	f.Kind = parent.Kind
	f.ParentFolder = parent.ID
	c.ctx.BindFolder(op.TempID, f)

	parentID := parent.ID
	cmd := AddToOrderedList("add child folder",
		func() {
			c.ctx.Model.Folders[f.ID] = f
			c.ctx.Model.FindFolder(parentID).AddChildFolder(f.ID)
		},
		func() {
			c.ctx.Model.FindFolder(parentID).RemoveChildFolder(f.ID)
			delete(c.ctx.Model.Folders, f.ID)
		},
	)
	result := newResult(index, "createFolder")
	result.Fields["folderId"] = f.ID
	result.Fields["parentId"] = parent.ID
	return []SubCommand{cmd}, result, nil
}
