package engine

import (
	"github.com/archimate-engine/batchmut/internal/engineerr"
	"github.com/archimate-engine/batchmut/internal/model"
	"github.com/archimate-engine/batchmut/internal/validation"
	"github.com/archimate-engine/batchmut/internal/validation/ops"
)

// Compiler lowers a validated plan into sub-commands plus one OpResult per
// input operation, following spec.md §4.6's three ordered passes: creates,
// then mutations/additive view operations, then deletes. Grounded on the
// teacher's internal/validation Registry/Validator dispatch, generalised
// here from "entity type → validator" to "op tag → lowering function,"
// sequenced into three fixed passes instead of one dispatch table.
type Compiler struct {
	ctx  *CompileContext
	host Host
}

// NewCompiler creates a Compiler that lowers against m, using host for
// entity allocation.
func NewCompiler(m *model.Model, host Host) *Compiler {
	return &Compiler{ctx: NewCompileContext(m), host: host}
}

// Context exposes the compiler's mutable state, used by the cascade planner
// and result rewriter after Compile returns.
func (c *Compiler) Context() *CompileContext { return c.ctx }

// Compile runs all three passes over validatedOps and returns one opGroup
// per input operation in emission order (Pass 1 groups first, then Pass 2,
// then Pass 3 — never interleaved within a group, so the chunker can later
// split between groups without ever splitting mid-operation), plus one
// OpResult per input operation reassembled in original plan order.
func (c *Compiler) Compile(validatedOps []validation.ValidatedOp) ([]opGroup, []OpResult, *engineerr.Error) {
	results := make(map[int]OpResult, len(validatedOps))
	var groups []opGroup

	for _, vop := range validatedOps {
		if !isCreateTag(vop.Tag) {
			continue
		}
		opCmds, result, err := c.lowerCreate(vop)
		if err != nil {
			return nil, nil, err
		}
		groups = append(groups, opGroup{Label: string(vop.Tag), Cmds: opCmds})
		results[vop.Index] = result
	}

	for _, vop := range validatedOps {
		if isCreateTag(vop.Tag) || isDeleteTag(vop.Tag) {
			continue
		}
		opCmds, result, err := c.lowerMutation(vop)
		if err != nil {
			return nil, nil, err
		}
		groups = append(groups, opGroup{Label: string(vop.Tag), Cmds: opCmds})
		results[vop.Index] = result
	}

	for _, vop := range validatedOps {
		if !isDeleteTag(vop.Tag) {
			continue
		}
		opCmds, result, err := c.lowerDelete(vop)
		if err != nil {
			return nil, nil, err
		}
		groups = append(groups, opGroup{Label: string(vop.Tag), Cmds: opCmds})
		results[vop.Index] = result
	}

	out := make([]OpResult, len(validatedOps))
	for _, vop := range validatedOps {
		out[vop.Index] = results[vop.Index]
	}
	return groups, out, nil
}

// isCreateTag reports whether tag is lowered in Pass 1 (spec.md §4.6:
// "createElement/createOrGetElement/createOrGetRelationship-create-branch").
// createRelationship itself is excluded — its object is allocated in Pass 2
// alongside its endpoint resolution.
func isCreateTag(tag validation.OpTag) bool {
	switch tag {
	case validation.OpCreateElement, validation.OpCreateOrGetElement, validation.OpCreateOrGetRelationship:
		return true
	}
	return false
}

func isDeleteTag(tag validation.OpTag) bool {
	switch tag {
	case validation.OpDeleteElement, validation.OpDeleteRelationship, validation.OpDeleteView, validation.OpDeleteConnectionFromView:
		return true
	}
	return false
}

func (c *Compiler) lowerCreate(vop validation.ValidatedOp) ([]SubCommand, OpResult, *engineerr.Error) {
	switch vop.Tag {
	case validation.OpCreateElement:
		return c.lowerCreateElement(vop.Decoded.(*ops.CreateElementOp), vop.Index)
	case validation.OpCreateOrGetElement:
		return c.lowerCreateOrGetElement(vop.Decoded.(*ops.CreateOrGetElementOp), vop.Index)
	case validation.OpCreateOrGetRelationship:
		return c.lowerCreateOrGetRelationshipAllocate(vop.Decoded.(*ops.CreateOrGetRelationshipOp), vop.Index)
	}
	return nil, OpResult{}, engineerr.At(engineerr.CodeValidationError, vop.Index, "unhandled create op "+string(vop.Tag))
}

func (c *Compiler) lowerMutation(vop validation.ValidatedOp) ([]SubCommand, OpResult, *engineerr.Error) {
	switch vop.Tag {
	case validation.OpCreateRelationship:
		return c.lowerCreateRelationship(vop.Decoded.(*ops.CreateRelationshipOp), vop.Index)
	case validation.OpCreateOrGetRelationship:
		return c.lowerCreateOrGetRelationshipWire(vop.Decoded.(*ops.CreateOrGetRelationshipOp), vop.Index)
	case validation.OpSetProperty:
		return c.lowerSetProperty(vop.Decoded.(*ops.SetPropertyOp), vop.Index)
	case validation.OpUpdateElement:
		return c.lowerUpdateElement(vop.Decoded.(*ops.UpdateElementOp), vop.Index)
	case validation.OpUpdateRelationship:
		return c.lowerUpdateRelationship(vop.Decoded.(*ops.UpdateRelationshipOp), vop.Index)
	case validation.OpAddToView:
		return c.lowerAddToView(vop.Decoded.(*ops.AddToViewOp), vop.Index)
	case validation.OpNestInView:
		return c.lowerNestInView(vop.Decoded.(*ops.NestInViewOp), vop.Index)
	case validation.OpAddConnectionToView:
		return c.lowerAddConnectionToView(vop.Decoded.(*ops.AddConnectionToViewOp), vop.Index)
	case validation.OpMoveToFolder:
		return c.lowerMoveToFolder(vop.Decoded.(*ops.MoveToFolderOp), vop.Index)
	case validation.OpCreateFolder:
		return c.lowerCreateFolder(vop.Decoded.(*ops.CreateFolderOp), vop.Index)
	case validation.OpStyleViewObject:
		return c.lowerStyleViewObject(vop.Decoded.(*ops.StyleViewObjectOp), vop.Index)
	case validation.OpStyleConnection:
		return c.lowerStyleConnection(vop.Decoded.(*ops.StyleConnectionOp), vop.Index)
	case validation.OpMoveViewObject:
		return c.lowerMoveViewObject(vop.Decoded.(*ops.MoveViewObjectOp), vop.Index)
	case validation.OpCreateNote:
		return c.lowerCreateNote(vop.Decoded.(*ops.CreateNoteOp), vop.Index)
	case validation.OpCreateGroup:
		return c.lowerCreateGroup(vop.Decoded.(*ops.CreateGroupOp), vop.Index)
	case validation.OpCreateView:
		return c.lowerCreateView(vop.Decoded.(*ops.CreateViewOp), vop.Index)
	case validation.OpDuplicateView:
		return c.lowerDuplicateView(vop.Decoded.(*ops.DuplicateViewOp), vop.Index)
	case validation.OpSetViewRouter:
		return c.lowerSetViewRouter(vop.Decoded.(*ops.SetViewRouterOp), vop.Index)
	case validation.OpLayoutView:
		return c.lowerLayoutView(vop.Decoded.(*ops.LayoutViewOp), vop.Index)
	}
	return nil, OpResult{}, engineerr.At(engineerr.CodeValidationError, vop.Index, "unhandled mutation op "+string(vop.Tag))
}

func (c *Compiler) lowerDelete(vop validation.ValidatedOp) ([]SubCommand, OpResult, *engineerr.Error) {
	switch vop.Tag {
	case validation.OpDeleteConnectionFromView:
		return c.lowerDeleteConnectionFromView(vop.Decoded.(*ops.DeleteConnectionFromViewOp), vop.Index)
	case validation.OpDeleteElement:
		return c.lowerDeleteElement(vop.Decoded.(*ops.DeleteElementOp), vop.Index)
	case validation.OpDeleteRelationship:
		return c.lowerDeleteRelationship(vop.Decoded.(*ops.DeleteRelationshipOp), vop.Index)
	case validation.OpDeleteView:
		return c.lowerDeleteView(vop.Decoded.(*ops.DeleteViewOp), vop.Index)
	}
	return nil, OpResult{}, engineerr.At(engineerr.CodeValidationError, vop.Index, "unhandled delete op "+string(vop.Tag))
}
