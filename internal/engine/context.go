package engine

import "github.com/archimate-engine/batchmut/internal/model"

// endpoints is the rel_id → (source_obj, target_obj) cache of spec.md §4.6:
// relationship endpoints are recorded here as soon as they are resolved in
// Pass 2, separately from the relationship object's own SourceID/TargetID
// fields, because those fields are only written when the set-scalar-feature
// sub-command actually applies ("getSource()/getTarget() returns null
// before commit").
type endpoints struct {
	Source *model.Element
	Target *model.Element
}

// viewElementKey indexes a visual created earlier in the same plan by
// (view, backing element) for same-plan connection wiring (spec.md §4.6
// addToView: "Index the created visual by (view_id, element_id)").
type viewElementKey struct {
	ViewID    string
	ElementID string
}

// CompileContext is the mutable state threaded through all three compiler
// passes: the temp-id → real-object map, the endpoint cache, the
// same-plan view/element visual index, and the running lists of ids the
// post-chunk verifier must check for (spec.md §4.6's created_element_ids /
// created_relationship_ids).
type CompileContext struct {
	Model *model.Model

	tempElements      map[string]*model.Element
	tempRelationships map[string]*model.Relationship
	tempFolders       map[string]*model.Folder
	tempViews         map[string]*model.View
	tempVisuals       map[string]*model.VisualNode

	endpointCache map[string]endpoints // keyed by relationship id or temp-id
	viewElements  map[viewElementKey]*model.VisualNode

	CreatedElementIDs      []string
	CreatedRelationshipIDs []string
}

// NewCompileContext creates an empty compile context over m.
func NewCompileContext(m *model.Model) *CompileContext {
	return &CompileContext{
		Model:             m,
		tempElements:      make(map[string]*model.Element),
		tempRelationships: make(map[string]*model.Relationship),
		tempFolders:       make(map[string]*model.Folder),
		tempViews:         make(map[string]*model.View),
		tempVisuals:       make(map[string]*model.VisualNode),
		endpointCache:     make(map[string]endpoints),
		viewElements:      make(map[viewElementKey]*model.VisualNode),
	}
}

func (c *CompileContext) BindElement(tempID string, e *model.Element) {
	if tempID != "" {
		c.tempElements[tempID] = e
	}
}
func (c *CompileContext) BindRelationship(tempID string, r *model.Relationship) {
	if tempID != "" {
		c.tempRelationships[tempID] = r
	}
}
func (c *CompileContext) BindFolder(tempID string, f *model.Folder) {
	if tempID != "" {
		c.tempFolders[tempID] = f
	}
}
func (c *CompileContext) BindView(tempID string, v *model.View) {
	if tempID != "" {
		c.tempViews[tempID] = v
	}
}
func (c *CompileContext) BindVisual(tempID string, v *model.VisualNode) {
	if tempID != "" {
		c.tempVisuals[tempID] = v
	}
}

// ResolveElement resolves ref as a temp-id first, then falls back to
// find_element over the committed model (spec.md §4.6 Pass 2:
// "resolve source and target via temp_id map with fallback to
// find_element").
func (c *CompileContext) ResolveElement(ref string) *model.Element {
	if e, ok := c.tempElements[ref]; ok {
		return e
	}
	return c.Model.FindElement(ref)
}

func (c *CompileContext) ResolveFolderRef(ref string) *model.Folder {
	if f, ok := c.tempFolders[ref]; ok {
		return f
	}
	return c.Model.FindFolder(ref)
}

func (c *CompileContext) ResolveView(ref string) *model.View {
	if v, ok := c.tempViews[ref]; ok {
		return v
	}
	return c.Model.FindView(ref)
}

// tempFolderIDs projects the temp-id → *Folder map into the temp-id →
// real-id map model.ResolveFolder expects, so folders created earlier in
// the same plan resolve by their plan-local temp id.
func (c *CompileContext) tempFolderIDs() map[string]string {
	out := make(map[string]string, len(c.tempFolders))
	for tempID, f := range c.tempFolders {
		out[tempID] = f.ID
	}
	return out
}

func (c *CompileContext) ResolveVisual(viewID, ref string) *model.VisualNode {
	if v, ok := c.tempVisuals[ref]; ok {
		return v
	}
	view := c.ResolveView(viewID)
	if view == nil {
		return nil
	}
	return model.FindVisual(view, ref)
}

func (c *CompileContext) SetEndpoints(relRef string, source, target *model.Element) {
	c.endpointCache[relRef] = endpoints{Source: source, Target: target}
}

func (c *CompileContext) Endpoints(relRef string) (endpoints, bool) {
	e, ok := c.endpointCache[relRef]
	return e, ok
}

func (c *CompileContext) IndexViewElement(viewID, elementID string, v *model.VisualNode) {
	c.viewElements[viewElementKey{ViewID: viewID, ElementID: elementID}] = v
}

func (c *CompileContext) VisualForViewElement(viewID, elementID string) (*model.VisualNode, bool) {
	v, ok := c.viewElements[viewElementKey{ViewID: viewID, ElementID: elementID}]
	return v, ok
}
