package model

// Property is one entry of an Element's or Relationship's ordered property
// list. Properties preserve insertion order — spec.md §3 requires an
// "ordered map<string,string>", which Go has no native type for.
type Property struct {
	Key   string
	Value string
}

// Properties is an ordered list of key/value pairs with at most one entry
// per key. Lookups are linear (spec.md §4.6 calls this out explicitly for
// setProperty/updateElement/updateRelationship: "find existing property by
// key (linear scan of the ordered property list)").
type Properties []Property

// Get returns the value for key and whether it was present.
func (p Properties) Get(key string) (string, bool) {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Index returns the position of key in the list, or -1 if absent.
func (p Properties) Index(key string) int {
	for i, kv := range p {
		if kv.Key == key {
			return i
		}
	}
	return -1
}

// Set updates key in place if present, else appends it. Returns the new
// slice (append may reallocate) and whether the key already existed.
func (p Properties) Set(key, value string) (Properties, bool) {
	if i := p.Index(key); i >= 0 {
		p[i].Value = value
		return p, true
	}
	return append(p, Property{Key: key, Value: value}), false
}

// Clone returns an independent copy, used when a sub-command needs to
// snapshot the old value before mutating (set-scalar-feature revert).
func (p Properties) Clone() Properties {
	out := make(Properties, len(p))
	copy(out, p)
	return out
}

// FolderKind is the closed set of folder container kinds (spec.md §3).
type FolderKind string

const (
	FolderStrategy               FolderKind = "strategy"
	FolderBusiness               FolderKind = "business"
	FolderApplication            FolderKind = "application"
	FolderTechnology             FolderKind = "technology"
	FolderMotivation             FolderKind = "motivation"
	FolderImplementationMigration FolderKind = "implementation_migration"
	FolderRelations              FolderKind = "relations"
	FolderViews                  FolderKind = "views"
	FolderOther                  FolderKind = "other"
)

// Element is a typed ArchiMate node (spec.md §3).
type Element struct {
	ID            string
	Kind          string
	Name          string
	Documentation string
	Properties    Properties
	ParentFolder  string // Folder.ID
}

// AccessType is the access-relationship-specific attribute (spec.md §3).
type AccessType string

const (
	AccessRead      AccessType = "read"
	AccessWrite     AccessType = "write"
	AccessAccess    AccessType = "access"
	AccessReadWrite AccessType = "read-write"
)

// Strength is the influence-relationship-specific attribute (spec.md §3).
type Strength string

const (
	StrengthPlus    Strength = "+"
	StrengthMinus   Strength = "-"
	StrengthNeutral Strength = "="
	StrengthUnknown Strength = "?"
)

// Relationship is a typed, directed ArchiMate edge (spec.md §3).
type Relationship struct {
	ID            string
	Kind          string
	Name          string
	Documentation string
	SourceID      string // Element.ID
	TargetID      string // Element.ID
	Properties    Properties
	ParentFolder  string // Folder.ID

	// Kind-specific attributes; only one is meaningful depending on Kind.
	AccessType AccessType
	Strength   Strength
}

// Folder is a node of the folder tree (spec.md §3). Elements live only in
// folders whose Kind is compatible with the element's kind (invariant 1).
type Folder struct {
	ID            string
	Name          string
	Documentation string
	Kind          FolderKind
	ParentFolder  string // "" for a top-level folder

	ChildFolders []string // Folder.ID, ordered
	Elements     []string // Element.ID or Relationship.ID, ordered
}

// RouterKind selects how a view draws connections between visuals.
type RouterKind string

const (
	RouterBendpoint RouterKind = "bendpoint"
	RouterManhattan RouterKind = "manhattan"
)

// View is a diagram: a tree of VisualNodes rooted at the view itself
// (spec.md §3). A View is stored as an entry in a Folder of kind
// FolderViews, exactly like an Element is stored in its own folder.
type View struct {
	ID            string
	Name          string
	Documentation string
	Kind          string
	Viewpoint     string
	RouterKind    RouterKind
	Children      []*VisualNode // ordered
	ParentFolder  string
}

// Bounds is a visual node's rectangle in view coordinates.
type Bounds struct {
	X, Y, W, H float64
}

// Style holds the host-specific presentation attributes shared by visual
// nodes and connections (spec.md §9 Design Note: "isolate behind a small
// Style module"). Colour fields are normalised "#RRGGBB" strings; an empty
// string means "use default."
type Style struct {
	Fill          string
	Line          string
	Font          string
	FontColor     string
	Opacity       *int // 0..255; nil means default
	FontDescriptor string
	LineWidth     *int // 1..4; nil means default (connections only)
	TextPosition  *int // 0, 1, or 2; nil means default (connections only)
}

// VisualNode is one box/note/group on a View (spec.md §3). ConceptRef is
// empty for a note or group (not backed by an Element).
type VisualNode struct {
	ID         string
	ConceptRef string // Element.ID, or "" for a note/group
	Bounds     Bounds
	Style      Style
	Children   []*VisualNode // nested visuals, ordered

	SourceConnections []*VisualConnection // this node is the connection's Source
	TargetConnections []*VisualConnection // this node is the connection's Target

	// Content/Name is shown for notes/groups that carry their own text
	// instead of delegating to a concept's Name.
	Content string
	Name    string
	IsGroup bool
}

// Nestable reports whether other visuals may be reparented under this one
// (spec.md §4.6 nestInView: "requires ... container-capable target").
// Groups and element visuals (those with a concept) can host children;
// notes (no concept, not a group) cannot.
func (v *VisualNode) Nestable() bool {
	return v != nil && (v.ConceptRef != "" || v.IsGroup)
}

// VisualConnection is a drawn edge between two VisualNodes representing one
// Relationship (spec.md §3).
type VisualConnection struct {
	ID             string
	RelationshipRef string // Relationship.ID
	SourceID       string // VisualNode.ID
	TargetID       string // VisualNode.ID
	Bendpoints     []Point
	Style          Style
}

// Point is one bendpoint on a connection.
type Point struct {
	X, Y float64
}

// Model is the root of the graph: the folder tree plus every element,
// relationship and view it reaches. All entities are stored by id in flat
// maps; the folder tree is the authoritative containment structure
// (invariant 1) — the maps exist purely for O(1) id lookup and do not
// themselves grant reachability.
type Model struct {
	Folders       map[string]*Folder
	Elements      map[string]*Element
	Relationships map[string]*Relationship
	Views         map[string]*View

	// RootFolderIDs are the top-level folders, one conventionally per
	// FolderKind, created by NewModel. Callers may add further top-level
	// folders; folder lookup by kind returns the first match.
	RootFolderIDs []string
}

// NewModel builds an empty model with the nine canonical top-level folders,
// one per FolderKind, matching a freshly created ArchiMate workspace.
func NewModel() *Model {
	m := &Model{
		Folders:       make(map[string]*Folder),
		Elements:      make(map[string]*Element),
		Relationships: make(map[string]*Relationship),
		Views:         make(map[string]*View),
	}
	kinds := []struct {
		kind FolderKind
		name string
	}{
		{FolderStrategy, "Strategy"},
		{FolderBusiness, "Business"},
		{FolderApplication, "Application"},
		{FolderTechnology, "Technology & Physical"},
		{FolderMotivation, "Motivation"},
		{FolderImplementationMigration, "Implementation & Migration"},
		{FolderRelations, "Relations"},
		{FolderViews, "Views"},
		{FolderOther, "Other"},
	}
	for _, k := range kinds {
		f := &Folder{ID: NewID(), Name: k.name, Kind: k.kind}
		m.Folders[f.ID] = f
		m.RootFolderIDs = append(m.RootFolderIDs, f.ID)
	}
	return m
}
