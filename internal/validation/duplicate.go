package validation

import (
	"fmt"

	"github.com/archimate-engine/batchmut/internal/model"
	"github.com/archimate-engine/batchmut/internal/query"
)

// elementKey and relKey are the intra-plan match keys of spec.md §4.4:
// elements key on (kind, name); relationships key on (kind, source-ref,
// target-ref, access-kind?, strength?) where a ref may be a temp-id or a
// real id.
type elementKey struct {
	kind string
	name string
}

type relKey struct {
	kind       string
	sourceRef  string
	targetRef  string
	accessType model.AccessType
	strength   model.Strength
}

// tempIDInfo records what an earlier createElement/createOrGetElement in
// the same plan claimed for its tempId, so a later createRelationship's
// sourceId/targetId can resolve it (spec.md §4.4's "temp-id map").
type tempIDInfo struct {
	Kind string
	Name string
}

// DuplicateIndex is the per-plan registry of created elements and
// relationships, discarded at plan end (spec.md §4.4). Grounded on the
// teacher's internal/emergent/idmap.go map-keyed-by-composite-key idiom.
type DuplicateIndex struct {
	snapshot *model.Model

	createdElements      map[elementKey][]string // -> element ids created so far in this plan
	createdRelationships map[relKey][]string      // -> relationship ids created so far in this plan
	tempIDs              map[string]tempIDInfo
	realIDs              map[string]string // temp-id -> real id, populated as creates are registered
}

// NewDuplicateIndex creates an index backed by snapshot, the caller
// -provided model to check pre-existing entities against (spec.md §4.5
// check 5: "against a caller-provided model snapshot").
func NewDuplicateIndex(snapshot *model.Model) *DuplicateIndex {
	return &DuplicateIndex{
		snapshot:              snapshot,
		createdElements:       make(map[elementKey][]string),
		createdRelationships:  make(map[relKey][]string),
		tempIDs:               make(map[string]tempIDInfo),
	}
}

// ElementMatches returns every element — from the snapshot and from this
// plan's own earlier creates — matching (kind, name).
func (d *DuplicateIndex) ElementMatches(kind, name string) []string {
	var out []string
	for _, e := range query.ByKindAndName(d.snapshot, kind, name) {
		out = append(out, e.ID)
	}
	out = append(out, d.createdElements[elementKey{kind: kind, name: name}]...)
	return out
}

// RelationshipMatches returns every relationship — snapshot and same-plan
// — matching key. For the snapshot lookup, a ref (sourceRef/targetRef)
// that is a registered temp-id is resolved to its real id; the same-plan
// lookup compares refs as given (temp-ids are exactly what earlier
// same-plan creates registered under).
func (d *DuplicateIndex) RelationshipMatches(key relKey) []string {
	var out []string
	snapSource, snapTarget := key.sourceRef, key.targetRef
	if realSource, ok := d.ResolveTempID(key.sourceRef); ok {
		snapSource = realSource
	}
	if realTarget, ok := d.ResolveTempID(key.targetRef); ok {
		snapTarget = realTarget
	}
	snapKey := query.RelationshipMatch{
		Kind: key.kind, SourceID: snapSource, TargetID: snapTarget,
		AccessType: key.accessType, Strength: key.strength,
	}
	for _, r := range query.ByRelationshipMatch(d.snapshot, snapKey) {
		out = append(out, r.ID)
	}
	out = append(out, d.createdRelationships[key]...)
	return out
}

// RegisterElement records a newly created or reused element under its
// match key, and its tempId (if any) for later relationship-endpoint
// resolution.
func (d *DuplicateIndex) RegisterElement(kind, name, realID, tempID string) {
	key := elementKey{kind: kind, name: name}
	d.createdElements[key] = append(d.createdElements[key], realID)
	if tempID != "" {
		d.tempIDs[tempID] = tempIDInfo{Kind: kind, Name: name}
		d.tempIDToRealID(tempID, realID)
	}
}

// RegisterRelationship records a newly created relationship under its
// match key.
func (d *DuplicateIndex) RegisterRelationship(key relKey, realID string) {
	d.createdRelationships[key] = append(d.createdRelationships[key], realID)
}

// tempIDToRealID maps a plan-local temp id straight to the real id that
// claimed it, separate from tempIDInfo (which only remembers kind/name for
// display). Declared lazily to avoid allocating when unused.
func (d *DuplicateIndex) tempIDToRealID(tempID, realID string) {
	if d.realIDs == nil {
		d.realIDs = make(map[string]string)
	}
	d.realIDs[tempID] = realID
}

// ResolveTempID returns the real id a temp id resolved to, if any.
func (d *DuplicateIndex) ResolveTempID(ref string) (string, bool) {
	id, ok := d.realIDs[ref]
	return id, ok
}

// TempIDInfo returns what an earlier create claimed for tempID, used for
// error messages.
func (d *DuplicateIndex) TempIDInfo(tempID string) (tempIDInfo, bool) {
	info, ok := d.tempIDs[tempID]
	return info, ok
}

// NextRenameCandidate returns the first "name (n)" (n starting at 2) that
// has no matching element of kind, per spec.md §4.4's rename strategy. The
// rename strategy applies only to elements — a relationship has no name
// field to rename into, so callers must reject StrategyRename for
// createRelationship/createOrGetRelationship before reaching here.
func (d *DuplicateIndex) NextRenameCandidate(kind, name string) string {
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s (%d)", name, n)
		if len(d.ElementMatches(kind, candidate)) == 0 {
			return candidate
		}
	}
}

