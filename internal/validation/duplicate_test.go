package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archimate-engine/batchmut/internal/model"
)

func newSnapshotWithActor(t *testing.T, name string) *model.Model {
	t.Helper()
	m := model.NewModel()
	folder := m.Folders[m.RootFolderIDs[0]]
	for _, id := range m.RootFolderIDs {
		if m.Folders[id].Kind == model.FolderBusiness {
			folder = m.Folders[id]
			break
		}
	}
	e := &model.Element{ID: model.NewID(), Kind: "business-actor", Name: name, ParentFolder: folder.ID}
	m.Elements[e.ID] = e
	folder.AddElement(e.ID)
	return m
}

func TestElementMatchesFindsSnapshotEntity(t *testing.T) {
	m := newSnapshotWithActor(t, "Finance")
	idx := NewDuplicateIndex(m)
	matches := idx.ElementMatches("business-actor", "Finance")
	require.Len(t, matches, 1)
}

func TestElementMatchesFindsSamePlanCreate(t *testing.T) {
	m := model.NewModel()
	idx := NewDuplicateIndex(m)
	idx.RegisterElement("business-actor", "Finance", "real-1", "tmp-1")
	matches := idx.ElementMatches("business-actor", "Finance")
	require.Len(t, matches, 1)
	assert.Equal(t, "real-1", matches[0])
}

func TestResolveTempIDRoundTrips(t *testing.T) {
	m := model.NewModel()
	idx := NewDuplicateIndex(m)
	idx.RegisterElement("business-actor", "Finance", "real-1", "tmp-1")
	real, ok := idx.ResolveTempID("tmp-1")
	require.True(t, ok)
	assert.Equal(t, "real-1", real)
	_, ok = idx.ResolveTempID("unknown")
	assert.False(t, ok)
}

func TestRelationshipMatchesResolvesTempIDEndpoints(t *testing.T) {
	m := model.NewModel()
	idx := NewDuplicateIndex(m)
	idx.RegisterElement("business-actor", "A", "real-a", "tmp-a")
	idx.RegisterElement("business-actor", "B", "real-b", "tmp-b")
	key := relKey{kind: "flow-relationship", sourceRef: "tmp-a", targetRef: "tmp-b"}
	idx.RegisterRelationship(key, "real-rel")
	matches := idx.RelationshipMatches(relKey{kind: "flow-relationship", sourceRef: "tmp-a", targetRef: "tmp-b"})
	require.Len(t, matches, 1)
	assert.Equal(t, "real-rel", matches[0])
}

func TestNextRenameCandidateSkipsExistingNames(t *testing.T) {
	m := model.NewModel()
	idx := NewDuplicateIndex(m)
	idx.RegisterElement("business-actor", "Finance (2)", "real-2", "")
	candidate := idx.NextRenameCandidate("business-actor", "Finance")
	assert.Equal(t, "Finance (3)", candidate)
}
