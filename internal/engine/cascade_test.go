package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/archimate-engine/batchmut/internal/model"
)

// viewsFolder returns m's canonical Views folder, built by model.NewModel.
func viewsFolder(t *testing.T, m *model.Model) *model.Folder {
	t.Helper()
	for _, id := range m.RootFolderIDs {
		if f := m.Folders[id]; f != nil && f.Kind == model.FolderViews {
			return f
		}
	}
	t.Fatal("no views folder in model")
	return nil
}

// buildCascadeFixture constructs the pre-state cascade_delete.yaml documents:
// elements A, B; relationship R (A->B); view V with visuals vA/vB backed by
// A/B and connection cR for R.
func buildCascadeFixture(t *testing.T) *model.Model {
	t.Helper()
	m := model.NewModel()

	businessFolder := m.DefaultFolderFor(model.KindBusinessActor)
	a := &model.Element{ID: "A", Kind: model.KindBusinessActor, Name: "A", ParentFolder: businessFolder.ID}
	b := &model.Element{ID: "B", Kind: model.KindBusinessActor, Name: "B", ParentFolder: businessFolder.ID}
	m.Elements[a.ID] = a
	m.Elements[b.ID] = b
	businessFolder.AddElement(a.ID)
	businessFolder.AddElement(b.ID)

	relFolder := m.DefaultFolderFor(model.RelKindFlow)
	r := &model.Relationship{ID: "R", Kind: model.RelKindFlow, SourceID: a.ID, TargetID: b.ID, ParentFolder: relFolder.ID}
	m.Relationships[r.ID] = r
	relFolder.AddElement(r.ID)

	vf := viewsFolder(t, m)
	vA := &model.VisualNode{ID: "vA", ConceptRef: a.ID}
	vB := &model.VisualNode{ID: "vB", ConceptRef: b.ID}
	cR := &model.VisualConnection{ID: "cR", RelationshipRef: r.ID, SourceID: vA.ID, TargetID: vB.ID}
	vA.AddSourceConnection(cR)
	vB.AddTargetConnection(cR)
	v := &model.View{ID: "V", Name: "V", ParentFolder: vf.ID}
	v.AddChild(vA)
	v.AddChild(vB)
	m.Views[v.ID] = v
	vf.AddElement(v.ID)

	return m
}

func TestCascadeDelete(t *testing.T) {
	m := buildCascadeFixture(t)

	result := execFixture(t, m, "cascade_delete.yaml")
	require.Len(t, result.Ops, 1)
	require.Equal(t, 1, result.Ops[0].Fields["cascadedRelationships"])
	require.Equal(t, 1, result.Ops[0].Fields["cascadedVisuals"])
	require.Equal(t, 1, result.Ops[0].Fields["cascadedConnections"])

	require.Nil(t, m.FindElement("A"), "deleted element must leave no trace")
	require.Nil(t, m.FindRelationship("R"), "cascaded relationship must leave no trace")

	view := m.FindView("V")
	require.NotNil(t, view)
	require.Len(t, view.Children, 1)
	require.Equal(t, "vB", view.Children[0].ID)
	require.Empty(t, view.Children[0].TargetConnections, "cascaded connection must be gone from vB too")

	require.NotNil(t, m.FindElement("B"), "B must survive")
}
