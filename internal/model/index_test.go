package model

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndexAgreesWithTraversal(t *testing.T) {
	m, a, b, rel, view, va, vb, _ := newTestModel(t)
	idx := BuildIndex(m)

	gotA := idx.RelationshipIDsForElement(a.ID)
	require.Equal(t, []string{rel.ID}, gotA)
	gotB := idx.RelationshipIDsForElement(b.ID)
	require.Equal(t, []string{rel.ID}, gotB)

	wantVisualsA := []VisualRef{{ViewID: view.ID, VisualID: va.ID}}
	require.Equal(t, wantVisualsA, idx.VisualRefsForElement(a.ID))

	wantVisualsB := []VisualRef{{ViewID: view.ID, VisualID: vb.ID}}
	require.Equal(t, wantVisualsB, idx.VisualRefsForElement(b.ID))
}

func TestIndexMatchesFullTraversalGenerally(t *testing.T) {
	m, a, _, _, view, _, _, _ := newTestModel(t)

	// Add a second view and a second visual for `a` to exercise multi-view
	// aggregation.
	viewsFolder := m.findFolderByKind(FolderViews)
	view2 := &View{ID: NewID(), Name: "V2", ParentFolder: viewsFolder.ID}
	m.Views[view2.ID] = view2
	va2 := &VisualNode{ID: NewID(), ConceptRef: a.ID}
	view2.AddChild(va2)

	idx := BuildIndex(m)
	refs := idx.VisualRefsForElement(a.ID)

	var fromTraversal []VisualRef
	for _, v := range m.FindAllViews() {
		for _, hit := range FindVisualsForElement(v, a.ID) {
			fromTraversal = append(fromTraversal, VisualRef{ViewID: v.ID, VisualID: hit.Visual.ID})
		}
	}

	sortRefs := func(refs []VisualRef) {
		sort.Slice(refs, func(i, j int) bool {
			if refs[i].ViewID != refs[j].ViewID {
				return refs[i].ViewID < refs[j].ViewID
			}
			return refs[i].VisualID < refs[j].VisualID
		})
	}
	sortRefs(refs)
	sortRefs(fromTraversal)
	require.Equal(t, fromTraversal, refs)
	_ = view
}
