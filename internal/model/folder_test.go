package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFolderAddRemoveInsertElementPreservesOrder(t *testing.T) {
	f := &Folder{ID: "f1"}
	f.AddElement("a")
	f.AddElement("b")
	f.AddElement("c")
	require.Equal(t, []string{"a", "b", "c"}, f.Elements)

	idx := f.RemoveElement("b")
	require.Equal(t, 1, idx)
	require.Equal(t, []string{"a", "c"}, f.Elements)

	require.Equal(t, -1, f.RemoveElement("missing"))

	f.InsertElementAt("b", idx)
	require.Equal(t, []string{"a", "b", "c"}, f.Elements)
}

func TestFolderChildFolderAddRemove(t *testing.T) {
	f := &Folder{ID: "root"}
	f.AddChildFolder("c1")
	f.AddChildFolder("c2")
	require.Equal(t, []string{"c1", "c2"}, f.ChildFolders)

	idx := f.RemoveChildFolder("c1")
	require.Equal(t, 0, idx)
	require.Equal(t, []string{"c2"}, f.ChildFolders)
	require.Equal(t, -1, f.RemoveChildFolder("c1"))
}

func TestResolveFolderByTempID(t *testing.T) {
	m := NewModel()
	target := m.DefaultFolderFor(KindBusinessActor)
	tempIDs := map[string]string{"tmp1": target.ID}

	f, err := m.ResolveFolder("tmp1", "", tempIDs, nil)
	require.NoError(t, err)
	require.Equal(t, target.ID, f.ID)
}

func TestResolveFolderByNameThenKindThenFallback(t *testing.T) {
	m := NewModel()
	business := m.DefaultFolderFor(KindBusinessActor)

	f, err := m.ResolveFolder("Business", "", nil, nil)
	require.NoError(t, err)
	require.Equal(t, business.ID, f.ID)

	f, err = m.ResolveFolder("", FolderBusiness, nil, nil)
	require.NoError(t, err)
	require.Equal(t, business.ID, f.ID)

	fallback := &Folder{ID: "fallback"}
	f, err = m.ResolveFolder("does-not-exist", "", nil, fallback)
	require.NoError(t, err)
	require.Equal(t, "fallback", f.ID)
}

func TestResolveFolderFailsWithNoMatchAndNoFallback(t *testing.T) {
	m := NewModel()
	_, err := m.ResolveFolder("does-not-exist", "", nil, nil)
	require.Error(t, err)
}

func TestFindFolderByNameScansTopLevelBeforeDescending(t *testing.T) {
	m := NewModel()
	business := m.DefaultFolderFor(KindBusinessActor)
	nested := &Folder{ID: "nested", Name: "Business"}
	m.Folders[nested.ID] = nested
	business.AddChildFolder(nested.ID)

	found := m.findFolderByName("Business")
	require.NotNil(t, found)
	require.NotEqual(t, nested.ID, found.ID, "top-level match must win over a same-named descendant")
}

func TestDefaultFolderForReturnsCanonicalFolder(t *testing.T) {
	m := NewModel()
	f := m.DefaultFolderFor(KindApplicationComponent)
	require.NotNil(t, f)
	require.Equal(t, FolderApplication, f.Kind)
}
