package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveFileThenLoadFileRoundTrips(t *testing.T) {
	m := NewModel()
	folder := m.DefaultFolderFor(KindBusinessActor)
	e := &Element{ID: NewID(), Kind: KindBusinessActor, Name: "Alice", ParentFolder: folder.ID}
	m.Elements[e.ID] = e
	folder.AddElement(e.ID)

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, m.SaveFile(path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, loaded.Elements, len(m.Elements))
	require.NotNil(t, loaded.FindElement(e.ID))
	require.Equal(t, "Alice", loaded.FindElement(e.ID).Name)
	require.Equal(t, m.RootFolderIDs, loaded.RootFolderIDs)
}

func TestLoadFileMissingReturnsFreshModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.json")
	m, err := LoadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, m.RootFolderIDs)
	require.Empty(t, m.Elements)
}

func TestLoadFileRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	_, err := LoadFile(path)
	require.Error(t, err)
}
