package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// snapshot is the on-disk shape SaveFile/LoadFile use. This is a host
// storage convenience for cmd/batchmutd, not the plan wire format spec.md
// §6 defines — a Model's own field names serialise directly since nothing
// outside this process reads the file.
type snapshot struct {
	Folders       map[string]*Folder       `json:"folders"`
	Elements      map[string]*Element      `json:"elements"`
	Relationships map[string]*Relationship `json:"relationships"`
	Views         map[string]*View         `json:"views"`
	RootFolderIDs []string                 `json:"rootFolderIds"`
}

// SaveFile writes m to path as JSON.
func (m *Model) SaveFile(path string) error {
	snap := snapshot{
		Folders:       m.Folders,
		Elements:      m.Elements,
		Relationships: m.Relationships,
		Views:         m.Views,
		RootFolderIDs: m.RootFolderIDs,
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding model snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing model snapshot %s: %w", path, err)
	}
	return nil
}

// LoadFile reads a Model snapshot previously written by SaveFile. A
// missing file is not an error: it returns a fresh NewModel so a daemon
// can start from an empty workspace on first run.
func LoadFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewModel(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading model snapshot %s: %w", path, err)
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding model snapshot %s: %w", path, err)
	}
	m := &Model{
		Folders:       snap.Folders,
		Elements:      snap.Elements,
		Relationships: snap.Relationships,
		Views:         snap.Views,
		RootFolderIDs: snap.RootFolderIDs,
	}
	if m.Folders == nil {
		m.Folders = make(map[string]*Folder)
	}
	if m.Elements == nil {
		m.Elements = make(map[string]*Element)
	}
	if m.Relationships == nil {
		m.Relationships = make(map[string]*Relationship)
	}
	if m.Views == nil {
		m.Views = make(map[string]*View)
	}
	return m, nil
}
