package model

import (
	"fmt"
	"strings"
)

// AddElement appends entityID (an Element or Relationship id) to the
// folder's ordered Elements list. Kind compatibility (invariant 1) is the
// caller's responsibility to check via FolderKindFor before calling this —
// AddElement itself only maintains ordering and membership, so that
// sub-commands (internal/engine) can use it as the atomic "install into
// container" primitive the spec's add-to-ordered-list sub-command needs.
func (f *Folder) AddElement(entityID string) {
	f.Elements = append(f.Elements, entityID)
}

// RemoveElement removes the first occurrence of entityID, returning the
// index it was removed from (or -1 if absent) so a revert sub-command can
// re-insert it at the same position.
func (f *Folder) RemoveElement(entityID string) int {
	for i, id := range f.Elements {
		if id == entityID {
			f.Elements = append(f.Elements[:i], f.Elements[i+1:]...)
			return i
		}
	}
	return -1
}

// InsertElementAt re-inserts entityID at index (clamped to the list's
// current bounds), the inverse of RemoveElement.
func (f *Folder) InsertElementAt(entityID string, index int) {
	if index < 0 || index > len(f.Elements) {
		index = len(f.Elements)
	}
	f.Elements = append(f.Elements, "")
	copy(f.Elements[index+1:], f.Elements[index:])
	f.Elements[index] = entityID
}

// AddChildFolder appends a subfolder id, ordered.
func (f *Folder) AddChildFolder(folderID string) {
	f.ChildFolders = append(f.ChildFolders, folderID)
}

// RemoveChildFolder removes the first occurrence of folderID, returning its
// prior index or -1.
func (f *Folder) RemoveChildFolder(folderID string) int {
	for i, id := range f.ChildFolders {
		if id == folderID {
			f.ChildFolders = append(f.ChildFolders[:i], f.ChildFolders[i+1:]...)
			return i
		}
	}
	return -1
}

// ResolveFolder finds a folder by, in order, temp-id (via tempIDs, which
// maps a plan-local temp id to a real folder id already created earlier in
// the same plan), id, case-insensitive name (top-level folders scanned
// first, then descendants), or folder-kind token. It returns the first
// matching strategy and fails only when none match and no default is given
// (spec.md §4.1's resolver order).
func (m *Model) ResolveFolder(ref string, kindToken FolderKind, tempIDs map[string]string, fallback *Folder) (*Folder, error) {
	if ref != "" {
		if realID, ok := tempIDs[ref]; ok {
			if f, ok := m.Folders[realID]; ok {
				return f, nil
			}
		}
		if f, ok := m.Folders[ref]; ok {
			return f, nil
		}
		if f := m.findFolderByName(ref); f != nil {
			return f, nil
		}
	}
	if kindToken != "" {
		if f := m.findFolderByKind(kindToken); f != nil {
			return f, nil
		}
	}
	if fallback != nil {
		return fallback, nil
	}
	return nil, fmt.Errorf("no folder resolves from ref=%q kind=%q", ref, kindToken)
}

func (m *Model) findFolderByName(name string) *Folder {
	return m.findFolderByNameIn(m.RootFolderIDs, name, true)
}

func (m *Model) findFolderByNameIn(ids []string, name string, topLevel bool) *Folder {
	for _, id := range ids {
		f := m.Folders[id]
		if f == nil {
			continue
		}
		if strings.EqualFold(f.Name, name) {
			return f
		}
	}
	if !topLevel {
		return nil
	}
	// Descend only after every top-level name has been checked, preserving
	// "name lookup ... scans top-level folders first, then descends."
	for _, id := range ids {
		f := m.Folders[id]
		if f == nil {
			continue
		}
		if found := m.findFolderByNameIn(f.ChildFolders, name, false); found != nil {
			return found
		}
	}
	return nil
}

func (m *Model) findFolderByKind(kind FolderKind) *Folder {
	for _, id := range m.RootFolderIDs {
		if f := m.Folders[id]; f != nil && f.Kind == kind {
			return f
		}
	}
	for _, f := range m.Folders {
		if f.Kind == kind {
			return f
		}
	}
	return nil
}

// DefaultFolderFor returns the canonical top-level folder for kind, used as
// the resolver's last-resort default (spec.md §4.1: "... → router default").
func (m *Model) DefaultFolderFor(kind string) *Folder {
	return m.findFolderByKind(FolderKindFor(kind))
}
