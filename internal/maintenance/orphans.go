// Package maintenance implements the auxiliary, read-only tooling of
// spec.md §4.8: orphan detection, plus the scheduling that runs it (and the
// idempotency cache's eviction) on an interval.
package maintenance

import (
	"fmt"

	"github.com/archimate-engine/batchmut/internal/model"
)

// Orphan is one entity present in the model's underlying storage but
// unreachable from the folder tree (spec.md §4.8, glossary "Orphan").
type Orphan struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"`
	EntityType string `json:"entity_type"` // "element", "relationship", "view", or "folder"
}

// OrphanReport summarizes one detect_orphans run (spec.md §4.7
// "detect_orphans(model) → OrphanReport").
type OrphanReport struct {
	EntityCounts map[string]int `json:"entity_counts"`
	OrphanCount  int            `json:"orphan_count"`
	Orphans      []Orphan       `json:"orphans"`
	Summary      string         `json:"summary"`
}

// DetectOrphans walks m's folder tree from its roots, collecting every id
// reachable through Folder.Elements/ChildFolders, then reports every
// Element, Relationship, View and Folder present in m's flat maps but not
// reached that way. The engine never auto-repairs an orphan (spec.md
// §4.8); this routine only reports.
func DetectOrphans(m *model.Model) OrphanReport {
	reachableEntities := make(map[string]bool)
	reachableFolders := make(map[string]bool)

	var walk func(folderID string)
	walk = func(folderID string) {
		if reachableFolders[folderID] {
			return
		}
		f := m.Folders[folderID]
		if f == nil {
			return
		}
		reachableFolders[folderID] = true
		for _, id := range f.Elements {
			reachableEntities[id] = true
		}
		for _, childID := range f.ChildFolders {
			walk(childID)
		}
	}
	for _, rootID := range m.RootFolderIDs {
		walk(rootID)
	}

	report := OrphanReport{
		EntityCounts: map[string]int{
			"element":      len(m.Elements),
			"relationship": len(m.Relationships),
			"view":         len(m.Views),
			"folder":       len(m.Folders),
		},
		Orphans: make([]Orphan, 0),
	}

	for id, e := range m.Elements {
		if !reachableEntities[id] {
			report.Orphans = append(report.Orphans, Orphan{ID: id, Kind: e.Kind, EntityType: "element"})
		}
	}
	for id, r := range m.Relationships {
		if !reachableEntities[id] {
			report.Orphans = append(report.Orphans, Orphan{ID: id, Kind: r.Kind, EntityType: "relationship"})
		}
	}
	for id, v := range m.Views {
		if !reachableEntities[id] {
			report.Orphans = append(report.Orphans, Orphan{ID: id, Kind: v.Kind, EntityType: "view"})
		}
	}
	for id, f := range m.Folders {
		if !reachableFolders[id] {
			report.Orphans = append(report.Orphans, Orphan{ID: id, Kind: string(f.Kind), EntityType: "folder"})
		}
	}

	report.OrphanCount = len(report.Orphans)
	if report.OrphanCount == 0 {
		report.Summary = "No orphans found. The folder tree accounts for every live entity."
	} else {
		report.Summary = fmt.Sprintf("Found %d orphan(s) unreachable from the folder tree.", report.OrphanCount)
	}
	return report
}
