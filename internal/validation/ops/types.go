// Package ops implements the per-operation decode and schema validation
// step of spec.md §4.5 checks 2–4 and 6: one decoded, normalised Go struct
// per wire operation tag, plus the registry that dispatches a raw JSON
// entry to its decoder. Grounded on the teacher's internal/validation
// package, which dispatches entity-kind-specific validators through a
// Registry keyed by type name; here the key is an operation tag instead of
// an entity type.
package ops

import "github.com/archimate-engine/batchmut/internal/model"

// PropertyInput is the wire shape of one property entry — an array of
// these (not a JSON object) is what preserves the ordered map<string,string>
// spec.md §3 calls for; a JSON object's key order is not a portable
// guarantee.
type PropertyInput struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func toProperties(in []PropertyInput) model.Properties {
	if in == nil {
		return nil
	}
	out := make(model.Properties, 0, len(in))
	for _, p := range in {
		out = append(out, model.Property{Key: p.Key, Value: p.Value})
	}
	return out
}

// EntitySpec is the wire shape shared by createOrGetElement's create/match
// objects and createOrGetRelationship's create/match objects.
type EntitySpec struct {
	Type          string          `json:"type"`
	Name          string          `json:"name,omitempty"`
	SourceID      string          `json:"sourceId,omitempty"`
	TargetID      string          `json:"targetId,omitempty"`
	Documentation string          `json:"documentation,omitempty"`
	Properties    []PropertyInput `json:"properties,omitempty"`
	Folder        string          `json:"folder,omitempty"`
	AccessType    string          `json:"accessType,omitempty"`
	Strength      string          `json:"strength,omitempty"`
}
