// Package model implements the in-memory ArchiMate-style graph: typed
// elements, directed typed relationships, views with visual objects and
// connections, and a folder tree. It exposes only the narrow read/write
// surface the batch engine needs; it is not a general-purpose graph store.
package model

import "github.com/google/uuid"

// NewID allocates a fresh, globally-unique entity id. Every Element,
// Relationship, Folder, View, VisualNode and VisualConnection gets one of
// these at creation time — the model never accepts caller-supplied ids
// for entities it creates (temp-ids are a compiler-level concept, see
// internal/engine, and never become the real id).
func NewID() string {
	return uuid.NewString()
}
