package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/archimate-engine/batchmut/internal/model"
)

// Factory is the host-provided capability that constructs empty entities
// with a freshly allocated id (spec.md §6, capability 3). The compiler
// calls this during Pass 1 to allocate the bare object before any
// sub-command installs it anywhere; DefaultFactory below is the in-process
// implementation used when no host override is supplied.
type Factory interface {
	NewElement() *model.Element
	NewRelationship() *model.Relationship
	NewFolder() *model.Folder
	NewView() *model.View
	NewVisualNode() *model.VisualNode
	NewVisualConnection() *model.VisualConnection
}

// DefaultFactory allocates entities with model.NewID(), the in-process
// uuid-backed id allocator. It is what cmd/batchmutd wires in by default;
// tests and alternate hosts may supply their own Factory.
type DefaultFactory struct{}

func (DefaultFactory) NewElement() *model.Element           { return &model.Element{ID: model.NewID()} }
func (DefaultFactory) NewRelationship() *model.Relationship { return &model.Relationship{ID: model.NewID()} }
func (DefaultFactory) NewFolder() *model.Folder             { return &model.Folder{ID: model.NewID()} }
func (DefaultFactory) NewView() *model.View                 { return &model.View{ID: model.NewID()} }
func (DefaultFactory) NewVisualNode() *model.VisualNode     { return &model.VisualNode{ID: model.NewID()} }
func (DefaultFactory) NewVisualConnection() *model.VisualConnection {
	return &model.VisualConnection{ID: model.NewID()}
}

// CommandStack is the host-provided undo/redo stack (spec.md §6, capability
// 2): "execute(transaction) ... the stack promises exactly-once apply, and
// pairs each transaction with a single undo entry."
type CommandStack interface {
	Execute(ctx context.Context, tx Transaction) error
}

// Clock is the host-provided capability used only for the inter-chunk
// settle delay (spec.md §6, capability 4).
type Clock interface {
	Sleep(ctx context.Context, d time.Duration)
}

// RealClock sleeps for real, honouring context cancellation.
type RealClock struct{}

func (RealClock) Sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// Host bundles the three host-provided collaborators the engine consumes,
// plus a logger for operational visibility (retry warnings, chunk
// progress). The model reader of spec.md §6 capability 1 is not wrapped in
// an interface here: the model is in-process (spec.md §1/§5), so
// internal/model's free functions over *model.Model already serve that
// role directly.
type Host struct {
	Factory Factory
	Stack   CommandStack
	Clock   Clock
	Logger  *slog.Logger
}
