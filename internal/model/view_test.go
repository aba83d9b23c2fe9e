package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVisualNodeChildOrderingRoundTrips(t *testing.T) {
	parent := &VisualNode{ID: "p"}
	a := &VisualNode{ID: "a"}
	b := &VisualNode{ID: "b"}
	parent.AddChild(a)
	parent.AddChild(b)
	require.Equal(t, []*VisualNode{a, b}, parent.Children)

	idx := parent.RemoveChild("a")
	require.Equal(t, 0, idx)
	require.Equal(t, []*VisualNode{b}, parent.Children)

	parent.InsertChildAt(a, idx)
	require.Equal(t, []*VisualNode{a, b}, parent.Children)
}

func TestViewRootChildOrderingRoundTrips(t *testing.T) {
	v := &View{ID: "v"}
	a := &VisualNode{ID: "a"}
	b := &VisualNode{ID: "b"}
	v.AddChild(a)
	v.AddChild(b)

	idx := v.RemoveChild("b")
	require.Equal(t, 1, idx)
	require.Equal(t, []*VisualNode{a}, v.Children)

	v.InsertChildAt(b, idx)
	require.Equal(t, []*VisualNode{a, b}, v.Children)
	require.Equal(t, -1, v.RemoveChild("missing"))
}

func TestVisualNodeSourceAndTargetConnections(t *testing.T) {
	n := &VisualNode{ID: "n"}
	c1 := &VisualConnection{ID: "c1"}
	c2 := &VisualConnection{ID: "c2"}

	n.AddSourceConnection(c1)
	n.AddSourceConnection(c2)
	require.Equal(t, -1, n.RemoveTargetConnection("c1"))
	idx := n.RemoveSourceConnection("c1")
	require.Equal(t, 0, idx)
	require.Equal(t, []*VisualConnection{c2}, n.SourceConnections)

	n.AddTargetConnection(c1)
	idx = n.RemoveTargetConnection("c1")
	require.Equal(t, 0, idx)
	require.Empty(t, n.TargetConnections)
}
