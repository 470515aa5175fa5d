package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/ecsdump/pkg/errors"
	"github.com/matzehuels/ecsdump/pkg/graph"
)

func TestAddNodeErrors(t *testing.T) {
	g := graph.New()
	require.ErrorIs(t, g.AddNode(graph.Node{}), graph.ErrInvalidNodeKey)
	require.NoError(t, g.AddNode(graph.Node{Key: "a"}))
	require.ErrorIs(t, g.AddNode(graph.Node{Key: "a"}), graph.ErrDuplicateNodeKey)

	n, ok := g.Node("a")
	require.True(t, ok)
	assert.NotNil(t, n.Meta, "Meta is initialized")
}

func TestAddEdgeErrors(t *testing.T) {
	g := graph.New()
	require.NoError(t, g.AddNode(graph.Node{Key: "a"}))
	require.ErrorIs(t, g.AddEdge(graph.Edge{From: "x", To: "a"}), graph.ErrUnknownSourceNode)
	require.ErrorIs(t, g.AddEdge(graph.Edge{From: "a", To: "x"}), graph.ErrUnknownTargetNode)
}

// TestContainsEdgeSetsParent: containment is stored once, as Parent.
func TestContainsEdgeSetsParent(t *testing.T) {
	g := graph.New()
	require.NoError(t, g.AddNode(graph.Node{Key: "set", Kind: graph.KindSet}))
	require.NoError(t, g.AddNode(graph.Node{Key: "sys", Kind: graph.KindSystem}))
	require.NoError(t, g.AddEdge(graph.Edge{From: "set", To: "sys", Kind: graph.Contains}))

	n, _ := g.Node("sys")
	assert.Equal(t, "set", n.Parent)
	assert.Zero(t, g.EdgeCount())
	assert.Equal(t, []graph.Edge{{From: "set", To: "sys", Kind: graph.Contains}}, g.Contains())
}

func TestRemoveNodeReparentsChildren(t *testing.T) {
	g := graph.New()
	require.NoError(t, g.AddNode(graph.Node{Key: "root", Kind: graph.KindSchedule}))
	require.NoError(t, g.AddNode(graph.Node{Key: "set", Kind: graph.KindSet, Parent: "root"}))
	require.NoError(t, g.AddNode(graph.Node{Key: "a", Parent: "set"}))
	require.NoError(t, g.AddNode(graph.Node{Key: "b", Parent: "root"}))
	require.NoError(t, g.AddEdge(graph.Edge{From: "a", To: "b"}))
	require.NoError(t, g.AddEdge(graph.Edge{From: "set", To: "b"}))

	g.RemoveNode("set")

	a, _ := g.Node("a")
	assert.Equal(t, "root", a.Parent)
	assert.Equal(t, 1, g.EdgeCount())
	assert.Equal(t, []string{"root"}, g.Ancestors("a"))
	assert.True(t, g.Encloses("root", "a"))
	assert.False(t, g.Encloses("a", "root"))
}

func TestValidate(t *testing.T) {
	t.Run("dangling edge", func(t *testing.T) {
		g := graph.New()
		require.NoError(t, g.AddNode(graph.Node{Key: "a"}))
		g.SetEdges([]graph.Edge{{From: "a", To: "ghost"}})
		err := g.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrCodeDanglingEdge))
	})

	t.Run("unknown parent", func(t *testing.T) {
		g := graph.New()
		require.NoError(t, g.AddNode(graph.Node{Key: "a", Parent: "ghost"}))
		assert.True(t, errors.Is(g.Validate(), errors.ErrCodeDanglingEdge))
	})

	t.Run("parent cycle", func(t *testing.T) {
		g := graph.New()
		require.NoError(t, g.AddNode(graph.Node{Key: "a", Parent: "b"}))
		require.NoError(t, g.AddNode(graph.Node{Key: "b", Parent: "a"}))
		err := g.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrCodeHierarchyCycle))
		assert.Contains(t, err.Error(), "a -> b -> a")
	})

	t.Run("valid", func(t *testing.T) {
		g := graph.New()
		require.NoError(t, g.AddNode(graph.Node{Key: "root"}))
		require.NoError(t, g.AddNode(graph.Node{Key: "a", Parent: "root"}))
		require.NoError(t, g.AddEdge(graph.Edge{From: "a", To: "root"}))
		assert.NoError(t, g.Validate())
	})
}

func TestValidateClassification(t *testing.T) {
	g := graph.New()
	require.NoError(t, g.AddNode(graph.Node{Key: "x"}))
	require.NoError(t, g.AddNode(graph.Node{Key: "y"}))
	require.NoError(t, g.AddEdge(graph.Edge{From: "y", To: "x", Kind: graph.Ambiguous}))
	require.NoError(t, graph.ValidateClassification(g))

	require.NoError(t, g.AddEdge(graph.Edge{From: "x", To: "y", Kind: graph.Order}))
	err := graph.ValidateClassification(g)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeOrderAmbiguityConflict))
}

func TestMergeSharesGlobalNodes(t *testing.T) {
	a := graph.New()
	require.NoError(t, a.AddNode(graph.Node{Key: "schedule:A", Kind: graph.KindSchedule, Schedule: "A"}))
	require.NoError(t, a.AddNode(graph.Node{Key: "component:0", Kind: graph.KindResource}))

	b := graph.New()
	require.NoError(t, b.AddNode(graph.Node{Key: "schedule:B", Kind: graph.KindSchedule, Schedule: "B"}))
	require.NoError(t, b.AddNode(graph.Node{Key: "component:0", Kind: graph.KindResource}))
	require.NoError(t, b.AddEdge(graph.Edge{From: "schedule:B", To: "component:0", Kind: graph.Access}))

	dst := graph.New()
	require.NoError(t, graph.Merge(dst, a))
	require.NoError(t, graph.Merge(dst, b))
	assert.Equal(t, 3, dst.NodeCount())
	assert.Equal(t, 1, dst.EdgeCount())

	require.ErrorIs(t, graph.Merge(dst, a), graph.ErrDuplicateNodeKey)
}
