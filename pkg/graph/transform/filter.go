package transform

import (
	"slices"

	"github.com/matzehuels/ecsdump/pkg/ecs"
	"github.com/matzehuels/ecsdump/pkg/graph"
)

// SelectEdges keeps only edges of the given kinds and returns how many were
// removed.
func SelectEdges(g *graph.Graph, kinds ...graph.EdgeKind) int {
	return g.RemoveEdgesFunc(func(e graph.Edge) bool { return !slices.Contains(kinds, e.Kind) })
}

// DropNodes removes every node of the given kinds. Children of a dropped
// container move to its parent.
func DropNodes(g *graph.Graph, kinds ...graph.NodeKind) int {
	nodes := g.NodesOfKind(kinds...)
	for _, n := range nodes {
		g.RemoveNode(n.Key)
	}
	return len(nodes)
}

// FilterSystems removes every system node rejected by keep, together with
// the edges touching it. A nil filter keeps everything. Nodes without a
// system in their metadata are kept.
func FilterSystems(g *graph.Graph, keep ecs.SystemFilter) int {
	if keep == nil {
		return 0
	}
	removed := 0
	for _, n := range g.NodesOfKind(graph.KindSystem) {
		sys, ok := n.Meta["system"].(ecs.System)
		if !ok || keep.Includes(sys) {
			continue
		}
		g.RemoveNode(n.Key)
		removed++
	}
	return removed
}

// PruneEmptySets removes sets with no system descendant. Schedule roots are
// never removed. The graph must have acyclic containment.
func PruneEmptySets(g *graph.Graph) int {
	populated := make(map[string]bool)
	for _, n := range g.NodesOfKind(graph.KindSystem) {
		for _, a := range g.Ancestors(n.Key) {
			populated[a] = true
		}
	}

	removed := 0
	for _, n := range g.NodesOfKind(graph.KindSet) {
		if !populated[n.Key] {
			g.RemoveNode(n.Key)
			removed++
		}
	}
	return removed
}

// PruneOrphans removes nodes of the given kinds that have no edges left.
func PruneOrphans(g *graph.Graph, kinds ...graph.NodeKind) int {
	removed := 0
	for _, n := range g.NodesOfKind(kinds...) {
		if g.Degree(n.Key) == 0 {
			g.RemoveNode(n.Key)
			removed++
		}
	}
	return removed
}

// PruneSingleEdge removes nodes of the given kinds that have exactly one edge.
// It declutters data and event graphs where a component is touched by a
// single system.
func PruneSingleEdge(g *graph.Graph, kinds ...graph.NodeKind) int {
	removed := 0
	for _, n := range g.NodesOfKind(kinds...) {
		if g.Degree(n.Key) == 1 {
			g.RemoveNode(n.Key)
			removed++
		}
	}
	return removed
}
