package transform

import "github.com/matzehuels/ecsdump/pkg/graph"

// CollapseSingleSets inlines every set that has exactly one child and no
// edges of its own. The child moves to the set's parent. Collapsing repeats
// until no such set is left, so chains of single-child sets disappear
// entirely.
func CollapseSingleSets(g *graph.Graph) int {
	collapsed := 0
	for {
		changed := false
		for _, n := range g.NodesOfKind(graph.KindSet) {
			children := g.Children(n.Key)
			if len(children) != 1 || g.Degree(n.Key) != 0 {
				continue
			}
			g.RemoveNode(n.Key)
			collapsed++
			changed = true
		}
		if !changed {
			return collapsed
		}
	}
}
