package transform

import "github.com/matzehuels/ecsdump/pkg/graph"

// MergeAccess folds every Access edge between one system and one component
// into a single edge. If any of them is a write, the result is a write.
// It returns how many edges were folded away.
func MergeAccess(g *graph.Graph) int {
	type pair struct{ from, to string }
	first := make(map[pair]int)
	edges := g.Edges()
	out := edges[:0]
	for _, e := range edges {
		if e.Kind != graph.Access {
			out = append(out, e)
			continue
		}
		p := pair{e.From, e.To}
		if i, ok := first[p]; ok {
			if e.Access == graph.Write {
				out[i].Access = graph.Write
			}
			continue
		}
		first[p] = len(out)
		out = append(out, e)
	}
	merged := len(edges) - len(out)
	g.SetEdges(out)
	return merged
}

// Dedupe removes repeated edges of the same kind between the same ordered
// pair, keeping the first. Ambiguous edges are undirected: their endpoints
// are stored in sorted order and duplicates in either direction are removed.
func Dedupe(g *graph.Graph) int {
	type key struct {
		kind             graph.EdgeKind
		access           graph.AccessKind
		from, to         string
		fromPort, toPort string
	}
	seen := make(map[key]bool)
	edges := g.Edges()
	out := edges[:0]
	for _, e := range edges {
		if e.Kind == graph.Ambiguous && e.To < e.From {
			e.From, e.To = e.To, e.From
		}
		k := key{e.Kind, e.Access, e.From, e.To, e.FromPort, e.ToPort}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, e)
	}
	removed := len(edges) - len(out)
	g.SetEdges(out)
	return removed
}
