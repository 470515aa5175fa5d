package transform

import "github.com/matzehuels/ecsdump/pkg/graph"

// TransitiveReduction removes redundant Order edges from the graph.
//
// An edge (u, v) is removed when v is still reachable from u without it. For
// example, if A→B, B→C and A→C all exist, A→C is removed because A reaches C
// via B. Other edge kinds are never touched.
//
// An edge is always kept when u and v sit in different containers and
// neither container encloses the other: the cluster boxes already separate
// them, and the direct edge is what shows the order.
//
// # Algorithm
//
// Edges are visited in stored order. Each candidate is checked with a DFS
// over the current Order edges minus the candidate, and removed immediately
// when redundant. Because every removal is checked against the graph as it
// stands, reachability is preserved even when the input contains a cycle,
// where a closure-based reduction could drop every edge of the cycle.
//
// # Performance
//
// Time complexity is O(E·(V+E)). Display graphs are small enough that the
// O(V²) reachability matrix of a closure-based approach is not worth it.
func TransitiveReduction(g *graph.Graph) int {
	edges := g.Edges()
	alive := make([]bool, len(edges))
	adjacency := make(map[string][]int)
	for i, e := range edges {
		if e.Kind != graph.Order {
			continue
		}
		alive[i] = true
		adjacency[e.From] = append(adjacency[e.From], i)
	}

	reachable := func(from, to string, skip int) bool {
		visited := map[string]bool{from: true}
		stack := []string{from}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, i := range adjacency[cur] {
				if i == skip || !alive[i] {
					continue
				}
				next := edges[i].To
				if next == to {
					return true
				}
				if !visited[next] {
					visited[next] = true
					stack = append(stack, next)
				}
			}
		}
		return false
	}

	removed := 0
	for i, e := range edges {
		if !alive[i] || e.From == e.To || keepAcrossContainers(g, e) {
			continue
		}
		if reachable(e.From, e.To, i) {
			alive[i] = false
			removed++
		}
	}

	if removed == 0 {
		return 0
	}
	out := make([]graph.Edge, 0, len(edges)-removed)
	for i, e := range edges {
		if alive[i] || e.Kind != graph.Order {
			out = append(out, e)
		}
	}
	g.SetEdges(out)
	return removed
}

func keepAcrossContainers(g *graph.Graph, e graph.Edge) bool {
	from, ok1 := g.Node(e.From)
	to, ok2 := g.Node(e.To)
	if !ok1 || !ok2 {
		return false
	}
	cu, cv := from.Parent, to.Parent
	if cu == cv || cu == "" || cv == "" {
		return false
	}
	return !g.Encloses(cu, cv) && !g.Encloses(cv, cu)
}
