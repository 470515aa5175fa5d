package graph

import (
	"strings"

	"github.com/matzehuels/ecsdump/pkg/errors"
)

// Validate checks the structural invariants of the graph:
//   - every edge endpoint exists (DANGLING_EDGE otherwise)
//   - every parent exists (DANGLING_EDGE otherwise)
//   - every parent chain ends at a top-level node (HIERARCHY_CYCLE otherwise)
func (g *Graph) Validate() error {
	for _, e := range g.edges {
		if !g.HasNode(e.From) {
			return errors.New(errors.ErrCodeDanglingEdge, "%s edge references unknown node %s", e.Kind, e.From)
		}
		if !g.HasNode(e.To) {
			return errors.New(errors.ErrCodeDanglingEdge, "%s edge references unknown node %s", e.Kind, e.To)
		}
	}

	for _, key := range g.order {
		n := g.nodes[key]
		if n.Parent != "" && !g.HasNode(n.Parent) {
			return errors.New(errors.ErrCodeDanglingEdge, "node %s has unknown parent %s", key, n.Parent)
		}
	}

	for _, key := range g.order {
		path := []string{key}
		seen := map[string]bool{key: true}
		for cur := g.nodes[key]; cur.Parent != ""; cur = g.nodes[cur.Parent] {
			path = append(path, cur.Parent)
			if seen[cur.Parent] {
				return errors.New(errors.ErrCodeHierarchyCycle, "containment cycle: %s", strings.Join(path, " -> "))
			}
			seen[cur.Parent] = true
		}
	}
	return nil
}

// ValidateClassification reports ORDER_AMBIGUITY_CONFLICT when a pair is
// joined by both an Order edge (in either direction) and an Ambiguous edge.
// It must run before transitive reduction.
func ValidateClassification(g *Graph) error {
	ordered := make(map[[2]string]bool)
	for _, e := range g.edges {
		if e.Kind == Order {
			ordered[sortedPair(e.From, e.To)] = true
		}
	}
	for _, e := range g.edges {
		if e.Kind == Ambiguous && ordered[sortedPair(e.From, e.To)] {
			return errors.New(errors.ErrCodeOrderAmbiguityConflict, "%s and %s are both ordered and ambiguous", e.From, e.To)
		}
	}
	return nil
}

func sortedPair(a, b string) [2]string {
	if b < a {
		return [2]string{b, a}
	}
	return [2]string{a, b}
}
