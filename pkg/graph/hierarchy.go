package graph

import (
	"slices"
	"strings"

	"github.com/matzehuels/ecsdump/pkg/ecs"
	"github.com/matzehuels/ecsdump/pkg/errors"
)

// CheckHierarchy reports HIERARCHY_CYCLE if the host's raw set hierarchy of
// schedule label contains a cycle. The error names the keys on the cycle in
// order. Nothing is removed to break it.
//
// # Algorithm
//
// Depth-first search with white/gray/black coloring, started from every set
// in order of first appearance. Reaching a gray node closes a cycle.
func CheckHierarchy(label ecs.Label, hierarchy []ecs.Membership) error {
	const (
		white = iota
		gray
		black
	)

	children := make(map[ecs.NodeID][]ecs.NodeID)
	var starts []ecs.NodeID
	for _, m := range hierarchy {
		if _, ok := children[m.Set]; !ok {
			starts = append(starts, m.Set)
		}
		children[m.Set] = append(children[m.Set], m.Member)
	}

	color := make(map[ecs.NodeID]int)
	var stack, cycle []ecs.NodeID

	var dfs func(id ecs.NodeID) bool
	dfs = func(id ecs.NodeID) bool {
		color[id] = gray
		stack = append(stack, id)
		for _, child := range children[id] {
			switch color[child] {
			case white:
				if dfs(child) {
					return true
				}
			case gray:
				start := slices.Index(stack, child)
				cycle = append(slices.Clone(stack[start:]), child)
				return true
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
		return false
	}

	for _, id := range starts {
		if color[id] == white && dfs(id) {
			keys := make([]string, len(cycle))
			for i, c := range cycle {
				keys[i] = NodeKey(label, c)
			}
			return errors.New(errors.ErrCodeHierarchyCycle, "set hierarchy cycle: %s", strings.Join(keys, " -> "))
		}
	}
	return nil
}
