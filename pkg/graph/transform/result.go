package transform

import (
	"github.com/matzehuels/ecsdump/pkg/ecs"
	"github.com/matzehuels/ecsdump/pkg/graph"
)

// Result contains metrics about the transformations [Simplify] applied.
type Result struct {
	// EdgesDropped counts edges removed by edge-kind selection.
	EdgesDropped int

	// NodesDropped counts nodes removed by kind.
	NodesDropped int

	// SystemsFiltered counts systems rejected by the filter.
	SystemsFiltered int

	// SetsPruned counts sets removed because no system was left inside.
	SetsPruned int

	// EdgesMerged counts access edges folded together plus exact duplicates
	// removed.
	EdgesMerged int

	// TransitiveEdgesRemoved counts ordering edges implied by other paths.
	TransitiveEdgesRemoved int

	// SetsCollapsed counts single-child sets that were inlined.
	SetsCollapsed int

	// OrphansPruned counts component nodes removed for having no (or a
	// single) edge.
	OrphansPruned int
}

// Options configures [Simplify].
//
// The zero value keeps every edge kind and every system, prunes empty sets
// and applies transitive reduction.
type Options struct {
	// EdgeKinds selects which edge kinds survive. Nil keeps all.
	EdgeKinds []graph.EdgeKind

	// DropKinds lists node kinds removed outright, such as sets in the
	// data graph.
	DropKinds []graph.NodeKind

	// IncludeSystem filters systems. Nil keeps all.
	IncludeSystem ecs.SystemFilter

	// KeepEmptySets disables [PruneEmptySets].
	KeepEmptySets bool

	// SkipTransitiveReduction keeps implied ordering edges.
	SkipTransitiveReduction bool

	// CollapseSingleSets enables [CollapseSingleSets].
	CollapseSingleSets bool

	// PruneOrphans lists node kinds removed when they have no edges.
	PruneOrphans []graph.NodeKind

	// PruneSingleEdge lists node kinds removed when they have exactly one
	// edge.
	PruneSingleEdge []graph.NodeKind
}
