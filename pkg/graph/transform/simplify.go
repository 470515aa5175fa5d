package transform

import "github.com/matzehuels/ecsdump/pkg/graph"

// Simplify validates g and applies the reduction steps in their fixed
// order. It returns HIERARCHY_CYCLE or DANGLING_EDGE for a malformed graph
// and ORDER_AMBIGUITY_CONFLICT when a pair is both ordered and ambiguous.
// An empty result is not an error.
func Simplify(g *graph.Graph, opts Options) (Result, error) {
	var r Result
	if err := g.Validate(); err != nil {
		return r, err
	}
	if err := graph.ValidateClassification(g); err != nil {
		return r, err
	}

	if opts.EdgeKinds != nil {
		r.EdgesDropped = SelectEdges(g, opts.EdgeKinds...)
	}
	if len(opts.DropKinds) > 0 {
		r.NodesDropped = DropNodes(g, opts.DropKinds...)
	}
	r.SystemsFiltered = FilterSystems(g, opts.IncludeSystem)
	if !opts.KeepEmptySets {
		r.SetsPruned = PruneEmptySets(g)
	}
	r.EdgesMerged = MergeAccess(g)
	r.EdgesMerged += Dedupe(g)
	if !opts.SkipTransitiveReduction {
		r.TransitiveEdgesRemoved = TransitiveReduction(g)
	}
	if opts.CollapseSingleSets {
		r.SetsCollapsed = CollapseSingleSets(g)
	}
	if len(opts.PruneSingleEdge) > 0 {
		r.OrphansPruned += PruneSingleEdge(g, opts.PruneSingleEdge...)
	}
	if len(opts.PruneOrphans) > 0 {
		r.OrphansPruned += PruneOrphans(g, opts.PruneOrphans...)
	}
	return r, nil
}
