// Package transform reduces a derived graph to what is worth drawing.
//
// # Overview
//
// Every function here mutates a [graph.Graph] in place and reports how much
// it changed. [Simplify] runs them in a fixed order:
//
//  1. [graph.Graph.Validate] and [graph.ValidateClassification] on the raw graph
//  2. [SelectEdges] keeps the requested edge kinds
//  3. [DropNodes] removes node kinds the view does not draw
//  4. [FilterSystems] drops systems rejected by the filter
//  5. [PruneEmptySets] drops sets left without systems
//  6. [MergeAccess] folds read and write of one component into one edge
//  7. [Dedupe] drops repeated edges
//  8. [TransitiveReduction] drops implied ordering edges
//  9. [CollapseSingleSets] inlines sets with a single child
//  10. [PruneSingleEdge] and [PruneOrphans] drop sparsely connected nodes
//
// # Classification
//
// Whether two systems are ordered or ambiguous is decided on the unreduced
// edges. Transitive reduction is a display transform and runs after that
// check.
//
// # Failure Semantics
//
// Filtering everything away is not an error. Malformed containment is
// reported by validation before any traversal, so no step can loop on a
// cycle.
package transform
