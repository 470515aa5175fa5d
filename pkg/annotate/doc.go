// Package annotate assigns deterministic DOT identifiers and visual
// attributes to a derived graph.
//
// [AssignIDs] gives every node an identifier built from its schedule, its
// kind and its declared name, escaped to the DOT identifier alphabet.
// [Apply] fills [graph.Node.Attrs] and [graph.Edge.Attrs] from a [Style].
// Neither changes the graph's topology.
package annotate
