// Package dot writes Graphviz DOT text.
//
// # Overview
//
// [Writer] is a small statement writer with no knowledge of what the graph
// means. Callers hand it already-resolved identifiers and attribute maps; it
// takes care of quoting, escaping, indentation and cluster nesting:
//
//	w := dot.New(dot.Digraph, "schedule")
//	w.GraphAttrs(dot.Attrs{"rankdir": "LR"})
//	w.OpenSubgraph("cluster_physics", dot.Attrs{"label": "Physics"})
//	w.Node("move", dot.Attrs{"label": "move_player"})
//	_ = w.CloseSubgraph()
//	w.Edge("move", "render", nil)
//	fmt.Print(w.String())
//
// # Balanced Output
//
// Subgraphs follow stack discipline: [Writer.CloseSubgraph] always closes the
// most recently opened one. [Writer.String] closes anything still open in
// reverse order before closing the graph, so the result is always balanced.
//
// # Quoting
//
// [Quote] leaves plain identifiers and numerals bare and double-quotes
// everything else. Attribute values of type [HTML] are written between angle
// brackets as HTML-like labels; every string value is quoted.
//
// The writer does not check that edge endpoints were declared; that is the
// caller's contract.
package dot
