// Package render turns simplified graphs into DOT documents.
//
// # Overview
//
// Each graph kind has its own subpackage with the same shape: a Settings
// struct, a Context holding one extracted and simplified graph, an Extract
// function and a Print function.
//
//   - [schedule]: one schedule with its sets drawn as clusters
//   - [data]: systems of several schedules and the components they access
//   - [event]: systems and the events they send and receive
//   - [rendergraph]: render nodes with slot ports and nested sub-graphs
//
// This package holds the pieces they share: [Header] starts a styled
// digraph, [WriteTree] nests containers as clusters and [WriteEdges] draws
// edges between the annotated identifiers.
//
//	w := render.Header("schedule", style, dot.Attrs{"rankdir": "LR"})
//	if err := render.WriteTree(w, g, root); err != nil {
//		return "", err
//	}
//	if err := render.WriteEdges(w, g, nil); err != nil {
//		return "", err
//	}
//	out := w.String()
//
// [schedule]: github.com/matzehuels/ecsdump/pkg/render/schedule
// [data]: github.com/matzehuels/ecsdump/pkg/render/data
// [event]: github.com/matzehuels/ecsdump/pkg/render/event
// [rendergraph]: github.com/matzehuels/ecsdump/pkg/render/rendergraph
package render
