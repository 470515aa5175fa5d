package render

import (
	"maps"

	"github.com/matzehuels/ecsdump/pkg/annotate"
	"github.com/matzehuels/ecsdump/pkg/dot"
	"github.com/matzehuels/ecsdump/pkg/errors"
	"github.com/matzehuels/ecsdump/pkg/graph"
)

// Header starts a digraph named name with the graph, node and edge defaults
// of style. Entries in extra override the style's graph attributes.
func Header(name string, style annotate.Style, extra dot.Attrs) *dot.Writer {
	w := dot.New(dot.Digraph, name)
	attrs := style.GraphAttrs()
	maps.Copy(attrs, extra)
	w.GraphAttrs(attrs)
	w.NodeDefaults(style.NodeDefaults())
	w.EdgeDefaults(style.EdgeDefaults())
	return w
}

// WriteTree writes the children of parent, recursively. Containers become
// clusters carrying their node attributes; a container with edges also gets
// a hidden marker node for the edges to attach to. An empty parent writes
// the whole forest.
func WriteTree(w *dot.Writer, g *graph.Graph, parent string) error {
	for _, n := range g.Children(parent) {
		if !n.Kind.IsContainer() {
			w.Node(n.ID, n.Attrs)
			continue
		}
		w.OpenSubgraph(n.ID, n.Attrs)
		if g.Degree(n.Key) > 0 {
			w.Node(annotate.Endpoint(n), annotate.MarkerAttrs())
		}
		if err := WriteTree(w, g, n.Key); err != nil {
			return err
		}
		if err := w.CloseSubgraph(); err != nil {
			return err
		}
	}
	return nil
}

// WriteEdges writes every edge of g. Edges for which flip returns true are
// drawn reversed, ports included. A nil flip draws all edges as stored.
func WriteEdges(w *dot.Writer, g *graph.Graph, flip func(graph.Edge) bool) error {
	for _, e := range g.Edges() {
		from, ok := g.Node(e.From)
		if !ok {
			return errors.New(errors.ErrCodeDanglingEdge, "edge source %s is not in the graph", e.From)
		}
		to, ok := g.Node(e.To)
		if !ok {
			return errors.New(errors.ErrCodeDanglingEdge, "edge target %s is not in the graph", e.To)
		}

		a, ap := annotate.Endpoint(from), e.FromPort
		b, bp := annotate.Endpoint(to), e.ToPort
		attrs := e.Attrs
		if flip != nil && flip(e) {
			a, b = b, a
			ap, bp = bp, ap
			attrs = swapClusterEnds(attrs)
		}
		w.EdgePorts(a, ap, b, bp, attrs)
	}
	return nil
}

// FlipReads reports whether e is a read access edge. Reads are stored
// system to component; data views draw them component to system.
func FlipReads(e graph.Edge) bool {
	return e.Kind == graph.Access && e.Access == graph.Read
}

func swapClusterEnds(attrs dot.Attrs) dot.Attrs {
	tail, hasTail := attrs["ltail"]
	head, hasHead := attrs["lhead"]
	if !hasTail && !hasHead {
		return attrs
	}
	out := maps.Clone(attrs)
	delete(out, "ltail")
	delete(out, "lhead")
	if hasTail {
		out["lhead"] = tail
	}
	if hasHead {
		out["ltail"] = head
	}
	return out
}
