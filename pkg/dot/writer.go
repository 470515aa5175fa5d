package dot

import (
	"errors"
	"io"
	"maps"
	"slices"
	"strings"
)

// ErrNoOpenSubgraph is returned by [Writer.CloseSubgraph] when no subgraph is
// open.
var ErrNoOpenSubgraph = errors.New("no open subgraph")

// Kind selects directed or undirected output.
type Kind int

const (
	// Digraph writes a directed graph with "->" edges.
	Digraph Kind = iota
	// Graph writes an undirected graph with "--" edges.
	Graph
)

func (k Kind) keyword() string {
	if k == Graph {
		return "graph"
	}
	return "digraph"
}

func (k Kind) edgeOp() string {
	if k == Graph {
		return " -- "
	}
	return " -> "
}

// Attrs is an attribute list. Keys are written in sorted order. Values are
// quoted strings unless they are [HTML]; other types are formatted with
// fmt.Sprint and quoted.
type Attrs map[string]any

// Writer accumulates DOT statements for one graph.
//
// The zero value is not usable; create writers with [New].
type Writer struct {
	kind  Kind
	buf   strings.Builder
	depth int
}

// New starts a graph of the given kind. An empty name writes an anonymous
// graph.
func New(kind Kind, name string) *Writer {
	w := &Writer{kind: kind}
	w.buf.WriteString(kind.keyword())
	w.buf.WriteByte(' ')
	if name != "" {
		w.buf.WriteString(Quote(name))
		w.buf.WriteByte(' ')
	}
	w.buf.WriteString("{\n")
	return w
}

// Depth returns the number of open subgraphs.
func (w *Writer) Depth() int { return w.depth }

// GraphAttrs writes one "key=value;" statement per attribute in the current
// scope.
func (w *Writer) GraphAttrs(attrs Attrs) {
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		w.indent()
		w.buf.WriteString(Quote(k))
		w.buf.WriteByte('=')
		w.buf.WriteString(value(attrs[k]))
		w.buf.WriteString(";\n")
	}
}

// NodeDefaults writes a "node [...]" statement.
func (w *Writer) NodeDefaults(attrs Attrs) { w.defaults("node", attrs) }

// EdgeDefaults writes an "edge [...]" statement.
func (w *Writer) EdgeDefaults(attrs Attrs) { w.defaults("edge", attrs) }

func (w *Writer) defaults(keyword string, attrs Attrs) {
	if len(attrs) == 0 {
		return
	}
	w.indent()
	w.buf.WriteString(keyword)
	w.attrList(attrs)
	w.buf.WriteString(";\n")
}

// OpenSubgraph opens a nested subgraph. Graphviz draws it as a box when id
// starts with "cluster".
func (w *Writer) OpenSubgraph(id string, attrs Attrs) {
	w.indent()
	w.buf.WriteString("subgraph ")
	w.buf.WriteString(Quote(id))
	w.buf.WriteString(" {\n")
	w.depth++
	w.GraphAttrs(attrs)
}

// CloseSubgraph closes the most recently opened subgraph.
func (w *Writer) CloseSubgraph() error {
	if w.depth == 0 {
		return ErrNoOpenSubgraph
	}
	w.depth--
	w.indent()
	w.buf.WriteString("}\n")
	return nil
}

// Node writes a node statement.
func (w *Writer) Node(id string, attrs Attrs) {
	w.indent()
	w.buf.WriteString(Quote(id))
	w.attrList(attrs)
	w.buf.WriteString(";\n")
}

// Edge writes an edge statement.
func (w *Writer) Edge(from, to string, attrs Attrs) {
	w.EdgePorts(from, "", to, "", attrs)
}

// EdgePorts writes an edge statement between node ports. Empty ports are
// omitted.
func (w *Writer) EdgePorts(from, fromPort, to, toPort string, attrs Attrs) {
	w.indent()
	w.buf.WriteString(endpoint(from, fromPort))
	w.buf.WriteString(w.kind.edgeOp())
	w.buf.WriteString(endpoint(to, toPort))
	w.attrList(attrs)
	w.buf.WriteString(";\n")
}

// String returns the document with every open subgraph and the graph itself
// closed. The writer is not modified and can keep accepting statements.
func (w *Writer) String() string {
	var b strings.Builder
	b.WriteString(w.buf.String())
	for d := w.depth; d > 0; d-- {
		b.WriteString(strings.Repeat("  ", d))
		b.WriteString("}\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// WriteTo writes the closed document to out.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	n, err := io.WriteString(out, w.String())
	return int64(n), err
}

func (w *Writer) indent() {
	w.buf.WriteString(strings.Repeat("  ", w.depth+1))
}

func (w *Writer) attrList(attrs Attrs) {
	if len(attrs) == 0 {
		return
	}
	w.buf.WriteString(" [")
	for i, k := range slices.Sorted(maps.Keys(attrs)) {
		if i > 0 {
			w.buf.WriteString(", ")
		}
		w.buf.WriteString(Quote(k))
		w.buf.WriteByte('=')
		w.buf.WriteString(value(attrs[k]))
	}
	w.buf.WriteByte(']')
}

func endpoint(id, port string) string {
	if port == "" {
		return Quote(id)
	}
	return Quote(id) + ":" + Quote(port)
}
