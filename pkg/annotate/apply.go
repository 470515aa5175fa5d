package annotate

import (
	"strings"

	"github.com/matzehuels/ecsdump/pkg/dot"
	"github.com/matzehuels/ecsdump/pkg/ecs"
	"github.com/matzehuels/ecsdump/pkg/graph"
)

// Options tunes [Apply].
type Options struct {
	// ShowTypeNames adds the node type to render node labels.
	ShowTypeNames bool
}

// Apply assigns identifiers (if not already assigned) and sets node and
// edge attributes from style. It only adds attributes; the graph's nodes and
// edges are left as they are.
//
// Containment is not drawn as an edge; printers nest containers as
// clusters using [graph.Node.Attrs] as the cluster attributes.
func Apply(g *graph.Graph, style Style, opts Options) {
	style = style.orDefault()
	for _, n := range g.Nodes() {
		if n.ID == "" {
			AssignIDs(g)
			break
		}
	}

	for _, n := range g.Nodes() {
		n.Attrs = nodeAttrs(n, style, opts)
	}
	for i := range g.EdgeCount() {
		e := g.EdgeAt(i)
		e.Attrs = edgeAttrs(g, e, style)
	}
}

func nodeAttrs(n *graph.Node, s Style, opts Options) dot.Attrs {
	switch n.Kind {
	case graph.KindSystem:
		return dot.Attrs{
			"label":     n.Label,
			"tooltip":   n.Name,
			"fillcolor": s.System,
			"color":     s.SystemBorder,
		}
	case graph.KindSet:
		return dot.Attrs{
			"label":     n.Label,
			"tooltip":   n.Name,
			"style":     "rounded,filled",
			"fillcolor": s.Set,
			"color":     s.SetBorder,
			"fontcolor": s.Text,
		}
	case graph.KindSchedule:
		return dot.Attrs{
			"label":     n.Label,
			"style":     "rounded",
			"color":     s.SetBorder,
			"fontcolor": s.Text,
		}
	case graph.KindSubGraph:
		return dot.Attrs{
			"label":     n.Label,
			"tooltip":   n.Name,
			"style":     "rounded,filled",
			"fillcolor": s.SubGraph,
			"color":     s.SetBorder,
			"fontcolor": s.Text,
		}
	case graph.KindResource:
		return dot.Attrs{
			"label":     n.Label,
			"tooltip":   n.Name,
			"shape":     "ellipse",
			"style":     "filled",
			"fillcolor": s.Resource,
			"color":     s.SetBorder,
		}
	case graph.KindEvent:
		return dot.Attrs{
			"label":     n.Label,
			"tooltip":   n.Name,
			"shape":     "ellipse",
			"style":     "filled",
			"fillcolor": s.Event,
			"color":     s.SetBorder,
		}
	case graph.KindRenderNode:
		return dot.Attrs{
			"label":     RenderNodeLabel(n, opts.ShowTypeNames),
			"shape":     "plaintext",
			"fillcolor": s.RenderNode,
			"style":     "filled",
		}
	}
	return dot.Attrs{"label": n.Label}
}

func edgeAttrs(g *graph.Graph, e *graph.Edge, s Style) dot.Attrs {
	switch e.Kind {
	case graph.Order:
		attrs := dot.Attrs{"color": s.Edge}
		if n, ok := g.Node(e.From); ok && n.Kind == graph.KindSet {
			attrs["ltail"] = n.ID
		}
		if n, ok := g.Node(e.To); ok && n.Kind == graph.KindSet {
			attrs["lhead"] = n.ID
		}
		return attrs
	case graph.Ambiguous:
		return dot.Attrs{
			"style":      "dashed",
			"dir":        "none",
			"constraint": "false",
			"color":      s.Ambiguity,
			"fontcolor":  s.Ambiguity,
			"label":      e.Label,
		}
	case graph.Access:
		color := s.Read
		if e.Access == graph.Write {
			color = s.Write
		}
		return dot.Attrs{"color": color}
	case graph.Membership:
		attrs := dot.Attrs{
			"style":      "dotted",
			"color":      s.Membership,
			"arrowhead":  "empty",
			"constraint": "false",
		}
		if n, ok := g.Node(e.To); ok && n.Kind == graph.KindSet {
			attrs["lhead"] = n.ID
		}
		return attrs
	case graph.Slot:
		return dot.Attrs{"color": s.Slot}
	}
	return dot.Attrs{}
}

// RenderNodeLabel builds the HTML table label of a render node: a header
// row with the node name, then one row per slot index with the input on the
// left and the output on the right. Slot cells carry ports "in<i>" and
// "out<i>".
func RenderNodeLabel(n *graph.Node, showTypeName bool) dot.HTML {
	inputs, _ := n.Meta["inputs"].([]ecs.SlotInfo)
	outputs, _ := n.Meta["outputs"].([]ecs.SlotInfo)

	var b strings.Builder
	b.WriteString(`<TABLE BORDER="0" CELLBORDER="1" CELLSPACING="0" CELLPADDING="4">`)
	b.WriteString(`<TR><TD COLSPAN="2"><B>`)
	b.WriteString(dot.Escape(n.Label))
	b.WriteString(`</B>`)
	if typeName, _ := n.Meta["type_name"].(string); showTypeName && typeName != "" {
		b.WriteString(`<BR/><FONT POINT-SIZE="10">`)
		b.WriteString(dot.Escape(typeName))
		b.WriteString(`</FONT>`)
	}
	b.WriteString(`</TD></TR>`)

	for i := range max(len(inputs), len(outputs)) {
		b.WriteString(`<TR>`)
		writeSlot(&b, inputs, i, graph.InPort(i))
		writeSlot(&b, outputs, i, graph.OutPort(i))
		b.WriteString(`</TR>`)
	}
	b.WriteString(`</TABLE>`)
	return dot.HTML(b.String())
}

func writeSlot(b *strings.Builder, slots []ecs.SlotInfo, i int, port string) {
	if i >= len(slots) {
		b.WriteString(`<TD></TD>`)
		return
	}
	b.WriteString(`<TD PORT="`)
	b.WriteString(port)
	b.WriteString(`">`)
	b.WriteString(dot.Escape(slots[i].Name))
	if slots[i].Type != "" {
		b.WriteString(`: `)
		b.WriteString(dot.Escape(slots[i].Type))
	}
	b.WriteString(`</TD>`)
}
