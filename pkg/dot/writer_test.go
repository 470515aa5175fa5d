package dot

import (
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-graphviz"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{"identifier", "move_player", "move_player"},
		{"leading underscore", "_x1", "_x1"},
		{"integer", "42", "42"},
		{"negative float", "-1.5", "-1.5"},
		{"leading dot", ".5", ".5"},
		{"keyword", "node", `"node"`},
		{"keyword case", "Graph", `"Graph"`},
		{"leading digit", "1abc", `"1abc"`},
		{"space", "a b", `"a b"`},
		{"path", "game::move", `"game::move"`},
		{"quote", `say "hi"`, `"say \"hi\""`},
		{"backslash", `a\b`, `"a\\b"`},
		{"newline", "a\nb", `"a\nb"`},
		{"empty", "", `""`},
		{"two dots", "1.2.3", `"1.2.3"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quote(tt.id); got != tt.want {
				t.Errorf("Quote(%q) = %s, want %s", tt.id, got, tt.want)
			}
		})
	}
}

func TestWriterBasic(t *testing.T) {
	w := New(Digraph, "schedule")
	w.GraphAttrs(Attrs{"rankdir": "LR", "compound": "true"})
	w.NodeDefaults(Attrs{"shape": "box"})
	w.Node("a", Attrs{"label": "A"})
	w.Node("b", nil)
	w.Edge("a", "b", Attrs{"style": "dashed", "color": "red"})

	want := `digraph schedule {
  compound=true;
  rankdir=LR;
  node [shape=box];
  a [label=A];
  b;
  a -> b [color=red, style=dashed];
}
`
	if got := w.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestWriterUndirected(t *testing.T) {
	w := New(Graph, "")
	w.Edge("a", "b", nil)

	want := "graph {\n  a -- b;\n}\n"
	if got := w.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestWriterSubgraphs(t *testing.T) {
	w := New(Digraph, "g")
	w.OpenSubgraph("cluster_outer", Attrs{"label": "Outer"})
	w.OpenSubgraph("cluster_inner", nil)
	w.Node("x", nil)
	if w.Depth() != 2 {
		t.Fatalf("Depth() = %d, want 2", w.Depth())
	}
	if err := w.CloseSubgraph(); err != nil {
		t.Fatalf("CloseSubgraph() error = %v", err)
	}

	want := `digraph g {
  subgraph cluster_outer {
    label=Outer;
    subgraph cluster_inner {
      x;
    }
  }
}
`
	if got := w.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
	if w.Depth() != 1 {
		t.Errorf("String() must not modify the writer, Depth() = %d", w.Depth())
	}
}

func TestCloseSubgraphWithoutOpen(t *testing.T) {
	w := New(Digraph, "g")
	if err := w.CloseSubgraph(); !errors.Is(err, ErrNoOpenSubgraph) {
		t.Errorf("CloseSubgraph() error = %v, want %v", err, ErrNoOpenSubgraph)
	}
}

func TestEdgePortsAndHTML(t *testing.T) {
	w := New(Digraph, "")
	w.Node("main_pass", Attrs{"label": HTML("<b>" + Escape("a<b>") + "</b>"), "shape": "plaintext"})
	w.EdgePorts("main_pass", "out0", "tonemap", "in0", nil)

	got := w.String()
	if !strings.Contains(got, `label=<<b>a&lt;b&gt;</b>>`) {
		t.Errorf("HTML label not emitted verbatim:\n%s", got)
	}
	if !strings.Contains(got, "main_pass:out0 -> tonemap:in0;") {
		t.Errorf("port edge missing:\n%s", got)
	}
}

func TestPlainValuesShapedLikeHTML(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"<impl Plugin>", `label="<impl Plugin>"`},
		{"<Vec<u8>>", `label="<Vec<u8>>"`},
		{"<A & B>", `label="<A & B>"`},
		{"<>", `label="<>"`},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			w := New(Digraph, "")
			w.Node("n", Attrs{"label": tt.label})
			got := w.String()
			if !strings.Contains(got, tt.want) {
				t.Errorf("plain label not quoted, want %s in:\n%s", tt.want, got)
			}
			g, err := graphviz.ParseBytes([]byte(got))
			if err != nil {
				t.Fatalf("ParseBytes() error = %v\n%s", err, got)
			}
			defer g.Close()
		})
	}
}

func TestNonStringValues(t *testing.T) {
	w := New(Digraph, "")
	w.Node("n", Attrs{"width": 0.5, "peripheries": 2})
	got := w.String()
	if !strings.Contains(got, "peripheries=2, width=0.5") {
		t.Errorf("numeric values not formatted:\n%s", got)
	}
}

// TestWriterParses checks that escaped and nested output is accepted by Graphviz.
func TestWriterParses(t *testing.T) {
	w := New(Digraph, "bevy_app::Update")
	w.GraphAttrs(Attrs{"compound": "true"})
	w.OpenSubgraph("cluster_a", Attrs{"label": `quote " and \ slash`})
	w.Node("game::sys", Attrs{"label": "line\nbreak"})
	w.OpenSubgraph("cluster_b", nil)
	w.Node("node", nil)
	w.Edge("game::sys", "node", Attrs{"lhead": "cluster_b"})

	g, err := graphviz.ParseBytes([]byte(w.String()))
	if err != nil {
		t.Fatalf("ParseBytes() error = %v\n%s", err, w.String())
	}
	defer g.Close()
}
