package render_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/ecsdump/pkg/annotate"
	"github.com/matzehuels/ecsdump/pkg/dot"
	"github.com/matzehuels/ecsdump/pkg/errors"
	"github.com/matzehuels/ecsdump/pkg/graph"
	"github.com/matzehuels/ecsdump/pkg/render"
)

func sample(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	nodes := []graph.Node{
		{Key: "root", Kind: graph.KindSchedule, Name: "Update", Schedule: "Update"},
		{Key: "set", Kind: graph.KindSet, Name: "Physics", Schedule: "Update", Parent: "root"},
		{Key: "empty", Kind: graph.KindSet, Name: "Empty", Schedule: "Update", Parent: "root"},
		{Key: "a", Kind: graph.KindSystem, Name: "a", Schedule: "Update", Parent: "set"},
		{Key: "b", Kind: graph.KindSystem, Name: "b", Schedule: "Update", Parent: "root"},
		{Key: "pos", Kind: graph.KindResource, Name: "Position"},
	}
	for _, n := range nodes {
		require.NoError(t, g.AddNode(n), "AddNode(%s)", n.Key)
	}
	edges := []graph.Edge{
		{From: "set", To: "b", Kind: graph.Order},
		{From: "b", To: "pos", Kind: graph.Access, Access: graph.Read},
	}
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e), "AddEdge(%s -> %s)", e.From, e.To)
	}
	annotate.Apply(g, annotate.LightTheme(), annotate.Options{})
	return g
}

func TestWriteTree(t *testing.T) {
	g := sample(t)
	w := dot.New(dot.Digraph, "G")
	require.NoError(t, render.WriteTree(w, g, ""))
	out := w.String()

	for _, want := range []string{
		"  subgraph cluster_Update__schedule__Update {\n",
		"    subgraph cluster_Update__set__Physics {\n",
		"      Update__set__Physics [",
		"      Update__system__a [",
		"    Update__system__b [",
		"  world__resource__Position [",
	} {
		assert.Contains(t, out, want)
	}
	// Containers without edges get no marker.
	assert.NotContains(t, out, "    Update__set__Empty [")
	assert.NotContains(t, out, "  Update__schedule__Update [")
	assert.Zero(t, w.Depth())
}

func TestWriteTreeQuotesAngleBracketNames(t *testing.T) {
	g := graph.New()
	for _, name := range []string{"<impl Plugin>", "<Vec<u8>>", "<A & B>"} {
		require.NoError(t, g.AddNode(graph.Node{
			Key: "Update/" + name, Kind: graph.KindSystem, Name: name, Label: name, Schedule: "Update",
		}))
	}
	annotate.Apply(g, annotate.LightTheme(), annotate.Options{})

	w := dot.New(dot.Digraph, "G")
	require.NoError(t, render.WriteTree(w, g, ""))
	out := w.String()

	assert.Contains(t, out, `label="<impl Plugin>"`)
	assert.Contains(t, out, `label="<Vec<u8>>"`)
	assert.Contains(t, out, `label="<A & B>"`)
	assert.Contains(t, out, `tooltip="<A & B>"`)
	assert.NotContains(t, out, "label=<")
}

func TestWriteEdges(t *testing.T) {
	tests := []struct {
		name string
		flip func(graph.Edge) bool
		want []string
	}{
		{
			name: "as stored",
			want: []string{
				"Update__set__Physics -> Update__system__b [color=\"#57606a\", ltail=cluster_Update__set__Physics]",
				"Update__system__b -> world__resource__Position",
			},
		},
		{
			name: "reads flipped",
			flip: render.FlipReads,
			want: []string{
				"Update__set__Physics -> Update__system__b",
				"world__resource__Position -> Update__system__b",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := sample(t)
			w := dot.New(dot.Digraph, "G")
			require.NoError(t, render.WriteEdges(w, g, tt.flip))
			out := w.String()
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestWriteEdgesDangling(t *testing.T) {
	g := sample(t)
	g.SetEdges(append(g.Edges(), graph.Edge{From: "a", To: "ghost", Kind: graph.Order}))

	err := render.WriteEdges(dot.New(dot.Digraph, "G"), g, nil)
	assert.True(t, errors.Is(err, errors.ErrCodeDanglingEdge), "WriteEdges() error = %v, want DANGLING_EDGE", err)
}

func TestHeader(t *testing.T) {
	out := render.Header("G", annotate.DarkTheme(), dot.Attrs{"rankdir": "LR", "bgcolor": "black"}).String()

	assert.True(t, strings.HasPrefix(out, "digraph G {\n"))
	for _, want := range []string{"  bgcolor=black;\n", "  rankdir=LR;\n", "  node [", "  edge ["} {
		assert.Contains(t, out, want)
	}
}
