package transform_test

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/ecsdump/pkg/ecs"
	"github.com/matzehuels/ecsdump/pkg/errors"
	"github.com/matzehuels/ecsdump/pkg/graph"
	"github.com/matzehuels/ecsdump/pkg/graph/transform"
)

// builder assembles small graphs under a single schedule root.
type builder struct {
	t *testing.T
	g *graph.Graph
}

func newBuilder(t *testing.T) *builder {
	t.Helper()
	g := graph.New()
	require.NoError(t, g.AddNode(graph.Node{Key: "root", Kind: graph.KindSchedule}))
	return &builder{t: t, g: g}
}

func (b *builder) set(key, parent string) *builder {
	require.NoError(b.t, b.g.AddNode(graph.Node{Key: key, Kind: graph.KindSet, Parent: parent}))
	return b
}

func (b *builder) system(key, parent string) *builder {
	require.NoError(b.t, b.g.AddNode(graph.Node{
		Key:    key,
		Kind:   graph.KindSystem,
		Name:   key,
		Parent: parent,
		Meta:   graph.Metadata{"system": ecs.System{Name: key}},
	}))
	return b
}

func (b *builder) resource(key string) *builder {
	require.NoError(b.t, b.g.AddNode(graph.Node{Key: key, Kind: graph.KindResource}))
	return b
}

func (b *builder) edge(from, to string, kind graph.EdgeKind) *builder {
	require.NoError(b.t, b.g.AddEdge(graph.Edge{From: from, To: to, Kind: kind}))
	return b
}

func (b *builder) access(from, to string, kind graph.AccessKind) *builder {
	require.NoError(b.t, b.g.AddEdge(graph.Edge{From: from, To: to, Kind: graph.Access, Access: kind}))
	return b
}

func orderPairs(g *graph.Graph) [][2]string {
	var out [][2]string
	for _, e := range g.EdgesOfKind(graph.Order) {
		out = append(out, [2]string{e.From, e.To})
	}
	return out
}

// TestTransitiveReductionChain: A→B, B→C, A→C keeps A→B and B→C.
func TestTransitiveReductionChain(t *testing.T) {
	b := newBuilder(t).
		system("A", "root").system("B", "root").system("C", "root").
		edge("A", "B", graph.Order).
		edge("B", "C", graph.Order).
		edge("A", "C", graph.Order)

	removed := transform.TransitiveReduction(b.g)
	assert.Equal(t, 1, removed)
	assert.Equal(t, [][2]string{{"A", "B"}, {"B", "C"}}, orderPairs(b.g))
}

func TestTransitiveReductionKeepsOtherKinds(t *testing.T) {
	b := newBuilder(t).
		system("A", "root").system("B", "root").system("C", "root").
		edge("A", "B", graph.Order).
		edge("B", "C", graph.Order).
		edge("A", "C", graph.Membership)

	assert.Zero(t, transform.TransitiveReduction(b.g))
	assert.Equal(t, 3, b.g.EdgeCount())
}

// TestTransitiveReductionSiblingSets: a redundant edge between sibling sets
// is kept; one into a nested set is not.
func TestTransitiveReductionSiblingSets(t *testing.T) {
	b := newBuilder(t).
		set("S1", "root").set("S2", "root").set("Inner", "S1").
		system("A", "S1").system("B", "root").system("C", "S2").system("D", "Inner").
		edge("A", "B", graph.Order).
		edge("B", "C", graph.Order).
		edge("A", "C", graph.Order).
		edge("B", "D", graph.Order).
		edge("D", "A", graph.Order).
		edge("B", "A", graph.Order)

	transform.TransitiveReduction(b.g)
	pairs := orderPairs(b.g)
	assert.Contains(t, pairs, [2]string{"A", "C"}, "S1 and S2 are not nested")
	assert.NotContains(t, pairs, [2]string{"B", "A"}, "root encloses S1")
}

// TestTransitiveReductionCycle: a malformed cycle keeps its reachability.
func TestTransitiveReductionCycle(t *testing.T) {
	b := newBuilder(t).
		system("A", "root").system("B", "root").system("C", "root").
		edge("A", "B", graph.Order).
		edge("B", "C", graph.Order).
		edge("C", "A", graph.Order).
		edge("A", "C", graph.Order)

	before := closure(b.g)
	transform.TransitiveReduction(b.g)
	assert.Equal(t, before, closure(b.g))
}

// TestTransitiveReductionPreservesReachability checks soundness on random graphs.
func TestTransitiveReductionPreservesReachability(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := range 50 {
		b := newBuilder(t)
		n := 3 + rng.Intn(8)
		for i := range n {
			b.system("n"+strconv.Itoa(i), "root")
		}
		for range n * 2 {
			from, to := rng.Intn(n), rng.Intn(n)
			if from == to {
				continue
			}
			b.edge("n"+strconv.Itoa(from), "n"+strconv.Itoa(to), graph.Order)
		}

		before := closure(b.g)
		transform.TransitiveReduction(b.g)
		require.Equal(t, before, closure(b.g), "trial %d", trial)
	}
}

func closure(g *graph.Graph) map[[2]string]bool {
	adj := make(map[string][]string)
	for _, e := range g.EdgesOfKind(graph.Order) {
		adj[e.From] = append(adj[e.From], e.To)
	}
	out := make(map[[2]string]bool)
	for _, n := range g.Nodes() {
		stack := []string{n.Key}
		seen := map[string]bool{}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, next := range adj[cur] {
				if !seen[next] {
					seen[next] = true
					out[[2]string{n.Key, next}] = true
					stack = append(stack, next)
				}
			}
		}
	}
	return out
}

func TestMergeAccessWriteDominates(t *testing.T) {
	b := newBuilder(t).
		system("S", "root").resource("R").resource("Q").
		access("S", "R", graph.Read).
		access("S", "R", graph.Write).
		access("S", "R", graph.Read).
		access("S", "Q", graph.Read)

	assert.Equal(t, 2, transform.MergeAccess(b.g))
	edges := b.g.EdgesOfKind(graph.Access)
	require.Len(t, edges, 2)
	assert.Equal(t, graph.Write, edges[0].Access)
	assert.Equal(t, graph.Read, edges[1].Access)
}

// TestMergeAccessKeepsAmbiguous: access merging never folds an ambiguity.
func TestMergeAccessKeepsAmbiguous(t *testing.T) {
	b := newBuilder(t).
		system("X", "root").system("Y", "root").resource("R").
		access("X", "R", graph.Write).
		access("Y", "R", graph.Write).
		edge("X", "Y", graph.Ambiguous)

	transform.MergeAccess(b.g)
	assert.Len(t, b.g.EdgesOfKind(graph.Ambiguous), 1)
	assert.Len(t, b.g.EdgesOfKind(graph.Access), 2)
}

func TestDedupe(t *testing.T) {
	b := newBuilder(t).
		system("A", "root").system("B", "root").
		edge("A", "B", graph.Order).
		edge("A", "B", graph.Order).
		edge("B", "A", graph.Ambiguous).
		edge("A", "B", graph.Ambiguous)

	assert.Equal(t, 2, transform.Dedupe(b.g))
	amb := b.g.EdgesOfKind(graph.Ambiguous)
	require.Len(t, amb, 1)
	assert.Equal(t, "A", amb[0].From, "ambiguous endpoints are sorted")
	assert.Len(t, b.g.EdgesOfKind(graph.Order), 1)
}

func TestFilterAndPrune(t *testing.T) {
	b := newBuilder(t).
		set("Physics", "root").set("Inner", "Physics").set("Ui", "root").
		system("physics::move", "Inner").
		system("ui::draw", "Ui").
		system("ui::layout", "Ui").
		edge("physics::move", "ui::draw", graph.Order)

	filtered := transform.FilterSystems(b.g, ecs.SystemNameHasPrefix("ui::"))
	assert.Equal(t, 1, filtered)
	assert.Zero(t, b.g.EdgeCount())

	pruned := transform.PruneEmptySets(b.g)
	assert.Equal(t, 2, pruned)
	assert.False(t, b.g.HasNode("Physics"))
	assert.False(t, b.g.HasNode("Inner"))
	assert.True(t, b.g.HasNode("Ui"))
	assert.True(t, b.g.HasNode("root"), "schedule roots are never pruned")
}

func TestFilterNilKeepsAll(t *testing.T) {
	b := newBuilder(t).system("a", "root")
	assert.Zero(t, transform.FilterSystems(b.g, nil))
}

func TestCollapseSingleSets(t *testing.T) {
	b := newBuilder(t).
		set("Outer", "root").set("Mid", "Outer").
		set("Pair", "root").set("Ordered", "root").
		system("a", "Mid").
		system("b", "Pair").system("c", "Pair").
		system("d", "Ordered").
		edge("Ordered", "b", graph.Order)

	assert.Equal(t, 2, transform.CollapseSingleSets(b.g))
	a, _ := b.g.Node("a")
	assert.Equal(t, "root", a.Parent)
	assert.True(t, b.g.HasNode("Pair"))
	assert.True(t, b.g.HasNode("Ordered"), "sets with edges are kept")
}

func TestPruneOrphans(t *testing.T) {
	b := newBuilder(t).
		system("S", "root").resource("used").resource("unused").resource("single").
		access("S", "used", graph.Read).
		access("S", "single", graph.Write)
	require.NoError(t, b.g.AddNode(graph.Node{Key: "other", Kind: graph.KindSystem}))
	b.access("other", "used", graph.Write)

	assert.Equal(t, 1, transform.PruneSingleEdge(b.g, graph.KindResource))
	assert.Equal(t, 1, transform.PruneOrphans(b.g, graph.KindResource))
	assert.True(t, b.g.HasNode("used"))
	assert.True(t, b.g.HasNode("other"), "only the given kinds are pruned")
}

func TestSimplify(t *testing.T) {
	b := newBuilder(t).
		set("Empty", "root").
		system("A", "root").system("B", "root").system("C", "root").
		edge("A", "B", graph.Order).
		edge("B", "C", graph.Order).
		edge("A", "C", graph.Order).
		edge("A", "B", graph.Order)

	r, err := transform.Simplify(b.g, transform.Options{})
	require.NoError(t, err)
	assert.Equal(t, transform.Result{SetsPruned: 1, EdgesMerged: 1, TransitiveEdgesRemoved: 1}, r)
	assert.Equal(t, 2, b.g.EdgeCount())
}

func TestSimplifyRejectsOrderAmbiguityConflict(t *testing.T) {
	b := newBuilder(t).
		system("X", "root").system("Y", "root").
		edge("X", "Y", graph.Order).
		edge("Y", "X", graph.Ambiguous)

	_, err := transform.Simplify(b.g, transform.Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeOrderAmbiguityConflict))
}

func TestSimplifyRejectsContainmentCycle(t *testing.T) {
	g := graph.New()
	require.NoError(t, g.AddNode(graph.Node{Key: "a", Kind: graph.KindSet, Parent: "b"}))
	require.NoError(t, g.AddNode(graph.Node{Key: "b", Kind: graph.KindSet, Parent: "a"}))

	_, err := transform.Simplify(g, transform.Options{})
	assert.True(t, errors.Is(err, errors.ErrCodeHierarchyCycle))
}

// TestSimplifyEmptyIsNotAnError: a filter rejecting everything leaves the root.
func TestSimplifyEmptyIsNotAnError(t *testing.T) {
	b := newBuilder(t).
		set("S", "root").
		system("a", "S").system("b", "root").
		edge("a", "b", graph.Order)

	r, err := transform.Simplify(b.g, transform.Options{
		IncludeSystem: func(ecs.System) bool { return false },
	})
	require.NoError(t, err)
	assert.Equal(t, 2, r.SystemsFiltered)
	assert.Equal(t, 1, b.g.NodeCount())
	assert.Zero(t, b.g.EdgeCount())
}

func TestSelectEdges(t *testing.T) {
	b := newBuilder(t).
		system("X", "root").system("Y", "root").
		edge("X", "Y", graph.Order).
		edge("X", "Y", graph.Ambiguous)

	assert.Equal(t, 1, transform.SelectEdges(b.g, graph.Order))
	assert.Len(t, b.g.EdgesOfKind(graph.Order), 1)
}

func TestDropNodes(t *testing.T) {
	b := newBuilder(t).
		set("S", "root").
		system("a", "S")

	assert.Equal(t, 1, transform.DropNodes(b.g, graph.KindSet))
	a, _ := b.g.Node("a")
	assert.Equal(t, "root", a.Parent)
}
