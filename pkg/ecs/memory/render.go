package memory

import "github.com/matzehuels/ecsdump/pkg/ecs"

// RenderGraph is an in-memory ecs.RenderGraph.
type RenderGraph struct {
	nodes []ecs.RenderNode
	edges []ecs.RenderEdge
	subs  []ecs.RenderSubGraph
}

// NewRenderGraph creates an empty render graph.
func NewRenderGraph() *RenderGraph { return &RenderGraph{} }

// AddNode appends a render node.
func (g *RenderGraph) AddNode(n ecs.RenderNode) { g.nodes = append(g.nodes, n) }

// AddNodeEdge orders output before input.
func (g *RenderGraph) AddNodeEdge(output, input string) {
	g.edges = append(g.edges, ecs.RenderEdge{Kind: ecs.NodeEdge, Output: output, Input: input})
}

// AddSlotEdge connects an output slot to an input slot.
func (g *RenderGraph) AddSlotEdge(output string, outputSlot int, input string, inputSlot int) {
	g.edges = append(g.edges, ecs.RenderEdge{
		Kind:       ecs.SlotEdge,
		Output:     output,
		OutputSlot: outputSlot,
		Input:      input,
		InputSlot:  inputSlot,
	})
}

// AddSubGraph nests sub under name.
func (g *RenderGraph) AddSubGraph(name string, sub *RenderGraph) {
	g.subs = append(g.subs, ecs.RenderSubGraph{Name: name, Graph: sub})
}

// Nodes implements ecs.RenderGraph.
func (g *RenderGraph) Nodes() []ecs.RenderNode { return g.nodes }

// Edges implements ecs.RenderGraph.
func (g *RenderGraph) Edges() []ecs.RenderEdge { return g.edges }

// SubGraphs implements ecs.RenderGraph.
func (g *RenderGraph) SubGraphs() []ecs.RenderSubGraph { return g.subs }
