package ecs

// SlotInfo describes one input or output slot of a render node.
type SlotInfo struct {
	Name string
	Type string
}

// RenderNode is a node of a render graph.
type RenderNode struct {
	Name     string
	TypeName string
	Inputs   []SlotInfo
	Outputs  []SlotInfo
}

// RenderEdgeKind distinguishes plain ordering edges from slot edges.
type RenderEdgeKind int

const (
	// NodeEdge orders two render nodes.
	NodeEdge RenderEdgeKind = iota
	// SlotEdge connects an output slot to an input slot.
	SlotEdge
)

// RenderEdge connects two render nodes by name. Slot indices are only
// meaningful for [SlotEdge].
type RenderEdge struct {
	Kind       RenderEdgeKind
	Output     string
	OutputSlot int
	Input      string
	InputSlot  int
}

// RenderSubGraph is a named nested render graph.
type RenderSubGraph struct {
	Name  string
	Graph RenderGraph
}

// RenderGraph is the read-only dependency graph of the render subsystem.
type RenderGraph interface {
	Nodes() []RenderNode
	Edges() []RenderEdge
	SubGraphs() []RenderSubGraph
}
