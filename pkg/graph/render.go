package graph

import (
	"strconv"

	"github.com/matzehuels/ecsdump/pkg/ecs"
	"github.com/matzehuels/ecsdump/pkg/errors"
)

// maxSubGraphDepth bounds sub-graph nesting so a self-referencing render
// graph cannot recurse forever.
const maxSubGraphDepth = 32

// RenderKey returns the key of a render node inside the sub-graph at path.
// The top-level graph has an empty path.
func RenderKey(path, name string) string {
	if path == "" {
		return "render:" + name
	}
	return "render:" + path + "/" + name
}

// SubGraphKey returns the key of the sub-graph container at path.
func SubGraphKey(path string) string { return "subgraph:" + path }

// OutPort names the i-th output slot port of a render node.
func OutPort(i int) string { return "out" + strconv.Itoa(i) }

// InPort names the i-th input slot port of a render node.
func InPort(i int) string { return "in" + strconv.Itoa(i) }

// FromRenderGraph builds the derived graph of a render graph. Render nodes
// become [KindRenderNode] nodes, sub-graphs become [KindSubGraph]
// containers, node edges become [Order] edges and slot edges become [Slot]
// edges between ports.
//
// An edge naming an unknown node or slot returns DANGLING_EDGE. Nesting
// deeper than 32 levels returns HIERARCHY_CYCLE.
func FromRenderGraph(rg ecs.RenderGraph) (*Graph, error) {
	g := New()
	if err := addRenderGraph(g, rg, "", "", 0); err != nil {
		return nil, err
	}
	return g, nil
}

func addRenderGraph(g *Graph, rg ecs.RenderGraph, path, parent string, depth int) error {
	if depth > maxSubGraphDepth {
		return errors.New(errors.ErrCodeHierarchyCycle, "render sub-graph %s nested too deeply", path)
	}

	schedule := "render"
	if path != "" {
		schedule = "render/" + path
	}

	slots := make(map[string]ecs.RenderNode)
	for _, n := range rg.Nodes() {
		slots[n.Name] = n
		if err := g.AddNode(Node{
			Key:      RenderKey(path, n.Name),
			Kind:     KindRenderNode,
			Label:    n.Name,
			Name:     n.Name,
			Schedule: schedule,
			Parent:   parent,
			Meta: Metadata{
				"type_name": n.TypeName,
				"inputs":    n.Inputs,
				"outputs":   n.Outputs,
			},
		}); err != nil {
			return err
		}
	}

	for _, e := range rg.Edges() {
		out, ok := slots[e.Output]
		if !ok {
			return errors.New(errors.ErrCodeDanglingEdge, "render edge references unknown node %s", e.Output)
		}
		in, ok := slots[e.Input]
		if !ok {
			return errors.New(errors.ErrCodeDanglingEdge, "render edge references unknown node %s", e.Input)
		}
		edge := Edge{From: RenderKey(path, e.Output), To: RenderKey(path, e.Input), Kind: Order}
		if e.Kind == ecs.SlotEdge {
			if e.OutputSlot < 0 || e.OutputSlot >= len(out.Outputs) {
				return errors.New(errors.ErrCodeDanglingEdge, "render node %s has no output slot %d", e.Output, e.OutputSlot)
			}
			if e.InputSlot < 0 || e.InputSlot >= len(in.Inputs) {
				return errors.New(errors.ErrCodeDanglingEdge, "render node %s has no input slot %d", e.Input, e.InputSlot)
			}
			edge.Kind = Slot
			edge.FromPort = OutPort(e.OutputSlot)
			edge.ToPort = InPort(e.InputSlot)
			edge.Label = out.Outputs[e.OutputSlot].Name
		}
		if err := g.AddEdge(edge); err != nil {
			return err
		}
	}

	for _, sub := range rg.SubGraphs() {
		subPath := sub.Name
		if path != "" {
			subPath = path + "/" + sub.Name
		}
		key := SubGraphKey(subPath)
		if err := g.AddNode(Node{
			Key:      key,
			Kind:     KindSubGraph,
			Label:    sub.Name,
			Name:     subPath,
			Schedule: schedule,
			Parent:   parent,
		}); err != nil {
			return err
		}
		if err := addRenderGraph(g, sub.Graph, subPath, key, depth+1); err != nil {
			return err
		}
	}
	return nil
}
