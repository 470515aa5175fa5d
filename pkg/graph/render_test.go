package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/ecsdump/pkg/ecs"
	"github.com/matzehuels/ecsdump/pkg/ecs/memory"
	"github.com/matzehuels/ecsdump/pkg/errors"
	"github.com/matzehuels/ecsdump/pkg/graph"
)

func TestFromRenderGraph(t *testing.T) {
	core3d := memory.NewRenderGraph()
	core3d.AddNode(ecs.RenderNode{Name: "main_pass", TypeName: "MainPassNode", Outputs: []ecs.SlotInfo{{Name: "view", Type: "Entity"}}})
	core3d.AddNode(ecs.RenderNode{Name: "tonemapping", TypeName: "TonemappingNode", Inputs: []ecs.SlotInfo{{Name: "view", Type: "Entity"}}})
	core3d.AddSlotEdge("main_pass", 0, "tonemapping", 0)

	rg := memory.NewRenderGraph()
	rg.AddNode(ecs.RenderNode{Name: "camera_driver", TypeName: "CameraDriverNode"})
	rg.AddNode(ecs.RenderNode{Name: "ui_pass", TypeName: "UiPassNode"})
	rg.AddNodeEdge("camera_driver", "ui_pass")
	rg.AddSubGraph("core_3d", core3d)

	g, err := graph.FromRenderGraph(rg)
	require.NoError(t, err)
	require.NoError(t, g.Validate())

	assert.Len(t, g.NodesOfKind(graph.KindRenderNode), 4)
	subs := g.NodesOfKind(graph.KindSubGraph)
	require.Len(t, subs, 1)
	assert.Equal(t, graph.SubGraphKey("core_3d"), subs[0].Key)

	n, ok := g.Node(graph.RenderKey("core_3d", "main_pass"))
	require.True(t, ok)
	assert.Equal(t, subs[0].Key, n.Parent)
	assert.Equal(t, "MainPassNode", n.Meta["type_name"])

	slots := g.EdgesOfKind(graph.Slot)
	require.Len(t, slots, 1)
	assert.Equal(t, "out0", slots[0].FromPort)
	assert.Equal(t, "in0", slots[0].ToPort)
	assert.Equal(t, "view", slots[0].Label)

	assert.Len(t, g.EdgesOfKind(graph.Order), 1)
}

func TestFromRenderGraphDanglingSlot(t *testing.T) {
	rg := memory.NewRenderGraph()
	rg.AddNode(ecs.RenderNode{Name: "a"})
	rg.AddNode(ecs.RenderNode{Name: "b"})
	rg.AddSlotEdge("a", 3, "b", 0)

	_, err := graph.FromRenderGraph(rg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeDanglingEdge))

	rg = memory.NewRenderGraph()
	rg.AddNodeEdge("a", "b")
	_, err = graph.FromRenderGraph(rg)
	assert.True(t, errors.Is(err, errors.ErrCodeDanglingEdge))
}

func TestFromRenderGraphSelfNesting(t *testing.T) {
	rg := memory.NewRenderGraph()
	rg.AddSubGraph("loop", rg)

	_, err := graph.FromRenderGraph(rg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeHierarchyCycle))
}
