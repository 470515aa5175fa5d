package rendergraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/ecsdump/pkg/ecs"
	"github.com/matzehuels/ecsdump/pkg/ecs/memory"
	"github.com/matzehuels/ecsdump/pkg/errors"
	"github.com/matzehuels/ecsdump/pkg/render/rendergraph"
)

func sampleGraph() *memory.RenderGraph {
	core := memory.NewRenderGraph()
	core.AddNode(ecs.RenderNode{Name: "main_pass", TypeName: "MainPassNode", Inputs: []ecs.SlotInfo{{Name: "view", Type: "Entity"}}})
	core.AddNode(ecs.RenderNode{Name: "tonemapping", TypeName: "TonemappingNode"})
	core.AddNodeEdge("main_pass", "tonemapping")

	root := memory.NewRenderGraph()
	root.AddNode(ecs.RenderNode{Name: "camera_driver", TypeName: "CameraDriverNode", Outputs: []ecs.SlotInfo{{Name: "view", Type: "Entity"}}})
	root.AddNode(ecs.RenderNode{Name: "ui", TypeName: "UiNode", Inputs: []ecs.SlotInfo{{Name: "view", Type: "Entity"}}})
	root.AddSlotEdge("camera_driver", 0, "ui", 0)
	root.AddSubGraph("core_2d", core)
	return root
}

func TestPrint(t *testing.T) {
	ctx, err := rendergraph.Extract(sampleGraph(), rendergraph.DefaultSettings())
	require.NoError(t, err)
	out, err := rendergraph.Print(ctx, rendergraph.DefaultSettings())
	require.NoError(t, err)

	assert.Contains(t, out, "render__render_node__camera_5fdriver:out0 -> render__render_node__ui:in0")
	assert.Contains(t, out, "subgraph cluster_render__sub_graph__core_5f2d {")
	assert.Contains(t, out, "render_2fcore_5f2d__render_node__main_5fpass -> render_2fcore_5f2d__render_node__tonemapping")
	assert.Contains(t, out, `<TD PORT="out0">view: Entity</TD>`)
	assert.NotContains(t, out, "CameraDriverNode")
}

func TestPrintTypeNames(t *testing.T) {
	settings := rendergraph.DefaultSettings()
	settings.ShowTypeNames = true
	ctx, err := rendergraph.Extract(sampleGraph(), settings)
	require.NoError(t, err)
	out, err := rendergraph.Print(ctx, settings)
	require.NoError(t, err)

	assert.Contains(t, out, "CameraDriverNode")
}

func TestExtractDanglingEdge(t *testing.T) {
	rg := memory.NewRenderGraph()
	rg.AddNode(ecs.RenderNode{Name: "a"})
	rg.AddNodeEdge("a", "missing")

	_, err := rendergraph.Extract(rg, rendergraph.DefaultSettings())
	assert.True(t, errors.Is(err, errors.ErrCodeDanglingEdge))
}
