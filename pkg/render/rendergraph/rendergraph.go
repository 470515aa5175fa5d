// Package rendergraph renders the host's render graph. Nodes are drawn as
// tables with one port per slot, slot edges connect those ports and nested
// sub-graphs become clusters.
package rendergraph

import (
	"github.com/matzehuels/ecsdump/pkg/annotate"
	"github.com/matzehuels/ecsdump/pkg/dot"
	"github.com/matzehuels/ecsdump/pkg/ecs"
	"github.com/matzehuels/ecsdump/pkg/graph"
	"github.com/matzehuels/ecsdump/pkg/graph/transform"
	"github.com/matzehuels/ecsdump/pkg/render"
)

// Settings configures the render graph.
type Settings struct {
	Style annotate.Style

	// ShowTypeNames adds each node's type under its name.
	ShowTypeNames bool
}

// DefaultSettings returns the light theme without type names.
func DefaultSettings() Settings {
	return Settings{Style: annotate.LightTheme()}
}

// Context is one extracted render graph.
type Context struct {
	Graph  *graph.Graph
	Result transform.Result
}

// Extract builds the derived graph of rg. Node edges are kept as drawn by
// the host: no transitive reduction, and empty sub-graphs stay.
func Extract(rg ecs.RenderGraph, settings Settings) (*Context, error) {
	g, err := graph.FromRenderGraph(rg)
	if err != nil {
		return nil, err
	}
	result, err := transform.Simplify(g, transform.Options{
		KeepEmptySets:           true,
		SkipTransitiveReduction: true,
	})
	if err != nil {
		return nil, err
	}
	return &Context{Graph: g, Result: result}, nil
}

// Print annotates ctx and writes it as a digraph.
func Print(ctx *Context, settings Settings) (string, error) {
	g := ctx.Graph
	annotate.Apply(g, settings.Style, annotate.Options{ShowTypeNames: settings.ShowTypeNames})

	w := render.Header("render_graph", settings.Style, dot.Attrs{
		"compound": "true",
		"rankdir":  "LR",
	})
	if err := render.WriteTree(w, g, ""); err != nil {
		return "", err
	}
	if err := render.WriteEdges(w, g, nil); err != nil {
		return "", err
	}
	return w.String(), nil
}
