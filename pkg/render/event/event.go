// Package event renders which systems send and receive which events. Edges
// run from the writing system to the event and on to each reader.
package event

import (
	"github.com/matzehuels/ecsdump/pkg/annotate"
	"github.com/matzehuels/ecsdump/pkg/dot"
	"github.com/matzehuels/ecsdump/pkg/ecs"
	"github.com/matzehuels/ecsdump/pkg/graph"
	"github.com/matzehuels/ecsdump/pkg/graph/transform"
	"github.com/matzehuels/ecsdump/pkg/render"
)

// Settings configures the event graph.
type Settings struct {
	Style annotate.Style

	// IncludeSystem filters systems. Nil includes all.
	IncludeSystem ecs.SystemFilter

	// IncludeSchedule filters schedules. Nil includes all.
	IncludeSchedule ecs.ScheduleFilter

	// PrettifyNames strips module paths from labels.
	PrettifyNames bool

	// HideSingleEdgeEvents drops events only one system touches.
	HideSingleEdgeEvents bool
}

// DefaultSettings returns the light theme with prettified names.
func DefaultSettings() Settings {
	return Settings{
		Style:         annotate.LightTheme(),
		PrettifyNames: true,
	}
}

// Context is the event graph of one schedule.
type Context struct {
	Label  ecs.Label
	Graph  *graph.Graph
	Result transform.Result
}

// Extract builds the event graph of s. Only systems that touch an event are
// kept. s must already be built; see the dump package.
func Extract(s ecs.Schedule, world ecs.World, settings Settings) (*Context, error) {
	g, err := graph.FromSchedule(s, world.Components(), graph.ExtractOptions{
		PrettifyNames: settings.PrettifyNames,
		IncludeAccess: true,
	})
	if err != nil {
		return nil, err
	}

	result, err := transform.Simplify(g, transform.Options{
		EdgeKinds:               []graph.EdgeKind{graph.Access},
		DropKinds:               []graph.NodeKind{graph.KindSet, graph.KindResource},
		IncludeSystem:           settings.IncludeSystem,
		SkipTransitiveReduction: true,
		PruneOrphans:            []graph.NodeKind{graph.KindEvent, graph.KindSystem},
	})
	if err != nil {
		return nil, err
	}
	return &Context{Label: s.Label(), Graph: g, Result: result}, nil
}

// Print merges contexts into one digraph.
func Print(contexts []*Context, settings Settings) (string, error) {
	g := graph.New()
	for _, ctx := range contexts {
		if err := graph.Merge(g, ctx.Graph); err != nil {
			return "", err
		}
	}
	if settings.HideSingleEdgeEvents {
		transform.PruneSingleEdge(g, graph.KindEvent)
		transform.PruneOrphans(g, graph.KindSystem)
	}
	annotate.Apply(g, settings.Style, annotate.Options{})

	w := render.Header("events", settings.Style, dot.Attrs{
		"compound": "true",
		"rankdir":  "LR",
	})
	if err := render.WriteTree(w, g, ""); err != nil {
		return "", err
	}
	if err := render.WriteEdges(w, g, render.FlipReads); err != nil {
		return "", err
	}
	return w.String(), nil
}
