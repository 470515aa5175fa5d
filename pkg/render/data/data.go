// Package data renders which systems read and write which components and
// resources. Each schedule is a cluster of its systems; components sit at
// the top level and are shared between schedules.
package data

import (
	"github.com/matzehuels/ecsdump/pkg/annotate"
	"github.com/matzehuels/ecsdump/pkg/dot"
	"github.com/matzehuels/ecsdump/pkg/ecs"
	"github.com/matzehuels/ecsdump/pkg/graph"
	"github.com/matzehuels/ecsdump/pkg/graph/transform"
	"github.com/matzehuels/ecsdump/pkg/render"
)

// Settings configures the data graph.
type Settings struct {
	Style annotate.Style

	// IncludeSystem filters systems. Nil includes all.
	IncludeSystem ecs.SystemFilter

	// IncludeSchedule filters schedules. Nil includes all.
	IncludeSchedule ecs.ScheduleFilter

	// PrettifyNames strips module paths from labels.
	PrettifyNames bool

	// IncludeEvents keeps event queues, which the event graph covers.
	IncludeEvents bool

	// HideSingleEdgeComponents drops components only one system touches.
	HideSingleEdgeComponents bool
}

// DefaultSettings returns the light theme with prettified names.
func DefaultSettings() Settings {
	return Settings{
		Style:         annotate.LightTheme(),
		PrettifyNames: true,
	}
}

// Context is the access graph of one schedule.
type Context struct {
	Label  ecs.Label
	Graph  *graph.Graph
	Result transform.Result
}

// Extract builds the access graph of s. Sets are flattened away and
// components no remaining system touches are dropped. Like the schedule
// graph's Extract, it requires a built schedule and returns BUILD_REQUIRED
// otherwise.
func Extract(s ecs.Schedule, world ecs.World, settings Settings) (*Context, error) {
	g, err := graph.FromSchedule(s, world.Components(), graph.ExtractOptions{
		PrettifyNames: settings.PrettifyNames,
		IncludeAccess: true,
	})
	if err != nil {
		return nil, err
	}

	drop := []graph.NodeKind{graph.KindSet}
	if !settings.IncludeEvents {
		drop = append(drop, graph.KindEvent)
	}
	result, err := transform.Simplify(g, transform.Options{
		EdgeKinds:               []graph.EdgeKind{graph.Access},
		DropKinds:               drop,
		IncludeSystem:           settings.IncludeSystem,
		SkipTransitiveReduction: true,
		PruneOrphans:            []graph.NodeKind{graph.KindResource, graph.KindEvent},
	})
	if err != nil {
		return nil, err
	}
	return &Context{Label: s.Label(), Graph: g, Result: result}, nil
}

// Print merges contexts into one digraph. Reads are drawn from the
// component to the system, writes from the system to the component.
func Print(contexts []*Context, settings Settings) (string, error) {
	g := graph.New()
	for _, ctx := range contexts {
		if err := graph.Merge(g, ctx.Graph); err != nil {
			return "", err
		}
	}
	if settings.HideSingleEdgeComponents {
		transform.PruneSingleEdge(g, graph.KindResource, graph.KindEvent)
	}
	annotate.Apply(g, settings.Style, annotate.Options{})

	w := render.Header("data", settings.Style, dot.Attrs{
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
