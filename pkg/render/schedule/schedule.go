// Package schedule renders one schedule: systems as nodes, sets as nested
// clusters, ordering edges and ambiguities between unordered systems.
package schedule

import (
	"github.com/matzehuels/ecsdump/pkg/annotate"
	"github.com/matzehuels/ecsdump/pkg/dot"
	"github.com/matzehuels/ecsdump/pkg/ecs"
	"github.com/matzehuels/ecsdump/pkg/errors"
	"github.com/matzehuels/ecsdump/pkg/graph"
	"github.com/matzehuels/ecsdump/pkg/graph/transform"
	"github.com/matzehuels/ecsdump/pkg/render"
)

// Settings configures the schedule graph. The zero value draws every system,
// set and ambiguity with the light theme and full type paths.
type Settings struct {
	Style annotate.Style

	// IncludeSystem filters systems. Nil includes all.
	IncludeSystem ecs.SystemFilter

	// CollapseSingleSystemSets inlines sets that wrap a single node.
	CollapseSingleSystemSets bool

	// HideAmbiguities omits ambiguity edges.
	HideAmbiguities bool

	// SkipTransitiveReduction keeps ordering edges implied by others.
	SkipTransitiveReduction bool

	// PrettifyNames strips module paths from labels.
	PrettifyNames bool

	// ShowConditions appends run conditions to system labels.
	ShowConditions bool

	// IncludeEmptySets keeps sets that contain no system.
	IncludeEmptySets bool
}

// DefaultSettings returns the light theme with prettified names.
func DefaultSettings() Settings {
	return Settings{
		Style:         annotate.LightTheme(),
		PrettifyNames: true,
	}
}

// Context is one extracted and simplified schedule.
type Context struct {
	Label  ecs.Label
	Graph  *graph.Graph
	Result transform.Result
}

// Extract builds the simplified graph of s. It does not build s: call
// s.EnsureBuilt inside world.WithSchedules first, as the dump package does.
// An unbuilt schedule fails with BUILD_REQUIRED.
func Extract(s ecs.Schedule, world ecs.World, settings Settings) (*Context, error) {
	g, err := graph.FromSchedule(s, world.Components(), graph.ExtractOptions{
		PrettifyNames:  settings.PrettifyNames,
		ShowConditions: settings.ShowConditions,
	})
	if err != nil {
		return nil, err
	}

	kinds := []graph.EdgeKind{graph.Order, graph.Membership}
	if !settings.HideAmbiguities {
		kinds = append(kinds, graph.Ambiguous)
	}
	result, err := transform.Simplify(g, transform.Options{
		EdgeKinds:               kinds,
		IncludeSystem:           settings.IncludeSystem,
		KeepEmptySets:           settings.IncludeEmptySets,
		SkipTransitiveReduction: settings.SkipTransitiveReduction,
		CollapseSingleSets:      settings.CollapseSingleSystemSets,
	})
	if err != nil {
		return nil, err
	}
	return &Context{Label: s.Label(), Graph: g, Result: result}, nil
}

// Print annotates ctx and writes it as a digraph. The schedule itself is the
// top-level graph; its sets are clusters.
func Print(ctx *Context, settings Settings) (string, error) {
	g := ctx.Graph
	root, ok := g.Node(graph.ScheduleKey(ctx.Label))
	if !ok {
		return "", errors.New(errors.ErrCodeInternal, "schedule %s has no root node", ctx.Label)
	}
	annotate.Apply(g, settings.Style, annotate.Options{})

	w := render.Header(string(ctx.Label), settings.Style, dot.Attrs{
		"compound": "true",
		"rankdir":  "LR",
		"label":    root.Label,
		"labelloc": "t",
	})
	if err := render.WriteTree(w, g, root.Key); err != nil {
		return "", err
	}
	if err := render.WriteEdges(w, g, nil); err != nil {
		return "", err
	}
	return w.String(), nil
}
