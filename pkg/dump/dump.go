package dump

import (
	"fmt"
	"io"
	"slices"

	"github.com/matzehuels/ecsdump/pkg/ecs"
	"github.com/matzehuels/ecsdump/pkg/errors"
	"github.com/matzehuels/ecsdump/pkg/render/data"
	"github.com/matzehuels/ecsdump/pkg/render/event"
	"github.com/matzehuels/ecsdump/pkg/render/rendergraph"
	"github.com/matzehuels/ecsdump/pkg/render/schedule"
)

// ScheduleGraphDOT renders the schedule registered under label.
func ScheduleGraphDOT(app ecs.App, label ecs.Label, settings schedule.Settings) (string, error) {
	world := app.World()
	var out string
	err := world.WithSchedules(func(schedules ecs.Schedules) error {
		ignored := slices.Clone(schedules.IgnoredAmbiguities())
		s, ok := schedules.Get(label)
		if !ok {
			return errors.New(errors.ErrCodeScheduleNotFound, "schedule doesn't exist: %s", label)
		}
		if err := ensureBuilt(s, world, ignored); err != nil {
			return err
		}
		ctx, err := schedule.Extract(s, world, settings)
		if err != nil {
			return err
		}
		out, err = schedule.Print(ctx, settings)
		return err
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

// DataGraphDOT renders the data access of every schedule settings selects.
func DataGraphDOT(app ecs.App, settings data.Settings) (string, error) {
	world := app.World()
	var out string
	err := world.WithSchedules(func(schedules ecs.Schedules) error {
		selected, err := selectSchedules(schedules, world, settings.IncludeSchedule)
		if err != nil {
			return err
		}
		contexts := make([]*data.Context, 0, len(selected))
		for _, s := range selected {
			ctx, err := data.Extract(s, world, settings)
			if err != nil {
				return err
			}
			contexts = append(contexts, ctx)
		}
		out, err = data.Print(contexts, settings)
		return err
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

// EventsGraphDOT renders the event traffic of every schedule settings
// selects.
func EventsGraphDOT(app ecs.App, settings event.Settings) (string, error) {
	world := app.World()
	var out string
	err := world.WithSchedules(func(schedules ecs.Schedules) error {
		selected, err := selectSchedules(schedules, world, settings.IncludeSchedule)
		if err != nil {
			return err
		}
		contexts := make([]*event.Context, 0, len(selected))
		for _, s := range selected {
			ctx, err := event.Extract(s, world, settings)
			if err != nil {
				return err
			}
			contexts = append(contexts, ctx)
		}
		out, err = event.Print(contexts, settings)
		return err
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

// RenderGraphDOT renders the render graph of the app's render sub-app.
func RenderGraphDOT(app ecs.App, settings rendergraph.Settings) (string, error) {
	renderWorld, ok := app.RenderApp()
	if !ok {
		return "", errors.New(errors.ErrCodeRenderAppMissing, "no render app")
	}
	var out string
	err := renderWorld.WithSchedules(func(ecs.Schedules) error {
		rg, ok := renderWorld.RenderGraph()
		if !ok {
			return errors.New(errors.ErrCodeRenderAppMissing, "no render app: render world has no render graph")
		}
		ctx, err := rendergraph.Extract(rg, settings)
		if err != nil {
			return err
		}
		out, err = rendergraph.Print(ctx, settings)
		return err
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

// PrintScheduleGraph writes the schedule graph of label with default
// settings.
func PrintScheduleGraph(w io.Writer, app ecs.App, label ecs.Label) error {
	out, err := ScheduleGraphDOT(app, label, schedule.DefaultSettings())
	if err != nil {
		return err
	}
	return writeLine(w, out)
}

// PrintDataGraph writes the data graph with default settings.
func PrintDataGraph(w io.Writer, app ecs.App) error {
	out, err := DataGraphDOT(app, data.DefaultSettings())
	if err != nil {
		return err
	}
	return writeLine(w, out)
}

// PrintEventsGraph writes the event graph with default settings.
func PrintEventsGraph(w io.Writer, app ecs.App) error {
	out, err := EventsGraphDOT(app, event.DefaultSettings())
	if err != nil {
		return err
	}
	return writeLine(w, out)
}

// PrintRenderGraph writes the render graph with default settings.
func PrintRenderGraph(w io.Writer, app ecs.App) error {
	out, err := RenderGraphDOT(app, rendergraph.DefaultSettings())
	if err != nil {
		return err
	}
	return writeLine(w, out)
}

// selectSchedules returns the schedules include accepts, in registry order,
// each built with the host's ignored ambiguities.
func selectSchedules(schedules ecs.Schedules, world ecs.World, include ecs.ScheduleFilter) ([]ecs.Schedule, error) {
	ignored := slices.Clone(schedules.IgnoredAmbiguities())
	var selected []ecs.Schedule
	for _, label := range schedules.Labels() {
		s, ok := schedules.Get(label)
		if !ok {
			return nil, errors.New(errors.ErrCodeInternal, "schedule %s is listed but cannot be looked up", label)
		}
		if !include.Includes(s) {
			continue
		}
		if err := ensureBuilt(s, world, ignored); err != nil {
			return nil, err
		}
		selected = append(selected, s)
	}
	return selected, nil
}

func ensureBuilt(s ecs.Schedule, world ecs.World, ignored []ecs.ComponentID) error {
	if err := s.EnsureBuilt(world, ignored); err != nil {
		return errors.Wrap(errors.ErrCodeBuildFailed, err, "build schedule %s", s.Label())
	}
	return nil
}

func writeLine(w io.Writer, dot string) error {
	_, err := fmt.Fprintln(w, dot)
	return err
}
