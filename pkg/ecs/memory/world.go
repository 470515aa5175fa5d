package memory

import (
	"sync"

	"github.com/matzehuels/ecsdump/pkg/ecs"
)

// World is an in-memory ecs.World.
type World struct {
	mu          sync.Mutex
	components  *Components
	schedules   *Schedules
	renderGraph *RenderGraph
}

// NewWorld creates a world with no components or schedules.
func NewWorld() *World {
	return &World{
		components: NewComponents(),
		schedules:  newSchedules(),
	}
}

// Registry returns the mutable component registry.
func (w *World) Registry() *Components { return w.components }

// Components implements ecs.World.
func (w *World) Components() ecs.Components { return w.components }

// AddSchedule registers s, replacing any schedule with the same label. It
// waits for a running WithSchedules to return.
func (w *World) AddSchedule(s *Schedule) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.schedules.add(s)
}

// Schedule returns the schedule registered under label. The schedule itself
// is not guarded; mutate it only before the world is shared.
func (w *World) Schedule(label ecs.Label) (*Schedule, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	s, ok := w.schedules.byLabel[label]
	return s, ok
}

// IgnoreAmbiguities adds components to the ignored-ambiguity registry.
func (w *World) IgnoreAmbiguities(ids ...ecs.ComponentID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.schedules.ignored = append(w.schedules.ignored, ids...)
}

// SetRenderGraph attaches a render graph to the world. Setup only: it is
// not guarded, since RenderGraph is read from inside WithSchedules.
func (w *World) SetRenderGraph(rg *RenderGraph) { w.renderGraph = rg }

// WithSchedules implements ecs.World. The lock is released when fn returns
// or panics.
func (w *World) WithSchedules(fn func(ecs.Schedules) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return fn(w.schedules)
}

// RenderGraph implements ecs.World.
func (w *World) RenderGraph() (ecs.RenderGraph, bool) {
	if w.renderGraph == nil {
		return nil, false
	}
	return w.renderGraph, true
}

// Schedules is the schedule registry of a [World].
type Schedules struct {
	order   []ecs.Label
	byLabel map[ecs.Label]*Schedule
	ignored []ecs.ComponentID
}

func newSchedules() *Schedules {
	return &Schedules{byLabel: make(map[ecs.Label]*Schedule)}
}

func (s *Schedules) add(sched *Schedule) {
	if _, ok := s.byLabel[sched.label]; !ok {
		s.order = append(s.order, sched.label)
	}
	s.byLabel[sched.label] = sched
}

// Labels returns labels in registration order.
func (s *Schedules) Labels() []ecs.Label {
	out := make([]ecs.Label, len(s.order))
	copy(out, s.order)
	return out
}

// Get implements ecs.Schedules.
func (s *Schedules) Get(label ecs.Label) (ecs.Schedule, bool) {
	sched, ok := s.byLabel[label]
	if !ok {
		return nil, false
	}
	return sched, true
}

// IgnoredAmbiguities implements ecs.Schedules.
func (s *Schedules) IgnoredAmbiguities() []ecs.ComponentID {
	out := make([]ecs.ComponentID, len(s.ignored))
	copy(out, s.ignored)
	return out
}

// App is an in-memory ecs.App.
type App struct {
	main   *World
	render *World
}

// NewApp creates an app with an empty main world and no render sub-app.
func NewApp() *App {
	return &App{main: NewWorld()}
}

// Main returns the concrete main world.
func (a *App) Main() *World { return a.main }

// SetRenderApp attaches a render sub-app world. Passing nil removes it.
func (a *App) SetRenderApp(w *World) { a.render = w }

// World implements ecs.App.
func (a *App) World() ecs.World { return a.main }

// RenderApp implements ecs.App.
func (a *App) RenderApp() (ecs.World, bool) {
	if a.render == nil {
		return nil, false
	}
	return a.render, true
}
