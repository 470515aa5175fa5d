package manifest

import (
	"github.com/matzehuels/ecsdump/pkg/ecs"
	"github.com/matzehuels/ecsdump/pkg/ecs/memory"
	"github.com/matzehuels/ecsdump/pkg/errors"
)

// maxRenderDepth bounds sub-graph nesting in a manifest.
const maxRenderDepth = 32

// Build creates the app the manifest describes. Schedules are registered in
// manifest order and left unbuilt.
func (m *Manifest) Build() (*memory.App, error) {
	app := memory.NewApp()
	world := app.Main()
	b := &builder{registry: world.Registry()}

	for _, c := range m.Components {
		if err := b.declare(c); err != nil {
			return nil, err
		}
	}
	for _, name := range m.IgnoreAmbiguities {
		world.IgnoreAmbiguities(b.component(name))
	}

	labels := make(map[string]bool, len(m.Schedules))
	for i, sc := range m.Schedules {
		if err := errors.ValidateLabel(sc.Label); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "schedules[%d]", i)
		}
		if labels[sc.Label] {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "schedule %s is declared twice", sc.Label)
		}
		labels[sc.Label] = true

		s, err := b.schedule(sc)
		if err != nil {
			return nil, err
		}
		world.AddSchedule(s)
	}

	if m.Render != nil {
		rg, err := buildRenderGraph(*m.Render, "render", 0)
		if err != nil {
			return nil, err
		}
		renderWorld := memory.NewWorld()
		renderWorld.SetRenderGraph(rg)
		app.SetRenderApp(renderWorld)
	}
	return app, nil
}

type builder struct {
	registry *memory.Components
}

func (b *builder) declare(c Component) error {
	if c.Name == "" {
		return errors.New(errors.ErrCodeInvalidManifest, "component without a name")
	}
	kind, err := parseKind(c.Kind)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidManifest, err, "component %s", c.Name)
	}
	if id, ok := b.registry.Lookup(c.Name); ok {
		if info, _ := b.registry.Info(id); info.Kind != kind {
			return errors.New(errors.ErrCodeInvalidManifest, "component %s is declared as both %s and %s", c.Name, info.Kind, kind)
		}
		return nil
	}
	b.registry.Register(c.Name, kind)
	return nil
}

// component resolves name, registering it as a plain component if needed.
func (b *builder) component(name string) ecs.ComponentID {
	if id, ok := b.registry.Lookup(name); ok {
		return id
	}
	return b.registry.Register(name, ecs.Component)
}

func (b *builder) components(names []string) []ecs.ComponentID {
	if len(names) == 0 {
		return nil
	}
	ids := make([]ecs.ComponentID, len(names))
	for i, name := range names {
		ids[i] = b.component(name)
	}
	return ids
}

func parseKind(kind string) (ecs.ComponentKind, error) {
	switch kind {
	case "", "component":
		return ecs.Component, nil
	case "resource":
		return ecs.Resource, nil
	case "event":
		return ecs.Event, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidManifest, "unknown kind %q (want component, resource or event)", kind)
}

func (b *builder) schedule(sc Schedule) (*memory.Schedule, error) {
	s := memory.NewSchedule(ecs.Label(sc.Label))

	for _, set := range sc.Sets {
		if set.Name == "" {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "schedule %s: set without a name", sc.Label)
		}
		s.AddSet(set.Name)
	}

	systems := make([]ecs.NodeID, len(sc.Systems))
	for i, sys := range sc.Systems {
		if sys.Name == "" {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "schedule %s: system without a name", sc.Label)
		}
		if _, dup := s.SystemByName(sys.Name); dup {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "schedule %s: system %s is declared twice", sc.Label, sys.Name)
		}
		systems[i] = s.AddSystem(sys.Name, ecs.Access{
			Reads:  b.components(sys.Reads),
			Writes: b.components(sys.Writes),
			World:  sys.Exclusive,
		}, sys.Conditions...)
	}

	for _, set := range sc.Sets {
		id, _ := s.SetByName(set.Name)
		if err := relate(s, sc.Label, id, set.Name, set.In, set.Before, set.After); err != nil {
			return nil, err
		}
	}
	for i, sys := range sc.Systems {
		if err := relate(s, sc.Label, systems[i], sys.Name, sys.In, sys.Before, sys.After); err != nil {
			return nil, err
		}
		for _, other := range sys.AmbiguousWith {
			target, err := lookup(s, sc.Label, sys.Name, other)
			if err != nil {
				return nil, err
			}
			s.AmbiguousWith(systems[i], target)
		}
	}
	return s, nil
}

// relate records the memberships and orderings of id. A system orders
// through its type set.
func relate(s *memory.Schedule, label string, id ecs.NodeID, name string, in, before, after []string) error {
	for _, set := range in {
		if set == name {
			return errors.New(errors.ErrCodeInvalidManifest, "schedule %s: %s is in itself", label, name)
		}
		if _, isSystem := s.SystemByName(set); isSystem {
			return errors.New(errors.ErrCodeInvalidManifest, "schedule %s: %s is in %s, which is a system", label, name, set)
		}
		s.InSet(id, s.AddSet(set))
	}

	self := id
	if id.IsSystem() && (len(before) > 0 || len(after) > 0) {
		self = s.TypeSet(id)
	}
	for _, other := range before {
		target, err := orderTarget(s, label, name, other)
		if err != nil {
			return err
		}
		s.Before(self, target)
	}
	for _, other := range after {
		target, err := orderTarget(s, label, name, other)
		if err != nil {
			return err
		}
		s.Before(target, self)
	}
	return nil
}

func orderTarget(s *memory.Schedule, label, from, name string) (ecs.NodeID, error) {
	id, err := lookup(s, label, from, name)
	if err != nil {
		return ecs.NodeID{}, err
	}
	if id.IsSystem() {
		return s.TypeSet(id), nil
	}
	return id, nil
}

func lookup(s *memory.Schedule, label, from, name string) (ecs.NodeID, error) {
	if id, ok := s.SystemByName(name); ok {
		return id, nil
	}
	if id, ok := s.SetByName(name); ok {
		return id, nil
	}
	return ecs.NodeID{}, errors.New(errors.ErrCodeInvalidManifest, "schedule %s: %s references unknown system or set %q", label, from, name)
}

func buildRenderGraph(spec RenderGraph, path string, depth int) (*memory.RenderGraph, error) {
	if depth > maxRenderDepth {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "%s: render sub-graphs nested too deeply", path)
	}
	rg := memory.NewRenderGraph()
	names := make(map[string]bool, len(spec.Nodes))
	for _, n := range spec.Nodes {
		if n.Name == "" {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "%s: render node without a name", path)
		}
		if names[n.Name] {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "%s: render node %s is declared twice", path, n.Name)
		}
		names[n.Name] = true
		rg.AddNode(ecs.RenderNode{
			Name:     n.Name,
			TypeName: n.Type,
			Inputs:   slots(n.Inputs),
			Outputs:  slots(n.Outputs),
		})
	}

	for _, e := range spec.Edges {
		switch {
		case e.FromSlot == nil && e.ToSlot == nil:
			rg.AddNodeEdge(e.From, e.To)
		case e.FromSlot != nil && e.ToSlot != nil:
			rg.AddSlotEdge(e.From, *e.FromSlot, e.To, *e.ToSlot)
		default:
			return nil, errors.New(errors.ErrCodeInvalidManifest, "%s: edge %s -> %s sets only one slot", path, e.From, e.To)
		}
	}

	for _, sub := range spec.SubGraphs {
		if sub.Name == "" {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "%s: sub-graph without a name", path)
		}
		g, err := buildRenderGraph(sub.Graph, path+"/"+sub.Name, depth+1)
		if err != nil {
			return nil, err
		}
		rg.AddSubGraph(sub.Name, g)
	}
	return rg, nil
}

func slots(in []Slot) []ecs.SlotInfo {
	if len(in) == 0 {
		return nil
	}
	out := make([]ecs.SlotInfo, len(in))
	for i, s := range in {
		out[i] = ecs.SlotInfo{Name: s.Name, Type: s.Type}
	}
	return out
}
