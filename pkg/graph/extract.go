package graph

import (
	"strconv"
	"strings"

	"github.com/matzehuels/ecsdump/pkg/ecs"
	"github.com/matzehuels/ecsdump/pkg/errors"
	"github.com/matzehuels/ecsdump/pkg/names"
)

// ExtractOptions controls what [FromSchedule] reads from a schedule.
type ExtractOptions struct {
	// PrettifyNames shortens labels with names.Pretty. Name always keeps
	// the declared full name.
	PrettifyNames bool
	// ShowConditions appends run conditions to system labels.
	ShowConditions bool
	// IncludeAccess adds component nodes and Access edges.
	IncludeAccess bool
}

// ScheduleKey returns the key of a schedule's root node.
func ScheduleKey(label ecs.Label) string { return "schedule:" + string(label) }

// NodeKey returns the key of a system or set of a schedule.
func NodeKey(label ecs.Label, id ecs.NodeID) string { return string(label) + "/" + id.String() }

// ComponentKey returns the key of a component node. Component nodes are
// shared by every schedule.
func ComponentKey(id ecs.ComponentID) string { return "component:" + strconv.Itoa(int(id)) }

// FromSchedule builds the derived graph of one built schedule.
//
// The result has a [KindSchedule] root, one node per named set and system,
// the containment hierarchy, ordering edges, ambiguity edges and, with
// IncludeAccess, access edges to shared component nodes.
//
// Anonymous sets are not drawn. Edges touching one are re-targeted to its
// single member system, or dropped when there is no unique member.
//
// FromSchedule never builds the schedule itself: building belongs to the
// caller holding the world's schedules, which is what the dump package's
// entry points do through ecs.Schedule.EnsureBuilt.
//
// FromSchedule returns BUILD_REQUIRED for an unbuilt schedule,
// HIERARCHY_CYCLE for a cyclic set hierarchy and DANGLING_EDGE when the
// schedule references an unknown node or component.
func FromSchedule(s ecs.Schedule, comps ecs.Components, opts ExtractOptions) (*Graph, error) {
	label := s.Label()
	if !s.Built() {
		return nil, errors.New(errors.ErrCodeBuildRequired, "schedule %s has not been built", label)
	}

	hierarchy := s.Hierarchy()
	if err := CheckHierarchy(label, hierarchy); err != nil {
		return nil, err
	}

	x := &extractor{
		g:       New(),
		label:   label,
		comps:   comps,
		opts:    opts,
		systems: make(map[ecs.NodeID]ecs.System),
		sets:    make(map[ecs.NodeID]ecs.Set),
		anon:    make(map[ecs.NodeID][]ecs.NodeID),
	}
	root := ScheduleKey(label)
	x.g.Meta()["schedule"] = string(label)
	if err := x.g.AddNode(Node{
		Key:      root,
		Kind:     KindSchedule,
		Label:    x.display(string(label)),
		Name:     string(label),
		Schedule: string(label),
	}); err != nil {
		return nil, err
	}

	for _, set := range s.Sets() {
		x.sets[set.ID] = set
		if set.Anonymous {
			continue
		}
		if err := x.g.AddNode(Node{
			Key:      NodeKey(label, set.ID),
			Kind:     KindSet,
			Label:    x.display(set.Name),
			Name:     set.Name,
			Schedule: string(label),
			Parent:   root,
		}); err != nil {
			return nil, err
		}
	}

	for _, sys := range s.Systems() {
		x.systems[sys.ID] = sys
		if err := x.g.AddNode(Node{
			Key:      NodeKey(label, sys.ID),
			Kind:     KindSystem,
			Label:    x.systemLabel(sys),
			Name:     sys.Name,
			Schedule: string(label),
			Parent:   root,
			Meta:     Metadata{"system": sys},
		}); err != nil {
			return nil, err
		}
	}

	if err := x.hierarchy(hierarchy); err != nil {
		return nil, err
	}
	if err := x.dependencies(s.Dependencies()); err != nil {
		return nil, err
	}
	if err := x.ambiguities(s.Ambiguities()); err != nil {
		return nil, err
	}
	if opts.IncludeAccess {
		if err := x.access(s.Systems()); err != nil {
			return nil, err
		}
	}
	return x.g, nil
}

type extractor struct {
	g       *Graph
	label   ecs.Label
	comps   ecs.Components
	opts    ExtractOptions
	systems map[ecs.NodeID]ecs.System
	sets    map[ecs.NodeID]ecs.Set
	anon    map[ecs.NodeID][]ecs.NodeID // anonymous set -> direct members
}

func (x *extractor) display(name string) string {
	if x.opts.PrettifyNames {
		return names.Pretty(name)
	}
	return name
}

func (x *extractor) systemLabel(sys ecs.System) string {
	label := x.display(sys.Name)
	if !x.opts.ShowConditions || len(sys.Conditions) == 0 {
		return label
	}
	conds := make([]string, len(sys.Conditions))
	for i, c := range sys.Conditions {
		conds[i] = x.display(c)
	}
	return label + "\nif " + strings.Join(conds, " && ")
}

func (x *extractor) known(id ecs.NodeID) bool {
	if id.IsSystem() {
		_, ok := x.systems[id]
		return ok
	}
	_, ok := x.sets[id]
	return ok
}

// resolve maps a host id to the key it is drawn as.
func (x *extractor) resolve(id ecs.NodeID) (string, bool) {
	if set, ok := x.sets[id]; ok && set.Anonymous {
		members := x.anon[id]
		if len(members) != 1 || !members[0].IsSystem() {
			return "", false
		}
		return NodeKey(x.label, members[0]), true
	}
	return NodeKey(x.label, id), true
}

func (x *extractor) hierarchy(hierarchy []ecs.Membership) error {
	for _, m := range hierarchy {
		if !x.known(m.Set) || !x.known(m.Member) {
			return errors.New(errors.ErrCodeDanglingEdge, "schedule %s: membership %s in %s references unknown node", x.label, m.Member, m.Set)
		}
		if x.sets[m.Set].Anonymous {
			x.anon[m.Set] = append(x.anon[m.Set], m.Member)
		}
	}

	assigned := make(map[string]bool)
	for _, m := range hierarchy {
		if x.sets[m.Set].Anonymous {
			continue
		}
		parent := NodeKey(x.label, m.Set)
		child, ok := x.resolve(m.Member)
		if !ok {
			continue
		}
		n, _ := x.g.Node(child)
		if !assigned[child] {
			n.Parent = parent
			assigned[child] = true
			continue
		}
		if n.Parent != parent {
			if err := x.g.AddEdge(Edge{From: child, To: parent, Kind: Membership}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (x *extractor) dependencies(deps []ecs.Dependency) error {
	for _, d := range deps {
		if !x.known(d.Before) || !x.known(d.After) {
			return errors.New(errors.ErrCodeDanglingEdge, "schedule %s: dependency %s -> %s references unknown node", x.label, d.Before, d.After)
		}
		from, ok := x.resolve(d.Before)
		if !ok {
			continue
		}
		to, ok := x.resolve(d.After)
		if !ok {
			continue
		}
		if err := x.g.AddEdge(Edge{From: from, To: to, Kind: Order}); err != nil {
			return err
		}
	}
	return nil
}

func (x *extractor) ambiguities(amb []ecs.Ambiguity) error {
	for _, a := range amb {
		if _, ok := x.systems[a.A]; !ok {
			return errors.New(errors.ErrCodeDanglingEdge, "schedule %s: ambiguity references unknown system %s", x.label, a.A)
		}
		if _, ok := x.systems[a.B]; !ok {
			return errors.New(errors.ErrCodeDanglingEdge, "schedule %s: ambiguity references unknown system %s", x.label, a.B)
		}
		label, err := x.conflictLabel(a.Conflicts)
		if err != nil {
			return err
		}
		if err := x.g.AddEdge(Edge{
			From:  NodeKey(x.label, a.A),
			To:    NodeKey(x.label, a.B),
			Kind:  Ambiguous,
			Label: label,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (x *extractor) conflictLabel(conflicts []ecs.ComponentID) (string, error) {
	if len(conflicts) == 0 {
		return "World", nil
	}
	parts := make([]string, len(conflicts))
	for i, id := range conflicts {
		info, ok := x.comps.Info(id)
		if !ok {
			return "", errors.New(errors.ErrCodeDanglingEdge, "schedule %s: unknown component %d", x.label, id)
		}
		parts[i] = x.display(info.Name)
	}
	return strings.Join(parts, ", "), nil
}

func (x *extractor) access(systems []ecs.System) error {
	for _, sys := range systems {
		from := NodeKey(x.label, sys.ID)
		for _, list := range []struct {
			ids  []ecs.ComponentID
			kind AccessKind
		}{
			{sys.Access.Reads, Read},
			{sys.Access.Writes, Write},
		} {
			for _, id := range list.ids {
				to, err := x.component(id)
				if err != nil {
					return err
				}
				if err := x.g.AddEdge(Edge{From: from, To: to, Kind: Access, Access: list.kind}); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (x *extractor) component(id ecs.ComponentID) (string, error) {
	key := ComponentKey(id)
	if x.g.HasNode(key) {
		return key, nil
	}
	info, ok := x.comps.Info(id)
	if !ok {
		return "", errors.New(errors.ErrCodeDanglingEdge, "schedule %s: unknown component %d", x.label, id)
	}
	kind := KindResource
	if info.Kind == ecs.Event {
		kind = KindEvent
	}
	err := x.g.AddNode(Node{
		Key:   key,
		Kind:  kind,
		Label: x.display(info.Name),
		Name:  info.Name,
		Meta:  Metadata{"component_kind": info.Kind.String()},
	})
	return key, err
}
