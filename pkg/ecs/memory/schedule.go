package memory

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/ecsdump/pkg/ecs"
	"github.com/matzehuels/ecsdump/pkg/errors"
)

// Schedule is an in-memory ecs.Schedule.
//
// The zero value is not usable; create schedules with [NewSchedule].
type Schedule struct {
	label     ecs.Label
	systems   []ecs.System
	sets      []ecs.Set
	hierarchy []ecs.Membership
	deps      []ecs.Dependency
	allowed   [][2]ecs.NodeID
	typeSets  map[ecs.NodeID]ecs.NodeID
	setByName map[string]ecs.NodeID
	sysByName map[string]ecs.NodeID

	built       bool
	builds      int
	ambiguities []ecs.Ambiguity
}

// NewSchedule creates an empty schedule.
func NewSchedule(label ecs.Label) *Schedule {
	return &Schedule{
		label:     label,
		typeSets:  make(map[ecs.NodeID]ecs.NodeID),
		setByName: make(map[string]ecs.NodeID),
		sysByName: make(map[string]ecs.NodeID),
	}
}

// AddSystem appends a system and returns its id.
func (s *Schedule) AddSystem(name string, access ecs.Access, conditions ...string) ecs.NodeID {
	id := ecs.SystemID(len(s.systems))
	s.systems = append(s.systems, ecs.System{
		ID:         id,
		Name:       name,
		Access:     access,
		Conditions: conditions,
	})
	if _, ok := s.sysByName[name]; !ok {
		s.sysByName[name] = id
	}
	s.invalidate()
	return id
}

// AddSet returns the id of the named set, creating it if needed.
func (s *Schedule) AddSet(name string) ecs.NodeID {
	if id, ok := s.setByName[name]; ok {
		return id
	}
	id := ecs.SetID(len(s.sets))
	s.sets = append(s.sets, ecs.Set{ID: id, Name: name})
	s.setByName[name] = id
	s.invalidate()
	return id
}

// TypeSet returns the anonymous set that contains only sys, creating it if
// needed. Ordering against a system by reference goes through this set.
func (s *Schedule) TypeSet(sys ecs.NodeID) ecs.NodeID {
	if id, ok := s.typeSets[sys]; ok {
		return id
	}
	id := ecs.SetID(len(s.sets))
	name := sys.String()
	if s.exists(sys) {
		name = s.systems[sys.Index].Name
	}
	s.sets = append(s.sets, ecs.Set{ID: id, Name: name, Anonymous: true})
	s.hierarchy = append(s.hierarchy, ecs.Membership{Set: id, Member: sys})
	s.typeSets[sys] = id
	s.invalidate()
	return id
}

// InSet adds member to set. Duplicate memberships are ignored.
func (s *Schedule) InSet(member, set ecs.NodeID) {
	m := ecs.Membership{Set: set, Member: member}
	if slices.Contains(s.hierarchy, m) {
		return
	}
	s.hierarchy = append(s.hierarchy, m)
	s.invalidate()
}

// Before orders a before b. Either side may be a system or a set.
func (s *Schedule) Before(a, b ecs.NodeID) {
	s.deps = append(s.deps, ecs.Dependency{Before: a, After: b})
	s.invalidate()
}

// AmbiguousWith allows a and b to run in any order without being reported.
func (s *Schedule) AmbiguousWith(a, b ecs.NodeID) {
	s.allowed = append(s.allowed, [2]ecs.NodeID{a, b})
	s.invalidate()
}

// SystemByName returns the first system registered under name.
func (s *Schedule) SystemByName(name string) (ecs.NodeID, bool) {
	id, ok := s.sysByName[name]
	return id, ok
}

// SetByName returns the named (non-anonymous) set.
func (s *Schedule) SetByName(name string) (ecs.NodeID, bool) {
	id, ok := s.setByName[name]
	return id, ok
}

// Builds returns how many times the build step actually ran.
func (s *Schedule) Builds() int { return s.builds }

func (s *Schedule) invalidate() {
	s.built = false
	s.ambiguities = nil
}

func (s *Schedule) exists(id ecs.NodeID) bool {
	if id.Index < 0 {
		return false
	}
	if id.IsSystem() {
		return id.Index < len(s.systems)
	}
	return id.Index < len(s.sets)
}

func (s *Schedule) name(id ecs.NodeID) string {
	if !s.exists(id) {
		return id.String()
	}
	if id.IsSystem() {
		return s.systems[id.Index].Name
	}
	return s.sets[id.Index].Name
}

// Label implements ecs.Schedule.
func (s *Schedule) Label() ecs.Label { return s.label }

// Built implements ecs.Schedule.
func (s *Schedule) Built() bool { return s.built }

// Systems implements ecs.Schedule.
func (s *Schedule) Systems() []ecs.System { return slices.Clone(s.systems) }

// Sets implements ecs.Schedule.
func (s *Schedule) Sets() []ecs.Set { return slices.Clone(s.sets) }

// Hierarchy implements ecs.Schedule.
func (s *Schedule) Hierarchy() []ecs.Membership { return slices.Clone(s.hierarchy) }

// Dependencies implements ecs.Schedule.
func (s *Schedule) Dependencies() []ecs.Dependency { return slices.Clone(s.deps) }

// Ambiguities implements ecs.Schedule. It is empty until the schedule is
// built.
func (s *Schedule) Ambiguities() []ecs.Ambiguity { return slices.Clone(s.ambiguities) }

// EnsureBuilt implements ecs.Schedule. A built schedule is returned as is.
func (s *Schedule) EnsureBuilt(world ecs.World, ignored []ecs.ComponentID) error {
	if s.built {
		return nil
	}
	amb, err := s.build(world, ignored)
	if err != nil {
		return err
	}
	s.ambiguities = amb
	s.built = true
	s.builds++
	return nil
}

func (s *Schedule) build(world ecs.World, ignored []ecs.ComponentID) ([]ecs.Ambiguity, error) {
	for _, m := range s.hierarchy {
		if !s.exists(m.Set) || m.Set.IsSystem() {
			return nil, errors.New(errors.ErrCodeDanglingEdge, "schedule %s: membership references unknown set %s", s.label, m.Set)
		}
		if !s.exists(m.Member) {
			return nil, errors.New(errors.ErrCodeDanglingEdge, "schedule %s: membership references unknown node %s", s.label, m.Member)
		}
	}
	for _, d := range s.deps {
		for _, id := range []ecs.NodeID{d.Before, d.After} {
			if !s.exists(id) {
				return nil, errors.New(errors.ErrCodeDanglingEdge, "schedule %s: dependency references unknown node %s", s.label, id)
			}
		}
	}
	if world != nil {
		comps := world.Components()
		for _, sys := range s.systems {
			for _, id := range slices.Concat(sys.Access.Reads, sys.Access.Writes) {
				if _, ok := comps.Info(id); !ok {
					return nil, errors.New(errors.ErrCodeDanglingEdge, "schedule %s: system %s accesses unknown component %d", s.label, sys.Name, id)
				}
			}
		}
	}

	children := make(map[ecs.NodeID][]ecs.NodeID)
	for _, m := range s.hierarchy {
		children[m.Set] = append(children[m.Set], m.Member)
	}
	if err := s.checkHierarchy(children); err != nil {
		return nil, err
	}

	flat := s.flatten(children)
	n := len(s.systems)
	adjacency := make([][]int, n)
	seen := make(map[[2]int]bool)
	for _, d := range s.deps {
		for _, a := range flat(d.Before) {
			for _, b := range flat(d.After) {
				if a == b {
					return nil, fmt.Errorf("schedule %s: system %s is ordered relative to itself", s.label, s.systems[a].Name)
				}
				if seen[[2]int{a, b}] {
					continue
				}
				seen[[2]int{a, b}] = true
				adjacency[a] = append(adjacency[a], b)
			}
		}
	}
	reach := computeReachability(adjacency)
	for i := range n {
		for _, j := range adjacency[i] {
			if reach[j][i] {
				return nil, fmt.Errorf("schedule %s: ordering cycle between %s and %s", s.label, s.systems[i].Name, s.systems[j].Name)
			}
		}
	}

	allowed := make(map[[2]int]bool)
	for _, pair := range s.allowed {
		for _, a := range flat(pair[0]) {
			for _, b := range flat(pair[1]) {
				allowed[[2]int{min(a, b), max(a, b)}] = true
			}
		}
	}

	skip := make(map[ecs.ComponentID]bool, len(ignored))
	for _, id := range ignored {
		skip[id] = true
	}

	var out []ecs.Ambiguity
	for i := range n {
		for j := i + 1; j < n; j++ {
			if reach[i][j] || reach[j][i] || allowed[[2]int{i, j}] {
				continue
			}
			conflicts, whole := conflictsBetween(s.systems[i].Access, s.systems[j].Access, skip)
			if !whole && len(conflicts) == 0 {
				continue
			}
			out = append(out, ecs.Ambiguity{
				A:         s.systems[i].ID,
				B:         s.systems[j].ID,
				Conflicts: conflicts,
			})
		}
	}
	return out, nil
}

func (s *Schedule) checkHierarchy(children map[ecs.NodeID][]ecs.NodeID) error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[ecs.NodeID]int)
	var stack, cycle []ecs.NodeID

	var dfs func(id ecs.NodeID) bool
	dfs = func(id ecs.NodeID) bool {
		color[id] = gray
		stack = append(stack, id)
		for _, child := range children[id] {
			switch color[child] {
			case white:
				if dfs(child) {
					return true
				}
			case gray:
				start := slices.Index(stack, child)
				cycle = append(slices.Clone(stack[start:]), child)
				return true
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
		return false
	}

	for _, set := range s.sets {
		if color[set.ID] == white && dfs(set.ID) {
			names := make([]string, len(cycle))
			for i, id := range cycle {
				names[i] = s.name(id)
			}
			return errors.New(errors.ErrCodeHierarchyCycle, "schedule %s: set hierarchy cycle %s", s.label, strings.Join(names, " -> "))
		}
	}
	return nil
}

// flatten returns a resolver from a node to the sorted indices of the
// systems it stands for. The hierarchy must be acyclic.
func (s *Schedule) flatten(children map[ecs.NodeID][]ecs.NodeID) func(ecs.NodeID) []int {
	memo := make(map[ecs.NodeID][]int)
	var resolve func(id ecs.NodeID) []int
	resolve = func(id ecs.NodeID) []int {
		if id.IsSystem() {
			return []int{id.Index}
		}
		if got, ok := memo[id]; ok {
			return got
		}
		var out []int
		for _, child := range children[id] {
			out = append(out, resolve(child)...)
		}
		slices.Sort(out)
		out = slices.Compact(out)
		memo[id] = out
		return out
	}
	return resolve
}

func conflictsBetween(a, b ecs.Access, skip map[ecs.ComponentID]bool) ([]ecs.ComponentID, bool) {
	if a.World || b.World {
		return nil, true
	}
	var out []ecs.ComponentID
	for _, w := range a.Writes {
		if slices.Contains(b.Reads, w) || slices.Contains(b.Writes, w) {
			out = append(out, w)
		}
	}
	for _, w := range b.Writes {
		if slices.Contains(a.Reads, w) {
			out = append(out, w)
		}
	}
	out = slices.DeleteFunc(out, func(id ecs.ComponentID) bool { return skip[id] })
	slices.Sort(out)
	return slices.Compact(out), false
}

func computeReachability(adjacency [][]int) [][]bool {
	n := len(adjacency)
	reachable := make([][]bool, n)
	for i := range reachable {
		reachable[i] = make([]bool, n)
	}

	var dfs func(source, current int)
	dfs = func(source, current int) {
		for _, next := range adjacency[current] {
			if reachable[source][next] {
				continue
			}
			reachable[source][next] = true
			dfs(source, next)
		}
	}

	for i := range reachable {
		dfs(i, i)
	}
	return reachable
}
