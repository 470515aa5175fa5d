package ecs

import "strconv"

// Label identifies a schedule. Labels compare by value and can be used as
// map keys.
type Label string

// String returns the label text.
func (l Label) String() string { return string(l) }

// NodeKind distinguishes the two node families of a schedule graph.
type NodeKind int

const (
	// KindSystem marks an executable system.
	KindSystem NodeKind = iota
	// KindSet marks a system set.
	KindSet
)

// String returns "system" or "set".
func (k NodeKind) String() string {
	if k == KindSet {
		return "set"
	}
	return "system"
}

// NodeID is the scheduler's stable identifier for a system or set. Indices
// are assigned by the host and are unique per kind within one schedule.
type NodeID struct {
	Kind  NodeKind
	Index int
}

// SystemID returns the id of the i-th system.
func SystemID(i int) NodeID { return NodeID{Kind: KindSystem, Index: i} }

// SetID returns the id of the i-th set.
func SetID(i int) NodeID { return NodeID{Kind: KindSet, Index: i} }

// String formats the id as "system:3" or "set:1".
func (id NodeID) String() string {
	return id.Kind.String() + ":" + strconv.Itoa(id.Index)
}

// IsSystem reports whether the id refers to a system.
func (id NodeID) IsSystem() bool { return id.Kind == KindSystem }

// ComponentID identifies a component, resource or event type in a world.
type ComponentID int

// ComponentKind classifies what a [ComponentID] stands for.
type ComponentKind int

const (
	// Component is per-entity data.
	Component ComponentKind = iota
	// Resource is a world singleton.
	Resource
	// Event is an event queue resource.
	Event
)

// String returns the lower-case kind name.
func (k ComponentKind) String() string {
	switch k {
	case Resource:
		return "resource"
	case Event:
		return "event"
	default:
		return "component"
	}
}

// ComponentInfo is the metadata a world keeps per component. It is used only
// for labeling.
type ComponentInfo struct {
	Name string
	Kind ComponentKind
}

// Components resolves component metadata.
type Components interface {
	Info(id ComponentID) (ComponentInfo, bool)
}

// Access is the declared data access of a system.
type Access struct {
	Reads  []ComponentID
	Writes []ComponentID
	// World marks exclusive world access, which conflicts with everything.
	World bool
}

// System is an executable unit of a schedule.
type System struct {
	ID     NodeID
	Name   string
	Access Access
	// Conditions are the names of the run conditions guarding the system.
	Conditions []string
}

// Set is a named grouping of systems and other sets.
type Set struct {
	ID   NodeID
	Name string
	// Anonymous sets are created implicitly by the host (one per system
	// type). They carry no user meaning and are never drawn.
	Anonymous bool
}

// Dependency is an ordering edge: Before runs before After.
type Dependency struct {
	Before NodeID
	After  NodeID
}

// Membership states that Member belongs to Set.
type Membership struct {
	Set    NodeID
	Member NodeID
}

// Ambiguity is an unordered pair of systems with conflicting access and no
// declared order. Empty Conflicts means the systems conflict on the whole
// world.
type Ambiguity struct {
	A         NodeID
	B         NodeID
	Conflicts []ComponentID
}

// Schedule is a built (or buildable) schedule of the host.
type Schedule interface {
	Label() Label
	// EnsureBuilt realizes the cached dependency graph. It is idempotent and
	// does not change ordering semantics. Ambiguities on the ignored
	// components are not reported.
	EnsureBuilt(world World, ignored []ComponentID) error
	Built() bool

	Systems() []System
	Sets() []Set
	Hierarchy() []Membership
	Dependencies() []Dependency
	Ambiguities() []Ambiguity
}

// Schedules is the host's schedule registry.
type Schedules interface {
	// Labels returns every label in a deterministic order.
	Labels() []Label
	Get(label Label) (Schedule, bool)
	// IgnoredAmbiguities lists components the host chose to exclude from
	// ambiguity detection.
	IgnoredAmbiguities() []ComponentID
}

// World owns components and schedules.
type World interface {
	Components() Components
	// WithSchedules runs fn while holding exclusive access to the schedules.
	WithSchedules(fn func(Schedules) error) error
	// RenderGraph returns the world's render graph, if it has one.
	RenderGraph() (RenderGraph, bool)
}

// App is a host application: a main world and an optional render sub-app.
type App interface {
	World() World
	RenderApp() (World, bool)
}
