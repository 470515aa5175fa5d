// Package graph is the derived graph ecsdump builds from scheduler state.
//
// # Overview
//
// A [Graph] holds typed nodes and typed edges. It is built fresh for every
// dump by [FromSchedule] or [FromRenderGraph], reduced by package transform,
// decorated with ids and attributes by package annotate, and thrown away once
// the DOT text is written. Nothing outside that pipeline mutates it.
//
// # Nodes
//
// Every [Node] has a stable key derived from source identifiers, never from
// memory layout:
//
//	schedule:Update     the root container of a schedule
//	Update/set:2        a system set
//	Update/system:7     a system
//	component:4         a component, resource or event (shared across schedules)
//	render:core_3d/tonemapping   a render node
//
// Containment is stored as [Node.Parent]. A node has at most one parent, so
// containment is a forest. Host memberships beyond the first become
// [Membership] edges.
//
// # Edges
//
// [Order] edges come from ordering constraints, [Ambiguous] edges from the
// host's ambiguity detection and [Access] edges from declared data access.
// Render graphs add [Slot] edges between node ports.
//
// # Validation
//
// [Graph.Validate] checks endpoints and parent chains. [ValidateClassification]
// checks that no pair is both ordered and ambiguous; it must run on the
// unreduced graph.
//
// # Concurrency
//
// Graph is not safe for concurrent use.
package graph
