// Package pkg provides the libraries behind ecsdump.
//
// # Overview
//
// ecsdump turns the scheduler state of an ECS app into Graphviz DOT. The pkg
// directory is organized into four areas:
//
//  1. Host model: [ecs] (collaborator interfaces) and [ecs/memory] (an
//     in-memory host with a real build step), fed by [manifest]
//  2. Core: [graph] (derived graph and extraction), [graph/transform]
//     (simplification), [annotate] (ids, themes, attributes) and [dot]
//     (serialization)
//  3. Entry points: [render] (one orchestrator per graph kind) and [dump]
//     (the public API)
//  4. Infrastructure: [pipeline], [export], [cache], [observability],
//     [errors], [names] and [buildinfo]
//
// # Architecture
//
// The data flow of one call:
//
//	ecs.World.WithSchedules (exclusive scope)
//	         ↓
//	Schedule.EnsureBuilt
//	         ↓
//	graph.FromSchedule / graph.FromRenderGraph
//	         ↓
//	transform.Simplify
//	         ↓
//	annotate.Apply
//	         ↓
//	dot.Writer → string
//
// [pipeline.Runner] wraps this with manifest loading, logging, observability
// hooks and cached conversion to SVG, PNG or PDF.
package pkg
