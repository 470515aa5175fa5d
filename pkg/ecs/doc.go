// Package ecs defines the narrow interfaces through which ecsdump reads a
// host scheduler.
//
// # Overview
//
// The scheduler, the world container and the render subsystem are external
// collaborators. ecsdump never runs systems and never changes ordering; it
// only asks a [Schedule] to make sure its dependency graph is built and then
// enumerates what the build produced:
//
//   - [System] nodes with their declared [Access]
//   - [Set] nodes and the containment [Membership] hierarchy
//   - ordering [Dependency] edges
//   - [Ambiguity] pairs detected by the host
//
// # Exclusive Access
//
// All schedules of a [World] are visited inside [World.WithSchedules]. The
// implementation holds an exclusive lock for the duration of fn and must
// release it on every exit path, so a single dump sees one consistent
// snapshot.
//
// # Filters
//
// [SystemFilter] and [ScheduleFilter] are plain function values. A nil filter
// includes everything, which is what the zero value of every settings struct
// relies on.
//
// The in-memory host in [github.com/matzehuels/ecsdump/pkg/ecs/memory]
// implements every interface here.
package ecs
