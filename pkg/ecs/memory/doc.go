// Package memory is an in-memory host scheduler implementing every
// interface of package ecs.
//
// It exists so that ecsdump can be driven without a running engine: the CLI
// loads an app manifest into it, and tests build schedules with it directly.
//
// # Building
//
// A [Schedule] is assembled with [Schedule.AddSystem], [Schedule.AddSet],
// [Schedule.InSet], [Schedule.Before] and [Schedule.AmbiguousWith]. Nothing is
// computed until [Schedule.EnsureBuilt] runs the build step:
//
//  1. the set hierarchy is checked for cycles
//  2. set-level ordering is flattened to system-level ordering
//  3. reachability between systems is computed
//  4. every unordered pair with conflicting access becomes an ambiguity,
//     unless the pair was declared ambiguous-with or only conflicts on
//     ignored components
//
// The build is cached. Any structural change invalidates the cache.
//
// # Concurrency
//
// [World.WithSchedules] serializes access with a mutex. Builder methods are
// not synchronized and must not run concurrently with a dump.
package memory
