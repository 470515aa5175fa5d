// Package dump is the entry point for turning a host application into DOT.
//
// Each function takes exclusive access to the host's schedules for the whole
// call, builds every selected schedule (idempotently) and renders one
// document:
//
//   - [ScheduleGraphDOT]: one schedule with sets as clusters
//   - [DataGraphDOT]: component and resource access of every schedule
//   - [EventsGraphDOT]: event writers and readers of every schedule
//   - [RenderGraphDOT]: the render sub-app's render graph
//
// The Print variants render with default settings and write the result to
// an io.Writer.
//
// # Errors
//
// A missing schedule returns SCHEDULE_NOT_FOUND and a missing render app
// returns RENDER_APP_MISSING. A schedule the host cannot build returns
// BUILD_FAILED wrapping the host's error. Filtering everything away is not
// an error: the result is an empty but valid graph.
package dump
