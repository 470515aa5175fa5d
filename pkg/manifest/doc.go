// Package manifest loads a host application from a declarative file.
//
// A manifest lists components, schedules with their sets and systems, and
// optionally a render graph. It can be written in TOML, YAML or JSON; the
// format is picked from the file extension.
//
//	[[components]]
//	name = "game::Position"
//	kind = "component"
//
//	[[schedules]]
//	label = "Update"
//
//	[[schedules.sets]]
//	name = "Physics"
//	before = ["Render"]
//
//	[[schedules.systems]]
//	name = "game::movement"
//	reads = ["Time"]
//	writes = ["game::Position"]
//	in = ["Physics"]
//
// Components referenced by a system but not declared are registered as
// plain components. Ordering between systems goes through each system's
// anonymous type set, the way hosts record "a.before(b)".
//
// [Manifest.Build] returns a [memory.App] that the dump functions accept.
// Every problem is reported as INVALID_MANIFEST.
//
// [memory.App]: github.com/matzehuels/ecsdump/pkg/ecs/memory
package manifest
