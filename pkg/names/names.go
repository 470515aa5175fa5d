// Package names shortens fully qualified type and system names for display.
package names

import "strings"

// Pretty drops module paths from every path segment of name while keeping
// generic arguments, tuples and references intact:
//
//	bevy_ecs::event::Events<game::Collision>  ->  Events<Collision>
//	(app::A, app::B)                          ->  (A, B)
func Pretty(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	start := 0
	for i := 0; i < len(name); i++ {
		if isDelimiter(name[i]) {
			b.WriteString(lastSegment(name[start:i]))
			b.WriteByte(name[i])
			start = i + 1
		}
	}
	b.WriteString(lastSegment(name[start:]))
	return b.String()
}

func isDelimiter(c byte) bool {
	switch c {
	case '<', '>', '(', ')', '[', ']', ',', ' ', '&', ';':
		return true
	}
	return false
}

func lastSegment(path string) string {
	if i := strings.LastIndex(path, "::"); i >= 0 {
		return path[i+2:]
	}
	return path
}
