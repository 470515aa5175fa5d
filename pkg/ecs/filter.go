package ecs

import (
	"regexp"
	"slices"
	"strings"
)

// SystemFilter decides whether a system is drawn. A nil filter includes
// every system.
type SystemFilter func(System) bool

// Includes reports whether s passes the filter.
func (f SystemFilter) Includes(s System) bool {
	return f == nil || f(s)
}

// ScheduleFilter decides whether a schedule is drawn. A nil filter includes
// every schedule.
type ScheduleFilter func(Schedule) bool

// Includes reports whether s passes the filter.
func (f ScheduleFilter) Includes(s Schedule) bool {
	return f == nil || f(s)
}

// SystemNameHasPrefix includes systems whose name starts with any prefix.
func SystemNameHasPrefix(prefixes ...string) SystemFilter {
	return func(s System) bool {
		for _, p := range prefixes {
			if strings.HasPrefix(s.Name, p) {
				return true
			}
		}
		return false
	}
}

// SystemNameMatches includes systems whose name matches re.
func SystemNameMatches(re *regexp.Regexp) SystemFilter {
	return func(s System) bool { return re.MatchString(s.Name) }
}

// ScheduleLabelIs includes schedules whose label is one of labels.
func ScheduleLabelIs(labels ...Label) ScheduleFilter {
	return func(s Schedule) bool { return slices.Contains(labels, s.Label()) }
}
