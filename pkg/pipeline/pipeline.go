// Package pipeline runs the load → dump → export pipeline shared by the CLI
// commands and the HTTP server.
//
// # Stages
//
//  1. Load: read a manifest file and build the app it describes
//  2. Dump: render one of the four graphs of the app as DOT
//  3. Export: convert the DOT document to the requested formats
//
// Export results are cached by the hash of the DOT text, so repeated requests
// for an unchanged app skip Graphviz entirely.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache.NewMemoryCache(), nil, logger)
//	app, err := runner.Load("game.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Execute(ctx, app, pipeline.Options{
//	    Kind:     pipeline.KindSchedule,
//	    Schedule: "Update",
//	    Formats:  []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"regexp"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ecsdump/pkg/annotate"
	"github.com/matzehuels/ecsdump/pkg/cache"
	"github.com/matzehuels/ecsdump/pkg/ecs"
	"github.com/matzehuels/ecsdump/pkg/errors"
	"github.com/matzehuels/ecsdump/pkg/export"
	"github.com/matzehuels/ecsdump/pkg/render/data"
	"github.com/matzehuels/ecsdump/pkg/render/event"
	"github.com/matzehuels/ecsdump/pkg/render/rendergraph"
	"github.com/matzehuels/ecsdump/pkg/render/schedule"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// Graph kinds.
const (
	KindSchedule = "schedule"
	KindData     = "data"
	KindEvents   = "events"
	KindRender   = "render"
)

const (
	// DefaultSchedule is the schedule drawn when none is named.
	DefaultSchedule = "Update"

	// DefaultTheme is the default color theme.
	DefaultTheme = "light"

	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0
)

// Kinds lists the graph kinds in display order.
var Kinds = []string{KindSchedule, KindData, KindEvents, KindRender}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one dump. It supports JSON for the HTTP API.
type Options struct {
	Kind     string `json:"kind"`
	Schedule string `json:"schedule,omitempty"`

	// Filters
	SystemPrefixes []string `json:"system_prefixes,omitempty"`
	SystemPattern  string   `json:"system_pattern,omitempty"`
	Schedules      []string `json:"schedules,omitempty"` // data and events graphs

	// Schedule graph
	CollapseSingleSets bool `json:"collapse_single_sets,omitempty"`
	HideAmbiguities    bool `json:"hide_ambiguities,omitempty"`
	KeepTransitive     bool `json:"keep_transitive,omitempty"`
	ShowConditions     bool `json:"show_conditions,omitempty"`
	IncludeEmptySets   bool `json:"include_empty_sets,omitempty"`

	// Data and events graphs
	IncludeEvents  bool `json:"include_events,omitempty"`
	HideSingleEdge bool `json:"hide_single_edge,omitempty"`

	// Render graph
	ShowTypeNames bool `json:"show_type_names,omitempty"`

	// Output
	RawNames bool     `json:"raw_names,omitempty"`
	Theme    string   `json:"theme,omitempty"`
	Formats  []string `json:"formats,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	Refresh  bool     `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	style     annotate.Style
	pattern   *regexp.Regexp
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Kind string

	// DOT is the dumped graph.
	DOT string

	// Artifacts contains exported outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether every exported artifact came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	DOTBytes   int
	DumpTime   time.Duration
	ExportTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateKind checks that kind names a graph.
func ValidateKind(kind string) error {
	for _, k := range Kinds {
		if k == kind {
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvalidInput, "invalid kind: %q (must be one of: schedule, data, events, render)", kind)
}

// ValidateFormats checks that all formats are known and normalizes their
// spelling in place.
func ValidateFormats(formats []string) error {
	for i, f := range formats {
		parsed, err := export.ParseFormat(f)
		if err != nil {
			return err
		}
		formats[i] = string(parsed)
	}
	return nil
}

// NormalizeFormats returns a validated copy of formats with normalized
// spelling. The input is not modified.
func NormalizeFormats(formats []string) ([]string, error) {
	out := slices.Clone(formats)
	if err := ValidateFormats(out); err != nil {
		return nil, err
	}
	return out, nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Kind == "" {
		o.Kind = KindSchedule
	}
	if err := ValidateKind(o.Kind); err != nil {
		return err
	}
	if o.Kind == KindSchedule {
		if o.Schedule == "" {
			o.Schedule = DefaultSchedule
		}
		if err := errors.ValidateLabel(o.Schedule); err != nil {
			return err
		}
	}
	if o.SystemPattern != "" {
		re, err := regexp.Compile(o.SystemPattern)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid system pattern %q", o.SystemPattern)
		}
		o.pattern = re
	}

	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
	style, err := annotate.ThemeByName(o.Theme)
	if err != nil {
		return err
	}
	o.style = style

	if len(o.Formats) == 0 {
		o.Formats = []string{string(export.FormatDOT)}
	}
	// Callers may share one Formats slice between concurrent requests.
	formats, err := NormalizeFormats(o.Formats)
	if err != nil {
		return err
	}
	o.Formats = formats
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// SystemFilter combines the prefix and pattern filters. Nil when neither is
// set.
func (o *Options) SystemFilter() ecs.SystemFilter {
	var prefix, pattern ecs.SystemFilter
	if len(o.SystemPrefixes) > 0 {
		prefix = ecs.SystemNameHasPrefix(o.SystemPrefixes...)
	}
	if o.pattern != nil {
		pattern = ecs.SystemNameMatches(o.pattern)
	}
	switch {
	case prefix == nil:
		return pattern
	case pattern == nil:
		return prefix
	}
	return func(s ecs.System) bool { return prefix(s) && pattern(s) }
}

// ScheduleFilter selects the schedules of the data and events graphs. Nil
// when no schedules are named.
func (o *Options) ScheduleFilter() ecs.ScheduleFilter {
	if len(o.Schedules) == 0 {
		return nil
	}
	labels := make([]ecs.Label, len(o.Schedules))
	for i, s := range o.Schedules {
		labels[i] = ecs.Label(s)
	}
	return ecs.ScheduleLabelIs(labels...)
}

// ScheduleSettings returns the schedule graph settings.
func (o *Options) ScheduleSettings() schedule.Settings {
	return schedule.Settings{
		Style:                    o.style,
		IncludeSystem:            o.SystemFilter(),
		CollapseSingleSystemSets: o.CollapseSingleSets,
		HideAmbiguities:          o.HideAmbiguities,
		SkipTransitiveReduction:  o.KeepTransitive,
		PrettifyNames:            !o.RawNames,
		ShowConditions:           o.ShowConditions,
		IncludeEmptySets:         o.IncludeEmptySets,
	}
}

// DataSettings returns the data graph settings.
func (o *Options) DataSettings() data.Settings {
	return data.Settings{
		Style:                    o.style,
		IncludeSystem:            o.SystemFilter(),
		IncludeSchedule:          o.ScheduleFilter(),
		PrettifyNames:            !o.RawNames,
		IncludeEvents:            o.IncludeEvents,
		HideSingleEdgeComponents: o.HideSingleEdge,
	}
}

// EventSettings returns the event graph settings.
func (o *Options) EventSettings() event.Settings {
	return event.Settings{
		Style:                o.style,
		IncludeSystem:        o.SystemFilter(),
		IncludeSchedule:      o.ScheduleFilter(),
		PrettifyNames:        !o.RawNames,
		HideSingleEdgeEvents: o.HideSingleEdge,
	}
}

// RenderGraphSettings returns the render graph settings.
func (o *Options) RenderGraphSettings() rendergraph.Settings {
	return rendergraph.Settings{
		Style:         o.style,
		ShowTypeNames: o.ShowTypeNames,
	}
}

// ArtifactKeyOpts returns cache key options for one export format. Scale
// only affects PNG.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	if format == string(export.FormatPNG) {
		opts.Scale = o.Scale
	}
	return opts
}
