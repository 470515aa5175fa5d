package manifest

// Manifest is the root of a manifest file.
type Manifest struct {
	Components        []Component  `toml:"components" yaml:"components" json:"components"`
	IgnoreAmbiguities []string     `toml:"ignore_ambiguities" yaml:"ignore_ambiguities" json:"ignore_ambiguities"`
	Schedules         []Schedule   `toml:"schedules" yaml:"schedules" json:"schedules"`
	Render            *RenderGraph `toml:"render" yaml:"render" json:"render"`
}

// Component declares a component, resource or event.
type Component struct {
	Name string `toml:"name" yaml:"name" json:"name"`
	Kind string `toml:"kind" yaml:"kind" json:"kind"` // component (default), resource or event
}

// Schedule declares one schedule.
type Schedule struct {
	Label   string   `toml:"label" yaml:"label" json:"label"`
	Sets    []Set    `toml:"sets" yaml:"sets" json:"sets"`
	Systems []System `toml:"systems" yaml:"systems" json:"systems"`
}

// Set declares a named system set. Sets named only in an "in" list are
// created implicitly.
type Set struct {
	Name   string   `toml:"name" yaml:"name" json:"name"`
	In     []string `toml:"in" yaml:"in" json:"in"`
	Before []string `toml:"before" yaml:"before" json:"before"`
	After  []string `toml:"after" yaml:"after" json:"after"`
}

// System declares a system and its access.
type System struct {
	Name          string   `toml:"name" yaml:"name" json:"name"`
	Reads         []string `toml:"reads" yaml:"reads" json:"reads"`
	Writes        []string `toml:"writes" yaml:"writes" json:"writes"`
	Exclusive     bool     `toml:"exclusive" yaml:"exclusive" json:"exclusive"`
	In            []string `toml:"in" yaml:"in" json:"in"`
	Before        []string `toml:"before" yaml:"before" json:"before"`
	After         []string `toml:"after" yaml:"after" json:"after"`
	AmbiguousWith []string `toml:"ambiguous_with" yaml:"ambiguous_with" json:"ambiguous_with"`
	Conditions    []string `toml:"conditions" yaml:"conditions" json:"conditions"`
}

// RenderGraph declares a render graph. Its presence gives the app a render
// sub-app.
type RenderGraph struct {
	Nodes     []RenderNode     `toml:"nodes" yaml:"nodes" json:"nodes"`
	Edges     []RenderEdge     `toml:"edges" yaml:"edges" json:"edges"`
	SubGraphs []RenderSubGraph `toml:"sub_graphs" yaml:"sub_graphs" json:"sub_graphs"`
}

// RenderNode declares a render node and its slots.
type RenderNode struct {
	Name    string `toml:"name" yaml:"name" json:"name"`
	Type    string `toml:"type" yaml:"type" json:"type"`
	Inputs  []Slot `toml:"inputs" yaml:"inputs" json:"inputs"`
	Outputs []Slot `toml:"outputs" yaml:"outputs" json:"outputs"`
}

// Slot declares a render node slot.
type Slot struct {
	Name string `toml:"name" yaml:"name" json:"name"`
	Type string `toml:"type" yaml:"type" json:"type"`
}

// RenderEdge connects two render nodes. With both slots set it is a slot
// edge; with neither it only orders the nodes.
type RenderEdge struct {
	From     string `toml:"from" yaml:"from" json:"from"`
	To       string `toml:"to" yaml:"to" json:"to"`
	FromSlot *int   `toml:"from_slot" yaml:"from_slot" json:"from_slot"`
	ToSlot   *int   `toml:"to_slot" yaml:"to_slot" json:"to_slot"`
}

// RenderSubGraph nests a render graph under a name.
type RenderSubGraph struct {
	Name  string      `toml:"name" yaml:"name" json:"name"`
	Graph RenderGraph `toml:"graph" yaml:"graph" json:"graph"`
}
