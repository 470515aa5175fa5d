package annotate

import (
	"slices"

	"github.com/matzehuels/ecsdump/pkg/dot"
	"github.com/matzehuels/ecsdump/pkg/errors"
)

// Style holds the colors and fonts of a rendered graph.
type Style struct {
	Name     string
	FontName string
	FontSize string

	Background string
	Text       string

	System       string
	SystemBorder string
	Set          string
	SetBorder    string
	Schedule     string
	Resource     string
	Event        string
	RenderNode   string
	SubGraph     string

	Edge       string
	Ambiguity  string
	Read       string
	Write      string
	Membership string
	Slot       string

	PenWidth string
}

// LightTheme is the default style.
func LightTheme() Style {
	return Style{
		Name:         "light",
		FontName:     "Helvetica",
		FontSize:     "14",
		Background:   "#ffffff",
		Text:         "#1f2328",
		System:       "#ddf4ff",
		SystemBorder: "#54aeff",
		Set:          "#f6f8fa",
		SetBorder:    "#8c959f",
		Schedule:     "#ffffff",
		Resource:     "#fff8c5",
		Event:        "#fbefff",
		RenderNode:   "#ffffff",
		SubGraph:     "#f6f8fa",
		Edge:         "#57606a",
		Ambiguity:    "#cf222e",
		Read:         "#0969da",
		Write:        "#bc4c00",
		Membership:   "#8c959f",
		Slot:         "#1a7f37",
		PenWidth:     "1.5",
	}
}

// DarkTheme mirrors GitHub's dark color scheme.
func DarkTheme() Style {
	return Style{
		Name:         "dark",
		FontName:     "Helvetica",
		FontSize:     "14",
		Background:   "#0d1117",
		Text:         "#e6edf3",
		System:       "#161b22",
		SystemBorder: "#58a6ff",
		Set:          "#010409",
		SetBorder:    "#6e7681",
		Schedule:     "#0d1117",
		Resource:     "#2d2a12",
		Event:        "#271b33",
		RenderNode:   "#161b22",
		SubGraph:     "#010409",
		Edge:         "#8b949e",
		Ambiguity:    "#f85149",
		Read:         "#58a6ff",
		Write:        "#f0883e",
		Membership:   "#6e7681",
		Slot:         "#3fb950",
		PenWidth:     "1.5",
	}
}

var themes = map[string]func() Style{
	"light":       LightTheme,
	"dark":        DarkTheme,
	"github-dark": DarkTheme,
}

// ThemeNames lists the accepted theme names in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ThemeByName returns the named theme. An empty name selects the light
// theme. Unknown names return INVALID_THEME.
func ThemeByName(name string) (Style, error) {
	if name == "" {
		return LightTheme(), nil
	}
	theme, ok := themes[name]
	if !ok {
		return Style{}, errors.New(errors.ErrCodeInvalidTheme, "unknown theme %q (available: %v)", name, ThemeNames())
	}
	return theme(), nil
}

// orDefault returns the light theme for a zero Style.
func (s Style) orDefault() Style {
	if s.Name == "" && s.Background == "" {
		return LightTheme()
	}
	return s
}

// GraphAttrs returns the top-level graph attributes of s.
func (s Style) GraphAttrs() dot.Attrs {
	s = s.orDefault()
	return dot.Attrs{
		"bgcolor":   s.Background,
		"fontname":  s.FontName,
		"fontcolor": s.Text,
		"fontsize":  s.FontSize,
	}
}

// NodeDefaults returns the default node attributes of s.
func (s Style) NodeDefaults() dot.Attrs {
	s = s.orDefault()
	return dot.Attrs{
		"fontname":  s.FontName,
		"fontcolor": s.Text,
		"shape":     "box",
		"style":     "rounded,filled",
		"penwidth":  s.PenWidth,
	}
}

// EdgeDefaults returns the default edge attributes of s.
func (s Style) EdgeDefaults() dot.Attrs {
	s = s.orDefault()
	return dot.Attrs{
		"fontname":  s.FontName,
		"fontcolor": s.Text,
		"color":     s.Edge,
		"penwidth":  s.PenWidth,
	}
}

// MarkerAttrs returns the attributes of the hidden node placed inside a
// cluster so edges can attach to it.
func MarkerAttrs() dot.Attrs {
	return dot.Attrs{
		"shape": "point",
		"style": "invis",
		"label": "",
		"width": "0",
	}
}
