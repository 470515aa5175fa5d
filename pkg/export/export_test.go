package export

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/ecsdump/pkg/errors"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"dot", FormatDOT, false},
		{"SVG", FormatSVG, false},
		{" png ", FormatPNG, false},
		{"pdf", FormatPDF, false},
		{"jpeg", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if tt.wantErr && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ParseFormat(%q) error code = %s, want INVALID_FORMAT", tt.in, errors.GetCode(err))
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"out.svg":      FormatSVG,
		"out.PNG":      FormatPNG,
		"out.pdf":      FormatPDF,
		"out.gv":       FormatDOT,
		"out.dot":      FormatDOT,
		"schedule":     FormatDOT,
		"dir.v2/graph": FormatDOT,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestContentType(t *testing.T) {
	if got := FormatSVG.ContentType(); got != "image/svg+xml" {
		t.Errorf("ContentType() = %q", got)
	}
	if got := FormatDOT.ContentType(); !strings.HasPrefix(got, "text/vnd.graphviz") {
		t.Errorf("ContentType() = %q", got)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if !strings.HasSuffix(out, "<g/></svg>") {
		t.Errorf("body changed: %s", out)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("normalizeViewBox() without viewBox = %s", got)
	}
}

func TestValidate(t *testing.T) {
	ctx := context.Background()
	if err := Validate(ctx, "digraph G {\n  a -> b;\n}\n"); err != nil {
		t.Fatalf("Validate(valid) = %v", err)
	}
	err := Validate(ctx, "digraph G {\n  a -> ;\n")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Fatalf("Validate(invalid) = %v, want INVALID_FORMAT", err)
	}
}

func TestRenderDOTPassthrough(t *testing.T) {
	got, err := Render(context.Background(), "digraph G {}\n", FormatDOT, 1)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if string(got) != "digraph G {}\n" {
		t.Errorf("Render() = %q", got)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), "digraph G {\n  a -> b;\n}\n")
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Errorf("RenderSVG() did not produce svg: %.80s", svg)
	}
}
