package export

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/ecsdump/pkg/errors"
)

// Format is an output format.
type Format string

const (
	FormatDOT Format = "dot"
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// Formats lists the supported formats.
var Formats = []Format{FormatDOT, FormatSVG, FormatPNG, FormatPDF}

// ParseFormat parses a format name, case-insensitively. Unknown names return
// INVALID_FORMAT.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	if !slices.Contains(Formats, f) {
		return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (available: dot, svg, png, pdf)", name)
	}
	return f, nil
}

// FormatFromPath infers the format from a file extension, falling back to
// DOT.
func FormatFromPath(path string) Format {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "gv" {
		return FormatDOT
	}
	if f, err := ParseFormat(ext); err == nil {
		return f
	}
	return FormatDOT
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/vnd.graphviz; charset=utf-8"
	}
}

// Render converts a DOT document to f. PNG uses scale; other formats ignore
// it.
func Render(ctx context.Context, dot string, f Format, scale float64) ([]byte, error) {
	if f == FormatDOT {
		return []byte(dot), nil
	}
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	switch f {
	case FormatSVG:
		return svg, nil
	case FormatPNG:
		return ToPNG(ctx, svg, scale)
	case FormatPDF:
		return ToPDF(ctx, svg)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", string(f))
}
