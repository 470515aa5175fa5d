// Package export turns DOT documents into images.
//
// [RenderSVG] lays a document out with Graphviz (through go-graphviz, no
// system install needed). [ToPDF] and [ToPNG] convert the SVG further with
// the external rsvg-convert tool:
//
//	svg, err := export.RenderSVG(ctx, dot)
//	pdf, err := export.ToPDF(ctx, svg)
//	png, err := export.ToPNG(ctx, svg, 2.0) // 2x scale
//
// [Render] picks the conversion from a [Format] and [Validate] only parses
// the document, which is how tests check that output is well formed.
//
// PDF and PNG require librsvg: brew install librsvg (macOS), apt install
// librsvg2-bin (Linux).
package export
