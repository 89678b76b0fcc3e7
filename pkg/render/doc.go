// Package render turns Graphviz DOT source into image bytes.
//
// # Overview
//
// This package is the boundary to the layout engine. Node placement, edge
// routing and cluster boxes are computed by Graphviz, run in process through
// [github.com/goccy/go-graphviz]; this package only selects the output format
// and reports failures with coded errors.
//
//	src := dot.ToDOT(d, dot.Options{})
//	png, err := render.Render(ctx, src, diagram.FormatPNG)
//
// # Formats
//
//   - svg: rendered directly by Graphviz
//   - png, pdf: rendered to SVG, then converted with rsvg-convert (librsvg)
//   - jpg: the PNG above, re-encoded over a white background
//   - dot: the source itself, unchanged
//
// PNG, JPG and PDF export require librsvg: brew install librsvg (macOS),
// apt install librsvg2-bin (Linux). When it is missing, [ToPNG], [ToJPG] and
// [ToPDF] fail with BACKEND_UNAVAILABLE.
//
// [dot]: github.com/matzehuels/topodiagram/pkg/render/dot
package render
