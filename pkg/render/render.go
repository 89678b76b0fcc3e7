package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/topodiagram/pkg/diagram"
	"github.com/matzehuels/topodiagram/pkg/errors"
)

// Render lays out DOT source and encodes it in the given format.
func Render(ctx context.Context, src string, format diagram.Format) ([]byte, error) {
	switch format {
	case diagram.FormatDOT:
		return []byte(src), nil
	case diagram.FormatSVG:
		return RenderSVG(ctx, src)
	case diagram.FormatPNG, diagram.FormatJPG, diagram.FormatPDF:
		svg, err := RenderSVG(ctx, src)
		if err != nil {
			return nil, err
		}
		return convert(ctx, svg, format)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %q", format)
	}
}

// convert rasterizes through librsvg. Graphviz's built-in raster renderer
// drops edge strokes and node outlines, so every non-SVG image goes via SVG.
func convert(ctx context.Context, svg []byte, format diagram.Format) ([]byte, error) {
	switch format {
	case diagram.FormatPNG:
		return ToPNG(ctx, svg, RasterScale)
	case diagram.FormatJPG:
		return ToJPG(ctx, svg, RasterScale)
	default:
		return ToPDF(ctx, svg)
	}
}

// RenderSVG renders DOT source to SVG using Graphviz.
// The SVG viewBox is normalized to start at the origin.
func RenderSVG(ctx context.Context, src string) ([]byte, error) {
	svg, err := renderGraphviz(ctx, src, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(svg), nil
}

func renderGraphviz(ctx context.Context, src string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBackendUnavailable, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(src))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s", format)
	}
	if buf.Len() == 0 {
		return nil, errors.New(errors.ErrCodeRenderFailed, "render %s: empty output", format)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.-]+)\s+([0-9.-]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
