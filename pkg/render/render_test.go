package render

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os/exec"
	"strings"
	"testing"

	"github.com/matzehuels/topodiagram/pkg/diagram"
	"github.com/matzehuels/topodiagram/pkg/errors"
)

const simpleDOT = `digraph G { subgraph cluster_0 { label="vpc"; a; } a -> b; }`

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), simpleDOT)
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}

	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
	if !strings.Contains(string(svg), "vpc") {
		t.Error("RenderSVG() output missing cluster label")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	_, err := RenderSVG(context.Background(), `not valid DOT {{{`)
	if err == nil {
		t.Fatal("RenderSVG() should return error for invalid DOT")
	}
	if !errors.Is(err, errors.ErrCodeRenderFailed) {
		t.Errorf("RenderSVG() error = %v, want %s", err, errors.ErrCodeRenderFailed)
	}
}

// requireRSVG skips tests that rasterize when librsvg is not installed.
func requireRSVG(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		t.Skip("rsvg-convert not installed")
	}
}

// edgeDOT places two nodes far apart so the gap holds only the edge stroke.
const edgeDOT = `digraph G { graph [rankdir=TB, ranksep=2.0, splines=ortho]; edge [color="#7B8894"]; a -> b; }`

func TestRenderPNG(t *testing.T) {
	requireRSVG(t)

	data, err := Render(context.Background(), simpleDOT, diagram.FormatPNG)
	if err != nil {
		t.Fatalf("Render(png) error: %v", err)
	}

	magic := []byte("\x89PNG\r\n\x1a\n")
	if !bytes.HasPrefix(data, magic) {
		t.Errorf("Render(png) output does not start with PNG signature: % x", data[:min(8, len(data))])
	}
}

func TestRenderRasterDrawsEdges(t *testing.T) {
	requireRSVG(t)

	tests := []struct {
		format diagram.Format
		decode func(io.Reader) (image.Image, error)
	}{
		{diagram.FormatPNG, png.Decode},
		{diagram.FormatJPG, jpeg.Decode},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			data, err := Render(context.Background(), edgeDOT, tt.format)
			if err != nil {
				t.Fatalf("Render(%s) error: %v", tt.format, err)
			}
			img, err := tt.decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("decode %s: %v", tt.format, err)
			}

			// Middle fifth of the height lies between the two nodes.
			b := img.Bounds()
			cx := b.Min.X + b.Dx()/2
			top, bottom := b.Min.Y+b.Dy()*2/5, b.Min.Y+b.Dy()*3/5
			rows := bottom - top
			stroked := 0
			for y := top; y < bottom; y++ {
				for x := cx - 4; x <= cx+4; x++ {
					if !isLight(img.At(x, y)) {
						stroked++
						break
					}
				}
			}
			if stroked < rows*9/10 {
				t.Errorf("edge stroke covers %d of %d rows between nodes, want nearly all", stroked, rows)
			}
		})
	}
}

func isLight(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	const limit = 0xF000
	return r > limit && g > limit && b > limit
}

func TestRenderRasterWithoutBackend(t *testing.T) {
	orig := lookPath
	lookPath = func(string) (string, error) { return "", exec.ErrNotFound }
	defer func() { lookPath = orig }()

	for _, format := range []diagram.Format{diagram.FormatPNG, diagram.FormatJPG, diagram.FormatPDF} {
		_, err := Render(context.Background(), simpleDOT, format)
		if !errors.Is(err, errors.ErrCodeBackendUnavailable) {
			t.Errorf("Render(%s) error = %v, want %s", format, err, errors.ErrCodeBackendUnavailable)
		}
	}
}

func TestRenderDOTPassthrough(t *testing.T) {
	out, err := Render(context.Background(), simpleDOT, diagram.FormatDOT)
	if err != nil {
		t.Fatalf("Render(dot) error: %v", err)
	}
	if string(out) != simpleDOT {
		t.Errorf("Render(dot) = %q, want source unchanged", out)
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := Render(context.Background(), simpleDOT, diagram.Format("gif"))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Render(gif) error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestToPDFWithoutBackend(t *testing.T) {
	orig := lookPath
	lookPath = func(string) (string, error) { return "", exec.ErrNotFound }
	defer func() { lookPath = orig }()

	_, err := ToPDF(context.Background(), []byte("<svg/>"))
	if !errors.Is(err, errors.ErrCodeBackendUnavailable) {
		t.Errorf("ToPDF() error = %v, want %s", err, errors.ErrCodeBackendUnavailable)
	}
	if !strings.Contains(err.Error(), "librsvg") {
		t.Errorf("ToPDF() error should mention librsvg: %v", err)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "negative origin",
			svg:  `<svg viewBox="-4 -4 100 50">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 100.00 50.00" width="100" height="50">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}
