package diagram

import (
	"strings"

	"github.com/matzehuels/topodiagram/pkg/errors"
)

// Direction is the overall flow axis of the rendered graph.
type Direction string

// Supported layout directions.
const (
	TopToBottom Direction = "TB"
	BottomToTop Direction = "BT"
	LeftToRight Direction = "LR"
	RightToLeft Direction = "RL"
)

// Format is the output file format.
type Format string

// Supported output formats.
const (
	FormatPNG Format = "png"
	FormatJPG Format = "jpg"
	FormatSVG Format = "svg"
	FormatPDF Format = "pdf"
	FormatDOT Format = "dot"
)

// Defaults applied by [Spec.Normalize].
const (
	DefaultDirection = TopToBottom
	DefaultFormat    = FormatPNG
)

var validDirections = map[Direction]bool{
	TopToBottom: true,
	BottomToTop: true,
	LeftToRight: true,
	RightToLeft: true,
}

var validFormats = map[Format]bool{
	FormatPNG: true,
	FormatJPG: true,
	FormatSVG: true,
	FormatPDF: true,
	FormatDOT: true,
}

// Formats returns the supported output formats in a stable order.
func Formats() []Format {
	return []Format{FormatPNG, FormatJPG, FormatSVG, FormatPDF, FormatDOT}
}

// Directions returns the supported layout directions in a stable order.
func Directions() []Direction {
	return []Direction{TopToBottom, BottomToTop, LeftToRight, RightToLeft}
}

// ParseDirection converts a case-insensitive string to a Direction.
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToUpper(strings.TrimSpace(s)))
	if !validDirections[d] {
		return "", errors.New(errors.ErrCodeInvalidDirection,
			"invalid direction: %q (must be one of: TB, BT, LR, RL)", s)
	}
	return d, nil
}

// ParseFormat converts a case-insensitive string to a Format.
// "jpeg" is accepted as an alias for "jpg".
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "jpeg" {
		f = FormatJPG
	}
	if !validFormats[f] {
		return "", errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: png, jpg, svg, pdf, dot)", s)
	}
	return f, nil
}

// Spec holds the diagram-wide settings handed to the renderer.
type Spec struct {
	Title     string    `json:"title" toml:"title"`
	Direction Direction `json:"direction" toml:"direction"`
	Filename  string    `json:"filename" toml:"filename"`
	Format    Format    `json:"format" toml:"format"`
}

// Normalize returns a copy of s with defaults applied: direction TB, format
// png, and a filename derived from the title when none is given.
func (s Spec) Normalize() Spec {
	if s.Direction == "" {
		s.Direction = DefaultDirection
	}
	if s.Format == "" {
		s.Format = DefaultFormat
	}
	if s.Filename == "" {
		s.Filename = FilenameFromTitle(s.Title)
	}
	return s
}

// Validate checks that every field holds a supported value.
// Call it on a normalized spec; empty fields are reported as errors.
func (s Spec) Validate() error {
	if !validDirections[s.Direction] {
		return errors.New(errors.ErrCodeInvalidDirection,
			"invalid direction: %q (must be one of: TB, BT, LR, RL)", s.Direction)
	}
	if !validFormats[s.Format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: png, jpg, svg, pdf, dot)", s.Format)
	}
	return errors.ValidateFilename(s.Filename)
}

// OutputName is the name of the file the renderer writes: filename.format.
func (s Spec) OutputName() string {
	return s.Filename + "." + string(s.Format)
}

// FilenameFromTitle derives an output filename from a title by lowercasing
// it and joining whitespace-separated words with underscores.
func FilenameFromTitle(title string) string {
	return strings.ToLower(strings.Join(strings.Fields(title), "_"))
}
