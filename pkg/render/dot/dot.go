package dot

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/topodiagram/pkg/diagram"
)

// Options configures DOT generation.
type Options struct {
	// Detailed appends the component name (e.g. "Cloud SQL") under each node label.
	Detailed bool
}

var graphAttrs = [][2]string{
	{"pad", "2.0"},
	{"splines", "ortho"},
	{"nodesep", "0.60"},
	{"ranksep", "0.75"},
	{"fontname", "Sans-Serif"},
	{"fontsize", "15"},
	{"fontcolor", "#2D3436"},
	{"bgcolor", "white"},
}

var nodeAttrs = [][2]string{
	{"shape", "box"},
	{"style", "rounded,filled"},
	{"fixedsize", "false"},
	{"width", "1.4"},
	{"height", "1.0"},
	{"margin", "0.2,0.1"},
	{"fontname", "Sans-Serif"},
	{"fontsize", "13"},
	{"fontcolor", "#2D3436"},
}

var edgeAttrs = [][2]string{
	{"color", "#7B8894"},
}

// clusterColors cycle by nesting depth.
var clusterColors = []string{"#E5F5FD", "#EBF3E7", "#ECE8F6", "#FDF7E3"}

type kindStyle struct {
	shape     string
	fillcolor string
}

var kindStyles = map[diagram.Kind]kindStyle{
	diagram.KindServer:        {"box", "#E8EAED"},
	diagram.KindComputeEngine: {"box3d", "#AECBFA"},
	diagram.KindSQL:           {"cylinder", "#A8DAB5"},
	diagram.KindMemorystore:   {"cylinder", "#F6AEA9"},
	diagram.KindFilestore:     {"folder", "#FDE293"},
	diagram.KindLoadBalancing: {"hexagon", "#D7AEFB"},
}

// ToDOT converts a diagram to Graphviz DOT format.
// The result can be rendered with the functions in package render.
func ToDOT(d *diagram.Diagram, opts Options) string {
	spec := d.Spec()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %s {\n", quote(spec.Title))
	fmt.Fprintf(&buf, "  graph [%s];\n", joinAttrs(append([][2]string{
		{"label", quote(spec.Title)},
		{"labelloc", "t"},
		{"rankdir", string(spec.Direction)},
	}, graphAttrs...)))
	fmt.Fprintf(&buf, "  node [%s];\n", joinAttrs(nodeAttrs))
	fmt.Fprintf(&buf, "  edge [%s];\n", joinAttrs(edgeAttrs))
	buf.WriteString("\n")

	for _, id := range d.Roots() {
		writeElement(&buf, d, id, 0, opts)
	}

	if d.EdgeCount() > 0 {
		buf.WriteString("\n")
	}
	for _, e := range d.Edges() {
		fmt.Fprintf(&buf, "  %s -> %s;\n", nodeID(e.From), nodeID(e.To))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeElement(buf *bytes.Buffer, d *diagram.Diagram, id diagram.ID, depth int, opts Options) {
	e, _ := d.Element(id)
	indent := strings.Repeat("  ", depth+1)

	if !e.IsCluster() {
		fmt.Fprintf(buf, "%s%s [%s];\n", indent, nodeID(e.ID), joinAttrs(fmtNodeAttrs(e, opts)))
		return
	}

	fmt.Fprintf(buf, "%ssubgraph cluster_%d {\n", indent, e.ID)
	fmt.Fprintf(buf, "%s  graph [%s];\n", indent, joinAttrs(fmtClusterAttrs(e, depth)))
	for _, c := range e.Children {
		writeElement(buf, d, c, depth+1, opts)
	}
	fmt.Fprintf(buf, "%s}\n", indent)
}

func fmtNodeAttrs(e diagram.Element, opts Options) [][2]string {
	label := e.Label
	if opts.Detailed {
		label += "\n" + e.Kind.DisplayName()
	}
	attrs := [][2]string{{"label", quote(label)}}
	if style, ok := kindStyles[e.Kind]; ok {
		attrs = append(attrs,
			[2]string{"shape", style.shape},
			[2]string{"fillcolor", quote(style.fillcolor)},
		)
	}
	return attrs
}

func fmtClusterAttrs(e diagram.Element, depth int) [][2]string {
	return [][2]string{
		{"label", quote(e.Label)},
		{"style", "rounded"},
		{"labeljust", "l"},
		{"pencolor", quote("#AEB6BE")},
		{"fontname", "Sans-Serif"},
		{"fontsize", "12"},
		{"bgcolor", quote(clusterColors[depth%len(clusterColors)])},
	}
}

func nodeID(id diagram.ID) string {
	return fmt.Sprintf("n%d", id)
}

func joinAttrs(attrs [][2]string) string {
	parts := make([]string, len(attrs))
	for i, a := range attrs {
		v := a[1]
		if needsQuote(v) {
			v = quote(v)
		}
		parts[i] = a[0] + "=" + v
	}
	return strings.Join(parts, ", ")
}

// needsQuote reports whether an attribute value must be quoted. Values that
// are already quoted are passed through.
func needsQuote(v string) bool {
	if strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`) && len(v) >= 2 {
		return false
	}
	for _, r := range v {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' || r == '.') {
			return true
		}
	}
	return false
}

// quote returns s as a DOT double-quoted string. Line breaks become centered
// line breaks in the rendered label.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
