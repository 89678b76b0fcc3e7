// Package dot converts a built diagram into Graphviz DOT source.
//
// # Overview
//
// The output is plain DOT text that Graphviz (or go-graphviz, see
// [github.com/matzehuels/topodiagram/pkg/render]) lays out and exports. Each
// cluster becomes a "subgraph cluster_N" block so Graphviz draws a box around
// its members; each leaf becomes a node "nN" whose shape and fill depend on
// its [diagram.Kind].
//
//	src := dot.ToDOT(d, dot.Options{})
//	svg, err := render.RenderSVG(ctx, src)
//
// # Determinism
//
// Elements and edges are written in declaration order and attribute lists in
// a fixed order, so the same diagram always yields byte-identical DOT.
//
// # Styling
//
// Graph, node, edge and cluster defaults mirror the look of the Python
// "diagrams" package: Sans-Serif labels, rounded clusters with a background
// color that cycles by nesting depth, orthogonal edges and generous padding.
package dot
