// Package pkg provides the libraries behind topodiagram.
//
// # Overview
//
// topodiagram declares reference deployment architectures as nested
// clusters of components joined by directed edges, and renders them through
// Graphviz. The pkg directory is organized as:
//
//  1. [diagram] - Spec, node kinds and the scoped diagram builder
//  2. [topology] - Registered reference deployments
//  3. [render/dot] and [render] - DOT conversion and image export
//  4. [io], [cache] - Descriptions, atomic file output and the artifact cache
//  5. [pipeline] - Orchestration (build → convert → render → write)
//
// # Architecture
//
//	topology.Func
//	      ↓
//	[diagram] Builder (clusters, nodes, edges)
//	      ↓
//	[render/dot] ToDOT
//	      ↓
//	[render] Render (go-graphviz, rsvg-convert for PDF)
//	      ↓
//	png/jpg/svg/pdf/dot file
//
// # Quick Start
//
//	d, err := diagram.Draw(diagram.Spec{Title: "Web Service"}, func(b *diagram.Builder) error {
//	    lb, _ := b.Node(diagram.KindLoadBalancing, "lb")
//	    var app diagram.ID
//	    if err := b.Cluster("private", func() error {
//	        app, _ = b.Node(diagram.KindComputeEngine, "app")
//	        return nil
//	    }); err != nil {
//	        return err
//	    }
//	    return b.Connect(lb, app)
//	})
//	if err != nil {
//	    return err
//	}
//	png, err := render.Render(ctx, dot.ToDOT(d, dot.Options{}), diagram.FormatPNG)
//
// Most callers go through [pipeline.Runner] instead, which adds caching,
// hooks and the final write.
//
// [diagram]: https://pkg.go.dev/github.com/matzehuels/topodiagram/pkg/diagram
// [topology]: https://pkg.go.dev/github.com/matzehuels/topodiagram/pkg/topology
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/topodiagram/pkg/render/dot
// [render]: https://pkg.go.dev/github.com/matzehuels/topodiagram/pkg/render
// [io]: https://pkg.go.dev/github.com/matzehuels/topodiagram/pkg/io
// [cache]: https://pkg.go.dev/github.com/matzehuels/topodiagram/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/topodiagram/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/topodiagram/pkg/pipeline#Runner
package pkg
