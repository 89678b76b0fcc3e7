// Package diagram describes architecture diagrams as data: a title and
// layout direction, a tree of named clusters, typed leaf nodes placed inside
// those clusters, and directed edges between leaves.
//
// # Overview
//
// A diagram is built once, rendered once and discarded. Nothing in this
// package performs layout or produces images; it only produces the logical
// graph that a layout engine consumes (see [github.com/matzehuels/topodiagram/pkg/render]).
//
// # Building
//
// A [Builder] keeps an explicit stack of open clusters. Every node and
// cluster is attached to the cluster on top of the stack when it is
// declared, so nesting is fixed at declaration time:
//
//	b, _ := diagram.New(diagram.Spec{Title: "web"})
//	user, _ := b.Node(diagram.KindServer, "user")
//	var web diagram.ID
//	_ = b.Cluster("vpc", func() error {
//	    var err error
//	    web, err = b.Node(diagram.KindComputeEngine, "web")
//	    return err
//	})
//	_ = b.Connect(user, web)
//	d, err := b.Build()
//
// [Draw] wraps the same sequence in a single scoped call.
//
// # Storage
//
// Elements live in an arena indexed by [ID]. Each element keeps a parent
// back-reference ([NoParent] at the top level) and its ordered children, so
// the cluster tree can be walked in declaration order without maps.
//
// # Edges
//
// Edges connect leaf nodes only. [Builder.Connect] with several targets is a
// fan-out that produces one independent [Edge] per target. Connecting to an
// ID the builder never issued is a reference error; no placeholder node is
// ever created.
//
// # Errors
//
// Every mutating call returns its error and also records the first failure.
// [Builder.Build] returns that recorded error, so a diagram built while
// ignoring intermediate errors still fails as a whole.
//
// # Concurrency
//
// A Builder is not safe for concurrent use. A built [Diagram] is immutable
// and may be shared.
package diagram
