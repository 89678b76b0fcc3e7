package diagram

import (
	"slices"

	"github.com/matzehuels/topodiagram/pkg/errors"
)

// Builder assembles a [Diagram] through an explicit stack of open clusters.
// The zero value is not usable; create one with [New].
type Builder struct {
	spec     Spec
	elements []Element
	edges    []Edge
	open     []ID
	clusters map[string]ID
	err      error
}

// New creates a builder for a diagram with the given settings.
// The spec is normalized (see [Spec.Normalize]) and validated.
func New(spec Spec) (*Builder, error) {
	spec = spec.Normalize()
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &Builder{
		spec:     spec,
		clusters: make(map[string]ID),
	}, nil
}

// Draw builds a diagram in a single scoped call: it creates a builder, lets
// fn declare clusters, nodes and edges, and closes the scope with
// [Builder.Build]. Any error discards the partial diagram.
func Draw(spec Spec, fn func(b *Builder) error) (*Diagram, error) {
	b, err := New(spec)
	if err != nil {
		return nil, err
	}
	if err := fn(b); err != nil {
		return nil, err
	}
	return b.Build()
}

// Spec returns the normalized settings of the diagram being built.
func (b *Builder) Spec() Spec { return b.spec }

// Err returns the first error recorded by the builder, if any.
func (b *Builder) Err() error { return b.err }

// Depth returns the number of currently open clusters.
func (b *Builder) Depth() int { return len(b.open) }

// OpenCluster declares a cluster inside the current scope and makes it the
// current scope. Cluster labels must be unique within the diagram.
func (b *Builder) OpenCluster(label string) error {
	if err := errors.ValidateLabel(label); err != nil {
		return b.fail(err)
	}
	if _, exists := b.clusters[label]; exists {
		return b.fail(errors.New(errors.ErrCodeDuplicateCluster, "duplicate cluster %q", label))
	}
	id := b.add(label, "")
	b.clusters[label] = id
	b.open = append(b.open, id)
	return nil
}

// CloseCluster closes the innermost open cluster.
func (b *Builder) CloseCluster() error {
	if len(b.open) == 0 {
		return b.fail(errors.New(errors.ErrCodeScope, "no open cluster to close"))
	}
	b.open = b.open[:len(b.open)-1]
	return nil
}

// Cluster opens a cluster, runs fn inside it and closes it again, even when
// fn fails. The error from fn takes precedence over a close error.
func (b *Builder) Cluster(label string, fn func() error) (err error) {
	if err := b.OpenCluster(label); err != nil {
		return err
	}
	defer func() {
		if cerr := b.CloseCluster(); err == nil {
			err = cerr
		}
	}()
	return fn()
}

// Node declares a leaf node of the given kind inside the current scope.
func (b *Builder) Node(kind Kind, label string) (ID, error) {
	if !kind.Valid() {
		return Invalid, b.fail(errors.New(errors.ErrCodeInvalidKind, "unknown node kind %q", kind))
	}
	if err := errors.ValidateLabel(label); err != nil {
		return Invalid, b.fail(err)
	}
	return b.add(label, kind), nil
}

// Connect declares one edge from from to each target, in order.
// All endpoints must be leaf nodes already declared on this builder; if any
// is not, no edge is added.
func (b *Builder) Connect(from ID, to ...ID) error {
	if len(to) == 0 {
		return b.fail(errors.New(errors.ErrCodeInvalidEdge, "edge from node %d has no targets", from))
	}
	if err := b.checkEndpoint(from); err != nil {
		return b.fail(err)
	}
	for _, t := range to {
		if err := b.checkEndpoint(t); err != nil {
			return b.fail(err)
		}
	}
	for _, t := range to {
		b.edges = append(b.edges, Edge{From: from, To: t})
	}
	return nil
}

// Chain connects each node to the next: Chain(a, b, c) declares a->b and b->c.
func (b *Builder) Chain(ids ...ID) error {
	if len(ids) < 2 {
		return b.fail(errors.New(errors.ErrCodeInvalidEdge, "chain needs at least two nodes, got %d", len(ids)))
	}
	for _, id := range ids {
		if err := b.checkEndpoint(id); err != nil {
			return b.fail(err)
		}
	}
	for i := 0; i+1 < len(ids); i++ {
		b.edges = append(b.edges, Edge{From: ids[i], To: ids[i+1]})
	}
	return nil
}

// Build closes the description and returns an immutable snapshot.
// It fails with the first error recorded by an earlier call, or when
// clusters are still open.
func (b *Builder) Build() (*Diagram, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.open) > 0 {
		return nil, errors.New(errors.ErrCodeScope, "cluster %q was never closed", b.elements[b.open[len(b.open)-1]].Label)
	}
	d := &Diagram{
		spec:     b.spec,
		elements: make([]Element, len(b.elements)),
		edges:    slices.Clone(b.edges),
	}
	for i, e := range b.elements {
		d.elements[i] = cloneElement(e)
	}
	return d, nil
}

func (b *Builder) add(label string, kind Kind) ID {
	id := ID(len(b.elements))
	parent := NoParent
	if len(b.open) > 0 {
		parent = b.open[len(b.open)-1]
		b.elements[parent].Children = append(b.elements[parent].Children, id)
	}
	b.elements = append(b.elements, Element{
		ID:     id,
		Parent: parent,
		Label:  label,
		Kind:   kind,
	})
	return id
}

func (b *Builder) checkEndpoint(id ID) error {
	if id < 0 || int(id) >= len(b.elements) {
		return errors.New(errors.ErrCodeUnknownNode, "edge references undeclared node %d", id)
	}
	if e := b.elements[id]; e.IsCluster() {
		return errors.New(errors.ErrCodeInvalidEdge, "edge endpoint %q is a cluster, not a node", e.Label)
	}
	return nil
}

func (b *Builder) fail(err error) error {
	if b.err == nil {
		b.err = err
	}
	return err
}
