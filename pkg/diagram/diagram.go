package diagram

import "slices"

// ID identifies an element (cluster or leaf) within one diagram.
// IDs are dense arena indices assigned in declaration order.
type ID int

const (
	// NoParent is the Parent of top-level elements.
	NoParent ID = -1

	// Invalid is returned in place of an ID when a declaration fails.
	Invalid ID = -1
)

// Element is a cluster or a leaf node.
// Clusters have an empty Kind; leaves have no children.
type Element struct {
	ID       ID
	Parent   ID
	Label    string
	Kind     Kind
	Children []ID
}

// IsCluster reports whether the element is a cluster.
func (e Element) IsCluster() bool { return e.Kind == "" }

// Edge is a directed connection between two leaf nodes.
type Edge struct {
	From ID
	To   ID
}

// Diagram is a fully built, immutable diagram description.
// The zero value is not usable; obtain one from [Builder.Build] or [Draw].
type Diagram struct {
	spec     Spec
	elements []Element
	edges    []Edge
}

// Spec returns the normalized diagram settings.
func (d *Diagram) Spec() Spec { return d.spec }

// Len returns the total number of elements (clusters and leaves).
func (d *Diagram) Len() int { return len(d.elements) }

// Element returns the element with the given ID.
func (d *Diagram) Element(id ID) (Element, bool) {
	if id < 0 || int(id) >= len(d.elements) {
		return Element{}, false
	}
	return cloneElement(d.elements[id]), true
}

// Elements returns all elements in declaration order.
func (d *Diagram) Elements() []Element {
	out := make([]Element, len(d.elements))
	for i, e := range d.elements {
		out[i] = cloneElement(e)
	}
	return out
}

// Nodes returns the leaf nodes in declaration order.
func (d *Diagram) Nodes() []Element {
	var out []Element
	for _, e := range d.elements {
		if !e.IsCluster() {
			out = append(out, cloneElement(e))
		}
	}
	return out
}

// Clusters returns the clusters in declaration order.
func (d *Diagram) Clusters() []Element {
	var out []Element
	for _, e := range d.elements {
		if e.IsCluster() {
			out = append(out, cloneElement(e))
		}
	}
	return out
}

// Roots returns the IDs of top-level elements in declaration order.
func (d *Diagram) Roots() []ID {
	var out []ID
	for _, e := range d.elements {
		if e.Parent == NoParent {
			out = append(out, e.ID)
		}
	}
	return out
}

// Children returns the direct children of a cluster in declaration order.
func (d *Diagram) Children(id ID) []ID {
	if id < 0 || int(id) >= len(d.elements) {
		return nil
	}
	return slices.Clone(d.elements[id].Children)
}

// Edges returns all edges in declaration order.
func (d *Diagram) Edges() []Edge { return slices.Clone(d.edges) }

// NodeCount returns the number of leaf nodes.
func (d *Diagram) NodeCount() int {
	n := 0
	for _, e := range d.elements {
		if !e.IsCluster() {
			n++
		}
	}
	return n
}

// ClusterCount returns the number of clusters.
func (d *Diagram) ClusterCount() int { return len(d.elements) - d.NodeCount() }

// EdgeCount returns the number of edges.
func (d *Diagram) EdgeCount() int { return len(d.edges) }

// Path returns the labels of the clusters enclosing id, outermost first.
func (d *Diagram) Path(id ID) []string {
	if id < 0 || int(id) >= len(d.elements) {
		return nil
	}
	var path []string
	for p := d.elements[id].Parent; p != NoParent; p = d.elements[p].Parent {
		path = append(path, d.elements[p].Label)
	}
	slices.Reverse(path)
	return path
}

// Depth returns how many clusters enclose id.
func (d *Diagram) Depth(id ID) int { return len(d.Path(id)) }

// Walk visits every element depth-first in declaration order.
// fn receives each element with its nesting depth; returning false skips
// the element's children.
func (d *Diagram) Walk(fn func(e Element, depth int) bool) {
	var visit func(id ID, depth int)
	visit = func(id ID, depth int) {
		e := d.elements[id]
		if !fn(cloneElement(e), depth) {
			return
		}
		for _, c := range e.Children {
			visit(c, depth+1)
		}
	}
	for _, id := range d.Roots() {
		visit(id, 0)
	}
}

func cloneElement(e Element) Element {
	e.Children = slices.Clone(e.Children)
	return e
}
