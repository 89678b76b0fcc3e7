package io

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/topodiagram/pkg/diagram"
)

// Descriptor is the serializable description of a diagram.
type Descriptor struct {
	Title     string    `json:"title" toml:"title"`
	Direction string    `json:"direction" toml:"direction"`
	Filename  string    `json:"filename" toml:"filename"`
	Format    string    `json:"format" toml:"format"`
	Clusters  []Cluster `json:"clusters" toml:"clusters"`
	Nodes     []Node    `json:"nodes" toml:"nodes"`
	Edges     []Edge    `json:"edges" toml:"edges"`
}

// Cluster is a serialized cluster. Children lists member IDs in declaration order.
type Cluster struct {
	ID       int    `json:"id" toml:"id"`
	Label    string `json:"label" toml:"label"`
	Parent   int    `json:"parent" toml:"parent"`
	Children []int  `json:"children" toml:"children"`
}

// Node is a serialized leaf node. Path lists the enclosing cluster labels,
// outermost first.
type Node struct {
	ID     int      `json:"id" toml:"id"`
	Label  string   `json:"label" toml:"label"`
	Kind   string   `json:"kind" toml:"kind"`
	Parent int      `json:"parent" toml:"parent"`
	Path   []string `json:"path" toml:"path"`
}

// Edge is a serialized edge.
type Edge struct {
	From      int    `json:"from" toml:"from"`
	To        int    `json:"to" toml:"to"`
	FromLabel string `json:"from_label" toml:"from_label"`
	ToLabel   string `json:"to_label" toml:"to_label"`
}

// FromDiagram flattens d into a Descriptor.
func FromDiagram(d *diagram.Diagram) Descriptor {
	spec := d.Spec()
	out := Descriptor{
		Title:     spec.Title,
		Direction: string(spec.Direction),
		Filename:  spec.Filename,
		Format:    string(spec.Format),
		Clusters:  make([]Cluster, 0, d.ClusterCount()),
		Nodes:     make([]Node, 0, d.NodeCount()),
		Edges:     make([]Edge, 0, d.EdgeCount()),
	}

	labels := make([]string, d.Len())
	for _, e := range d.Elements() {
		labels[e.ID] = e.Label
		if e.IsCluster() {
			children := make([]int, len(e.Children))
			for i, c := range e.Children {
				children[i] = int(c)
			}
			out.Clusters = append(out.Clusters, Cluster{
				ID:       int(e.ID),
				Label:    e.Label,
				Parent:   int(e.Parent),
				Children: children,
			})
			continue
		}
		path := d.Path(e.ID)
		if path == nil {
			path = []string{}
		}
		out.Nodes = append(out.Nodes, Node{
			ID:     int(e.ID),
			Label:  e.Label,
			Kind:   string(e.Kind),
			Parent: int(e.Parent),
			Path:   path,
		})
	}

	for _, e := range d.Edges() {
		out.Edges = append(out.Edges, Edge{
			From:      int(e.From),
			To:        int(e.To),
			FromLabel: labels[e.From],
			ToLabel:   labels[e.To],
		})
	}
	return out
}

// WriteJSON encodes the diagram description as indented JSON and writes it to w.
func WriteJSON(d *diagram.Diagram, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromDiagram(d)); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// WriteTOML encodes the diagram description as TOML and writes it to w.
func WriteTOML(d *diagram.Diagram, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(FromDiagram(d)); err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	return nil
}
