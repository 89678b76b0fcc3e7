// Package topology holds the fixed reference deployments that topodiagram draws.
//
// Each topology is a construction sequence over a [diagram.Builder]. The
// order of declarations matters: clusters nest in the order they are opened
// and edges may only name nodes declared before them.
package topology

import (
	"slices"

	"github.com/matzehuels/topodiagram/pkg/diagram"
	"github.com/matzehuels/topodiagram/pkg/errors"
)

// Func declares a topology's clusters, nodes and edges on b.
type Func func(b *diagram.Builder) error

// Topology is a named construction sequence with its default settings.
type Topology struct {
	Name        string
	Description string
	Spec        diagram.Spec
	Build       Func
}

// DefaultName is the topology drawn when none is requested.
const DefaultName = "tfe-fdo-gcp-active-active"

var registry = map[string]Topology{
	DefaultName: {
		Name:        DefaultName,
		Description: "Terraform Enterprise FDO active-active on GCP",
		Spec:        DefaultSpec(),
		Build: func(b *diagram.Builder) error {
			_, err := BuildActiveActive(b)
			return err
		},
	},
}

// Lookup returns the topology registered under name.
func Lookup(name string) (Topology, error) {
	t, ok := registry[name]
	if !ok {
		return Topology{}, errors.New(errors.ErrCodeUnknownTopology,
			"unknown topology: %q (available: %v)", name, Names())
	}
	return t, nil
}

// Names returns the registered topology names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
