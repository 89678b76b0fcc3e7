// Package pipeline runs a topology through build → DOT → render → write.
//
// The CLI and tests drive diagrams through this package so the defaults and
// the order of stages live in one place.
//
// # Stages
//
//  1. Build: look up the topology and declare it on a [diagram.Builder].
//  2. Convert: translate the diagram to DOT.
//  3. Render: lay out the DOT source in the requested format, through the cache.
//  4. Write: store the bytes atomically as Dir/<filename>.<format>.
//
// A failure in any stage stops the run. Nothing is written unless the
// diagram built and rendered cleanly.
//
// # Usage
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Path) // diagram_tfe_fdo_gcp_active-active.png
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/topodiagram/pkg/diagram"
	"github.com/matzehuels/topodiagram/pkg/topology"
)

// DefaultDir is where output is written when Options.Dir is empty.
const DefaultDir = "."

// Options configures one run. Zero fields take the topology's defaults.
type Options struct {
	Topology  string            `json:"topology,omitempty"`
	Title     string            `json:"title,omitempty"`
	Direction diagram.Direction `json:"direction,omitempty"`
	Filename  string            `json:"filename,omitempty"`
	Format    diagram.Format    `json:"format,omitempty"`
	Dir       string            `json:"dir,omitempty"`

	Detailed bool `json:"detailed,omitempty"` // Append the component kind to node labels
	Refresh  bool `json:"refresh,omitempty"`  // Ignore cached artifacts

	Logger *log.Logger `json:"-"` // Overrides the runner's logger for this run

	validated bool
	spec      diagram.Spec
	build     topology.Func
}

// Result holds the outputs of a run.
type Result struct {
	// Diagram is the built diagram.
	Diagram *diagram.Diagram

	// DOT is the Graphviz source the artifact was rendered from.
	DOT string

	// DOTHash is the content hash of DOT, used as the cache key.
	DOTHash string

	// Path is the file that was written.
	Path string

	// Size is the number of bytes written.
	Size int

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats holds counts and timings of a run.
type Stats struct {
	NodeCount    int
	ClusterCount int
	EdgeCount    int
	BuildTime    time.Duration
	RenderTime   time.Duration
	WriteTime    time.Duration
}

// CacheInfo reports whether the artifact came from the cache.
type CacheInfo struct {
	RenderHit bool
}

// ValidateAndSetDefaults resolves the topology and fills empty fields from
// its default spec. A custom title without a filename derives the filename
// from the title. Calling it again is a no-op.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Topology == "" {
		o.Topology = topology.DefaultName
	}
	top, err := topology.Lookup(o.Topology)
	if err != nil {
		return err
	}

	def := top.Spec
	if o.Title == "" {
		o.Title = def.Title
		if o.Filename == "" {
			o.Filename = def.Filename
		}
	}
	if o.Direction == "" {
		o.Direction = def.Direction
	}
	if o.Format == "" {
		o.Format = def.Format
	}
	if o.Dir == "" {
		o.Dir = DefaultDir
	}
	spec := diagram.Spec{
		Title:     o.Title,
		Direction: o.Direction,
		Filename:  o.Filename,
		Format:    o.Format,
	}.Normalize()
	if err := spec.Validate(); err != nil {
		return err
	}
	o.Filename = spec.Filename

	o.spec = spec
	o.build = top.Build
	o.validated = true
	return nil
}

// Spec returns the resolved diagram settings. It is only meaningful after
// ValidateAndSetDefaults succeeded.
func (o *Options) Spec() diagram.Spec { return o.spec }
