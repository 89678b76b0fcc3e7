package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/topodiagram/pkg/diagram"
	"github.com/matzehuels/topodiagram/pkg/pipeline"
	"github.com/matzehuels/topodiagram/pkg/topology"
)

// renderOpts holds the flags of the render command. Empty strings keep the
// topology's defaults.
type renderOpts struct {
	topology  string
	title     string
	direction string
	filename  string
	format    string
	dir       string
	detailed  bool
	refresh   bool
	cache     cacheOpts
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a topology to an image",
		Long: `Render a topology to png, jpg, svg, pdf or dot.

The output is written to <filename>.<format> in the current directory, or in
--dir when given. PDF output requires rsvg-convert on PATH.`,
		Example: `  topodiagram render
  topodiagram render -f svg -d LR
  topodiagram render --title "Staging" -o staging --cache`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), opts)
		},
	}

	addTopologyFlags(cmd, &opts)
	cmd.Flags().StringVarP(&opts.filename, "filename", "o", "", "output base name without extension (default derived from the topology)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: "+joinFormats()+" (default png)")
	cmd.Flags().StringVar(&opts.dir, "dir", "", "directory to write the output to (default current directory)")
	cmd.Flags().BoolVar(&opts.cache.enabled, "cache", false, "reuse rendered artifacts from the local cache")
	cmd.Flags().StringVar(&opts.cache.redisURL, "redis-url", "", "cache artifacts in Redis, e.g. redis://localhost:6379/0")
	cmd.Flags().StringVar(&opts.cache.namespace, "cache-namespace", "", "prefix cache keys, e.g. per team on a shared Redis")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts and render again")

	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, f := range diagram.Formats() {
			names = append(names, string(f))
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// addTopologyFlags registers the flags shared by render and describe.
func addTopologyFlags(cmd *cobra.Command, opts *renderOpts) {
	cmd.Flags().StringVar(&opts.topology, "topology", topology.DefaultName, "topology to draw")
	cmd.Flags().StringVar(&opts.title, "title", "", "diagram title (default from the topology)")
	cmd.Flags().StringVarP(&opts.direction, "direction", "d", "", "layout direction: TB, BT, LR, RL (default TB)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "append the component kind to node labels")

	_ = cmd.RegisterFlagCompletionFunc("topology", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return topology.Names(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("direction", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, d := range diagram.Directions() {
			names = append(names, string(d))
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
}

// pipelineOptions converts flags to pipeline options, parsing direction and
// format case-insensitively.
func (o renderOpts) pipelineOptions() (pipeline.Options, error) {
	opts := pipeline.Options{
		Topology: o.topology,
		Title:    o.title,
		Filename: o.filename,
		Dir:      o.dir,
		Detailed: o.detailed,
		Refresh:  o.refresh,
	}
	if o.direction != "" {
		d, err := diagram.ParseDirection(o.direction)
		if err != nil {
			return opts, err
		}
		opts.Direction = d
	}
	if o.format != "" {
		f, err := diagram.ParseFormat(o.format)
		if err != nil {
			return opts, err
		}
		opts.Format = f
	}
	return opts, nil
}

func (c *CLI) runRender(ctx context.Context, opts renderOpts) error {
	popts, err := opts.pipelineOptions()
	if err != nil {
		return err
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.cache)
	if err != nil {
		return err
	}
	defer runner.Close()

	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	spinner := newSpinnerWithContext(ctx, "Rendering "+popts.Topology+"...")
	spinner.Start()
	res, err := runner.Execute(ctx, popts)
	if err != nil {
		spinner.Stop()
		return err
	}
	spinner.StopWithSuccess("Rendered " + popts.Topology)
	prog.done("Rendered diagram")

	printFile(res.Path)
	printStats(res.Stats.NodeCount, res.Stats.ClusterCount, res.Stats.EdgeCount, res.CacheInfo.RenderHit)
	return nil
}

func joinFormats() string {
	var names []string
	for _, f := range diagram.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}
