package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/matzehuels/topodiagram/pkg/diagram"
	"github.com/matzehuels/topodiagram/pkg/errors"
	topoio "github.com/matzehuels/topodiagram/pkg/io"
	"github.com/matzehuels/topodiagram/pkg/render/dot"
)

// Description formats accepted by describe --format.
const (
	describeTree = "tree"
	describeJSON = "json"
	describeTOML = "toml"
	describeDOT  = "dot"
)

// describeCommand creates the describe command.
func (c *CLI) describeCommand() *cobra.Command {
	var opts renderOpts
	var format string

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the clusters, nodes and edges of a topology",
		Long: `Build a topology and print its logical graph without rendering it.

Formats:
  tree  nested clusters followed by the edge list (default)
  json  machine-readable description
  toml  the same description as TOML
  dot   the Graphviz source that render would lay out`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := opts.pipelineOptions()
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context(), cacheOpts{})
			if err != nil {
				return err
			}
			defer runner.Close()

			d, err := runner.Describe(cmd.Context(), popts)
			if err != nil {
				return err
			}
			return writeDescription(cmd.OutOrStdout(), d, format, opts.detailed)
		},
	}

	addTopologyFlags(cmd, &opts)
	cmd.Flags().StringVarP(&format, "format", "f", describeTree, "output format: tree, json, toml, dot")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{describeTree, describeJSON, describeTOML, describeDOT}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func writeDescription(w io.Writer, d *diagram.Diagram, format string, detailed bool) error {
	switch strings.ToLower(format) {
	case describeTree:
		_, err := io.WriteString(w, renderTree(d))
		return err
	case describeJSON:
		return topoio.WriteJSON(d, w)
	case describeTOML:
		return topoio.WriteTOML(d, w)
	case describeDOT:
		_, err := io.WriteString(w, dot.ToDOT(d, dot.Options{Detailed: detailed}))
		return err
	}
	return errors.New(errors.ErrCodeInvalidFormat,
		"invalid describe format: %q (must be one of: tree, json, toml, dot)", format)
}

// renderTree draws the cluster hierarchy with lipgloss and lists the edges below it.
func renderTree(d *diagram.Diagram) string {
	title := strings.Join(strings.Fields(d.Spec().Title), " ")
	root := tree.Root(StyleTitle.Render(title)).Enumerator(tree.RoundedEnumerator)
	for _, id := range d.Roots() {
		root.Child(treeItem(d, id))
	}

	var b strings.Builder
	b.WriteString(root.String())
	b.WriteString("\n\n")
	b.WriteString(StyleTitle.Render("Edges"))
	b.WriteString("\n")
	for _, e := range d.Edges() {
		from, _ := d.Element(e.From)
		to, _ := d.Element(e.To)
		fmt.Fprintf(&b, "  %s %s %s\n", from.Label, StyleDim.Render(iconArrow), to.Label)
	}
	return b.String()
}

func treeItem(d *diagram.Diagram, id diagram.ID) any {
	e, _ := d.Element(id)
	if !e.IsCluster() {
		return e.Label + " " + StyleDim.Render("("+e.Kind.DisplayName()+")")
	}
	t := tree.Root(StyleHighlight.Render(e.Label)).Enumerator(tree.RoundedEnumerator)
	for _, child := range d.Children(id) {
		t.Child(treeItem(d, child))
	}
	return t
}
