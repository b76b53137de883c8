// Package cli implements the roadnet command-line interface.
//
// The commands load a highway network from JSON or YAML, activate the
// plausibility criteria named in the configuration and report, render,
// convert or browse the result.
//
// # Commands
//
//   - check: Print the violations of a network
//   - render: Draw a network as Graphviz DOT or SVG
//   - export: Convert a network to JSON, YAML or GeoJSON
//   - browse: Page through violations interactively
//   - config: Print the effective configuration
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// traces every element and violation event of the road system.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/roadnet/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Roadnet checks highway network diagrams for plausibility",
		Long: `Roadnet loads highway network diagrams made of road segments, ramps and
their connections, and checks them against configurable plausibility criteria:
missing attributes, values out of range, and incompatible neighbours.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.checkCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}
