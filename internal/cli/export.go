package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	roadio "github.com/matzehuels/roadnet/pkg/io"
)

// exportCommand creates the export command for converting a network
// between file formats.
func (c *CLI) exportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export [network.json|network.yaml] -o [out.json|out.yaml|out.geojson]",
		Short: "Convert a network to JSON, YAML or GeoJSON",
		Long: `Convert a network to JSON, YAML or GeoJSON.

The format is taken from the output extension. JSON and YAML files can be
read back by every roadnet command; GeoJSON is write-only and places each
segment as a line between its entry and exit connectors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), cmd.OutOrStdout(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (required)")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, w io.Writer, input, output string) error {
	logger := loggerFromContext(ctx)

	if _, err := roadio.FormatOf(output); err != nil {
		return err
	}

	cfg, err := c.loadConfig("")
	if err != nil {
		return err
	}
	cfg.Criteria = nil
	n, err := c.openNetwork(input, cfg)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	if err := roadio.Export(n.rs, output); err != nil {
		return err
	}
	prog.done("Exported " + plural(len(n.rs.Elements()), "element"))
	printFile(w, output)
	return nil
}
