package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roadnet/pkg/errors"
	"github.com/matzehuels/roadnet/pkg/render"
)

const (
	formatSVG = "svg" // Graphviz-rendered drawing
	formatDOT = "dot" // Graphviz source
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	config    string   // config file, empty for the user or built-in config
	output    string   // output file path (or base path for multiple formats)
	formats   []string // output formats: "svg", "dot"
	detailed  bool     // list attributes in node labels
	positions bool     // pin nodes to canvas positions
	plain     bool     // skip criteria, no violation highlighting
}

// renderCommand creates the render command for drawing a network.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		opts       renderOpts
	)

	cmd := &cobra.Command{
		Use:   "render [network.json|network.yaml]",
		Short: "Render a network to SVG or DOT",
		Long: `Render a network to SVG or Graphviz DOT.

Segments are drawn as nodes and connections as edges labelled with the
connector types they join. Segments involved in a violation are filled red,
with the violated criteria as tooltip.

With --positions the layout follows the canvas positions stored in the file
instead of letting Graphviz arrange the nodes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr, opts.output)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot (comma-separated)")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "config file (TOML)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show segment attributes in labels")
	cmd.Flags().BoolVar(&opts.positions, "positions", false, "place segments at their canvas positions")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "do not check criteria or highlight violations")

	return cmd
}

// parseFormats parses the --format flag. When empty, the format follows the
// output extension and falls back to svg.
func parseFormats(s, output string) []string {
	if s != "" {
		return strings.Split(s, ",")
	}
	if ext := strings.TrimPrefix(filepath.Ext(output), "."); validFormats[ext] {
		return []string{ext}
	}
	return []string{formatSVG}
}

var validFormats = map[string]bool{formatSVG: true, formatDOT: true}

func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be 'svg' or 'dot')", f)
		}
	}
	return nil
}

// basePath derives the base output path from the output and input file
// paths, stripping a known format extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func (c *CLI) runRender(ctx context.Context, w io.Writer, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig(opts.config)
	if err != nil {
		return err
	}
	if opts.plain {
		cfg.Criteria = nil
	}
	n, err := c.openNetwork(input, cfg)
	if err != nil {
		return err
	}
	logger.Infof("Loaded network: %d segments, %d connections", len(n.rs.Segments()), len(n.rs.Connections()))

	dot := render.ToDOT(n.rs, n.violations(), render.Options{Detailed: opts.detailed, Positions: opts.positions})

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		path := base + "." + format
		if len(opts.formats) == 1 && opts.output != "" {
			path = opts.output
		}

		data := []byte(dot)
		if format == formatSVG {
			spin := newSpinner(ctx, os.Stderr, "Running Graphviz...")
			spin.Start()
			data, err = render.RenderSVG(ctx, dot)
			spin.Stop()
			if err != nil {
				return err
			}
		}

		if err := os.WriteFile(path, data, 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
		}
		logger.Debug("wrote output", "format", format, "bytes", len(data))
		printFile(w, path)
	}

	if count := len(n.violations()); count > 0 {
		printInfo(w, "%s highlighted", plural(count, "violation"))
	}
	return nil
}
