package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/roadnet/pkg/errors"
	"github.com/matzehuels/roadnet/pkg/observability"
	"github.com/matzehuels/roadnet/pkg/observability/promhooks"
)

// checkOpts holds the command-line flags for the check command.
type checkOpts struct {
	config      string // config file, empty for the user or built-in config
	strict      bool   // fail when violations exist
	metricsFile string // Prometheus textfile to write, empty to skip
}

// checkCommand creates the check command for listing violations.
func (c *CLI) checkCommand() *cobra.Command {
	var opts checkOpts

	cmd := &cobra.Command{
		Use:   "check [network.json|network.yaml]",
		Short: "Check a network against the configured criteria",
		Long: `Check a network against the configured criteria.

The network is imported into an empty road system with the criteria already
active, and every violation found is printed grouped by criterion.

Criteria come from --config, then ~/.config/roadnet/config.toml, then the
built-in set (see 'roadnet config').`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "config file (TOML)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "exit non-zero when violations are found")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")

	return cmd
}

func (c *CLI) runCheck(ctx context.Context, w io.Writer, path string, opts checkOpts) error {
	logger := loggerFromContext(ctx)

	var reg *prometheus.Registry
	if opts.metricsFile != "" {
		reg = prometheus.NewRegistry()
		hooks, err := promhooks.New(reg)
		if err != nil {
			return err
		}
		observability.SetRoadSystemHooks(hooks)
		observability.SetCriteriaHooks(hooks)
		defer observability.Reset()
	}

	cfg, err := c.loadConfig(opts.config)
	if err != nil {
		return err
	}
	if len(cfg.Criteria) == 0 {
		printWarning(w, "no criteria configured")
	}

	prog := newProgress(logger)
	n, err := c.openNetwork(path, cfg)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Checked %d segments against %d criteria", len(n.rs.Segments()), len(n.criteria)))

	printReport(w, n)

	if reg != nil {
		if err := promhooks.WriteTextfile(opts.metricsFile, reg); err != nil {
			return err
		}
		printFile(w, opts.metricsFile)
	}

	if count := len(n.violations()); opts.strict && count > 0 {
		return errors.New(errors.ErrCodeInvalidInput, "%s: %s", path, plural(count, "violation"))
	}
	return nil
}
