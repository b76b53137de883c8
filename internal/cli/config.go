package cli

import (
	"io"

	"github.com/spf13/cobra"
)

// configCommand creates the config command, which prints the effective
// configuration as TOML.
func (c *CLI) configCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration as TOML.

Without --config this is ~/.config/roadnet/config.toml when present, or the
built-in defaults otherwise. The output is a valid starting point for a
custom config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConfig(cmd.OutOrStdout(), path)
		},
	}

	cmd.Flags().StringVarP(&path, "config", "c", "", "config file (TOML)")

	return cmd
}

func (c *CLI) runConfig(w io.Writer, path string) error {
	cfg, err := c.loadConfig(path)
	if err != nil {
		return err
	}
	return cfg.Encode(w)
}
