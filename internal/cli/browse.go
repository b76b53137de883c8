package cli

import (
	"context"
	"fmt"
	"io"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/roadnet/pkg/criteria"
)

// browseCommand creates the browse command for paging through violations.
func (c *CLI) browseCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "browse [network.json|network.yaml]",
		Short: "Browse the violations of a network interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), args[0], path)
		},
	}

	cmd.Flags().StringVarP(&path, "config", "c", "", "config file (TOML)")

	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, in io.Reader, w io.Writer, input, configPath string) error {
	cfg, err := c.loadConfig(configPath)
	if err != nil {
		return err
	}
	n, err := c.openNetwork(input, cfg)
	if err != nil {
		return err
	}

	violations := n.violations()
	if len(violations) == 0 {
		printSuccess(w, "%s: no violations", input)
		return nil
	}

	p := tea.NewProgram(NewViolationListModel(violations),
		tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(w))
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	fm, ok := finalModel.(ViolationListModel)
	if !ok || fm.Selected == nil {
		printDetail(w, "No selection made")
		return nil
	}

	printError(w, "%s", StyleViolation.Render(fm.Selected.Criterion().Name()))
	fmt.Fprint(w, segmentDetails(fm.Selected.Segments()))

	var others []*criteria.Violation
	for _, s := range fm.Selected.Segments() {
		for _, v := range n.manager.ViolationManager().ViolationsInvolving(s) {
			if v != fm.Selected && !slices.Contains(others, v) {
				others = append(others, v)
			}
		}
	}
	if len(others) > 0 {
		printDetail(w, "also involved in: %s", criterionNames(others))
	}
	return nil
}
