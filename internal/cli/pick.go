package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rcliao/promptmate/internal/tui"
)

func init() {
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Pick output formats interactively",
		Long:  "Open the interactive output format picker. The selection is saved to the draft on exit.",
		RunE:  runPick,
	}

	RootCmd.AddCommand(cmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(s *session) error {
		sel, err := tui.Run(s.outputs(),
			tea.WithContext(cmd.Context()),
			tea.WithInput(cmd.InOrStdin()),
			tea.WithOutput(cmd.ErrOrStderr()),
		)
		if err != nil {
			return fmt.Errorf("picker: %w", err)
		}
		return printJSON(cmd.OutOrStdout(), map[string]any{"selection": nonNil(sel)})
	})
}
