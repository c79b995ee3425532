package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export saved prompts as JSON",
		Long:  "Export saved prompts that have not been deleted as a JSON array, oldest first.",
		RunE:  runExport,
	}

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	prompts, err := s.ExportPrompts(cmd.Context())
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return printJSON(cmd.OutOrStdout(), prompts)
}
