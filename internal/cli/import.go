package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/promptmate/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import saved prompts from JSON",
		Long:  "Import saved prompts from JSON (stdin or file). Expects the format produced by export. Existing ids are skipped.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	var prompts []model.SavedPrompt
	if err := json.Unmarshal(data, &prompts); err != nil {
		return fmt.Errorf("parse json: %w", err)
	}

	s, err := openStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	imported, err := s.ImportPrompts(cmd.Context(), prompts)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	return printJSON(cmd.OutOrStdout(), map[string]any{"ok": true, "imported": imported})
}
