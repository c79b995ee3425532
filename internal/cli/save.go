package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/promptmate/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save the draft as a prompt",
		Long:  "Save a snapshot of the draft. The title is derived from the task, which is required.",
		RunE:  runSave,
	}

	RootCmd.AddCommand(cmd)
}

func runSave(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(s *session) error {
		sp, err := s.store.SavePrompt(cmd.Context(), store.SaveParams{Form: s.form})
		if err != nil {
			return fmt.Errorf("save: %w", err)
		}
		logger.Info("prompt saved", zap.String("id", sp.ID), zap.String("title", sp.Title))
		return printJSON(cmd.OutOrStdout(), sp)
	})
}
