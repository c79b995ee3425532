package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/promptmate/internal/preview"
)

func init() {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the draft as a prompt",
		Long:  "Render the draft as sectioned text, or as a JSON object with --json.",
		RunE:  runPreview,
	}
	cmd.Flags().Bool("json", false, "Render as JSON")

	RootCmd.AddCommand(cmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	jsonMode, _ := cmd.Flags().GetBool("json")
	return withSession(cmd, func(s *session) error {
		out, err := preview.Build(s.form, jsonMode)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
		return err
	})
}
