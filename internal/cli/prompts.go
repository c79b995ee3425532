package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/promptmate/internal/model"
	"github.com/rcliao/promptmate/internal/store"
)

func init() {
	promptsCmd := &cobra.Command{
		Use:     "prompts",
		Aliases: []string{"saved"},
		Short:   "Manage saved prompts",
	}

	lsCmd := &cobra.Command{
		Use:   "ls",
		Short: "List saved prompts, newest first",
		RunE:  runPromptsList,
	}
	lsCmd.Flags().IntP("limit", "l", 20, "Max results")

	getCmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Show a saved prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer s.Close()

			sp, err := s.GetPrompt(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), sp)
		},
	}

	loadCmd := &cobra.Command{
		Use:   "load [id]",
		Short: "Replace the draft with a saved prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				sp, err := s.store.GetPrompt(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				s.setForm(sp.Form)
				return printJSON(cmd.OutOrStdout(), sp.Form)
			})
		},
	}

	searchCmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search saved prompts",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runPromptsSearch,
	}
	searchCmd.Flags().IntP("limit", "l", 20, "Max results")

	rmCmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a saved prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hard, _ := cmd.Flags().GetBool("hard")
			s, err := openStore()
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer s.Close()

			if err := s.DeletePrompt(cmd.Context(), store.RmParams{ID: args[0], Hard: hard}); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{"ok": true, "id": args[0]})
		},
	}
	rmCmd.Flags().Bool("hard", false, "Delete permanently instead of hiding")

	promptsCmd.AddCommand(lsCmd, getCmd, loadCmd, searchCmd, rmCmd)
	RootCmd.AddCommand(promptsCmd)
}

func runPromptsList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	s, err := openStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	prompts, err := s.ListPrompts(cmd.Context(), store.ListParams{Limit: limit})
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	return writePrompts(cmd, prompts)
}

func runPromptsSearch(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	s, err := openStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	prompts, err := s.SearchPrompts(cmd.Context(), store.SearchParams{
		Query: strings.Join(args, " "),
		Limit: limit,
	})
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	return writePrompts(cmd, prompts)
}

func writePrompts(cmd *cobra.Command, prompts []model.SavedPrompt) error {
	if !textFormat() {
		return printJSON(cmd.OutOrStdout(), prompts)
	}
	var sb strings.Builder
	for _, sp := range prompts {
		fmt.Fprintf(&sb, "%s  %s  %s\n", sp.ID, sp.CreatedAt.Local().Format("2006-01-02 15:04"), sp.Title)
	}
	_, err := fmt.Fprint(cmd.OutOrStdout(), sb.String())
	return err
}
