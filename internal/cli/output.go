package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/promptmate/internal/catalog"
	"github.com/rcliao/promptmate/internal/filter"
	"github.com/rcliao/promptmate/internal/selector"
)

func init() {
	outputCmd := &cobra.Command{
		Use:   "output",
		Short: "Choose output formats for the draft",
	}

	lsCmd := &cobra.Command{
		Use:   "ls [query]",
		Short: "Show formats compatible with the current selection",
		RunE:  runOutputLs,
	}

	toggleCmd := &cobra.Command{
		Use:   "toggle [label]",
		Short: "Select or deselect a known format",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runOutputToggle,
	}

	addCmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Select a format, creating a custom one if it does not exist",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runOutputAdd,
	}

	rmCustomCmd := &cobra.Command{
		Use:   "rm-custom [label]",
		Short: "Delete a custom format",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runOutputRmCustom,
	}

	favCmd := &cobra.Command{
		Use:   "fav [label]",
		Short: "Toggle a format as favorite",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runOutputFav,
	}

	favsCmd := &cobra.Command{
		Use:   "favs",
		Short: "List favorite and custom formats",
		RunE:  runOutputFavs,
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Deselect all formats",
		RunE:  runOutputClear,
	}

	outputCmd.AddCommand(lsCmd, toggleCmd, addCmd, rmCustomCmd, favCmd, favsCmd, clearCmd)
	RootCmd.AddCommand(outputCmd)
}

type outputListing struct {
	Selection []string `json:"selection"`
	filter.Visible
	Favorites []string `json:"favorites"`
}

func runOutputLs(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	return withSession(cmd, func(s *session) error {
		fs := s.outputs()
		listing := outputListing{
			Selection: fs.Selection(),
			Visible:   fs.Visible(query),
			Favorites: fs.FavoriteMatches(query),
		}
		if textFormat() {
			return writeListing(cmd.OutOrStdout(), fs, listing)
		}
		return printJSON(cmd.OutOrStdout(), listing)
	})
}

func runOutputToggle(cmd *cobra.Command, args []string) error {
	label := strings.Join(args, " ")
	return withSession(cmd, func(s *session) error {
		fs := s.outputs()
		res, err := fs.Toggle(label)
		if err != nil {
			return fmt.Errorf("toggle: %w", err)
		}
		return reportResult(cmd, res)
	})
}

func runOutputAdd(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	return withSession(cmd, func(s *session) error {
		res, err := s.outputs().AddCustomAndSelect(text)
		if err != nil {
			return fmt.Errorf("add: %w", err)
		}
		return reportResult(cmd, res)
	})
}

func runOutputRmCustom(cmd *cobra.Command, args []string) error {
	label := strings.Join(args, " ")
	return withSession(cmd, func(s *session) error {
		res, err := s.outputs().RemoveCustom(label)
		if err != nil {
			return fmt.Errorf("rm-custom: %w", err)
		}
		return reportResult(cmd, res)
	})
}

func runOutputFav(cmd *cobra.Command, args []string) error {
	label := strings.Join(args, " ")
	return withSession(cmd, func(s *session) error {
		on, err := s.outputs().ToggleFavorite(label)
		if err != nil {
			return fmt.Errorf("fav: %w", err)
		}
		return printJSON(cmd.OutOrStdout(), map[string]any{"label": label, "favorite": on})
	})
}

func runOutputFavs(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(s *session) error {
		fs := s.outputs()
		return printJSON(cmd.OutOrStdout(), map[string][]string{
			"favorites": fs.Favorites(),
			"custom":    fs.Custom(),
		})
	})
}

func runOutputClear(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(s *session) error {
		return reportResult(cmd, s.outputs().ClearAll())
	})
}

// reportResult prints the next selection. Advisory notices also go to
// stderr so they are visible in text mode.
func reportResult(cmd *cobra.Command, res selector.Result) error {
	if res.Message != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: "+res.Message)
	}
	if textFormat() {
		for _, v := range res.Selection {
			fmt.Fprintln(cmd.OutOrStdout(), v)
		}
		return nil
	}
	return printJSON(cmd.OutOrStdout(), res)
}

func writeListing(w io.Writer, fs *selector.Store, l outputListing) error {
	mark := func(v string) string {
		m := "[ ]"
		if fs.IsSelected(v) {
			m = "[x]"
		}
		if fs.IsFavorite(v) {
			m += "*"
		}
		return m + " " + v
	}

	var sb strings.Builder
	if len(l.Favorites) > 0 {
		sb.WriteString("Favorites\n")
		for _, v := range l.Favorites {
			sb.WriteString("  " + mark(v) + "\n")
		}
	}
	if len(l.CustomMatches) > 0 {
		sb.WriteString(catalog.CustomLabel + "\n")
		for _, v := range l.CustomMatches {
			sb.WriteString("  " + mark(v) + "\n")
		}
	}
	for _, g := range l.Groups {
		sb.WriteString(g.Category.Label + "\n")
		for _, v := range g.Options {
			sb.WriteString("  " + mark(v) + "\n")
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
