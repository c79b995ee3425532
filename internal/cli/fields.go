package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/promptmate/internal/suggest"
)

func init() {
	RootCmd.AddCommand(fieldCmd(suggest.Persona, "Choose the persona the model should adopt"))
	RootCmd.AddCommand(fieldCmd(suggest.Tone, "Choose the tone of the answer"))
}

// fieldCmd builds the command group for a suggestion field.
func fieldCmd(c suggest.Config, short string) *cobra.Command {
	parent := &cobra.Command{
		Use:   c.Name,
		Short: short,
	}

	selectUse, selectShort := "set [value]", "Set the persona"
	if c.Multi {
		selectUse, selectShort = "toggle [value]", "Add or remove a tone"
	}

	parent.AddCommand(
		&cobra.Command{
			Use:   "ls [query]",
			Short: "Show suggestions and favorites",
			RunE: func(cmd *cobra.Command, args []string) error {
				query := strings.Join(args, " ")
				return withSession(cmd, func(s *session) error {
					f := s.field(c)
					return printJSON(cmd.OutOrStdout(), struct {
						Value []string `json:"value"`
						suggest.Matches
					}{nonNil(f.Value()), f.Filter(query)})
				})
			},
		},
		&cobra.Command{
			Use:   selectUse,
			Short: selectShort,
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v := strings.Join(args, " ")
				return withSession(cmd, func(s *session) error {
					f := s.field(c)
					f.Select(v)
					s.setField(f)
					return printValue(cmd, f)
				})
			},
		},
		&cobra.Command{
			Use:   "add [text]",
			Short: "Use free text and remember it as a favorite",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v := strings.Join(args, " ")
				return withSession(cmd, func(s *session) error {
					f := s.field(c)
					if _, err := f.Submit(v); err != nil {
						return fmt.Errorf("%s add: %w", c.Name, err)
					}
					s.setField(f)
					return printValue(cmd, f)
				})
			},
		},
		&cobra.Command{
			Use:   "fav [value]",
			Short: "Toggle a favorite",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v := strings.Join(args, " ")
				return withSession(cmd, func(s *session) error {
					on, err := s.field(c).ToggleFavorite(v)
					if err != nil {
						return fmt.Errorf("%s fav: %w", c.Name, err)
					}
					return printJSON(cmd.OutOrStdout(), map[string]any{"value": v, "favorite": on})
				})
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Clear the value",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withSession(cmd, func(s *session) error {
					f := s.field(c)
					f.Clear()
					s.setField(f)
					return printValue(cmd, f)
				})
			},
		},
	)
	return parent
}

func printValue(cmd *cobra.Command, f *suggest.Field) error {
	return printJSON(cmd.OutOrStdout(), map[string]any{f.Name(): nonNil(f.Value())})
}
