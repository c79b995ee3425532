package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/promptmate/internal/model"
)

func init() {
	formCmd := &cobra.Command{
		Use:   "form",
		Short: "Edit the prompt draft",
	}

	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Set text fields of the draft",
		Long:  "Set text fields of the draft. Only the flags given are changed.",
		RunE:  runFormSet,
	}
	setCmd.Flags().String("persona", "", "Persona")
	setCmd.Flags().String("task", "", "Task")
	setCmd.Flags().String("goal", "", "Goal / context")
	setCmd.Flags().String("constraints", "", "Additional constraints")
	setCmd.Flags().String("examples", "", "Examples")
	setCmd.Flags().StringSlice("require", nil, "Required phrases (repeatable)")
	setCmd.Flags().StringSlice("forbid", nil, "Forbidden phrases (repeatable)")
	setCmd.Flags().Bool("cot", false, "Ask for step-by-step reasoning")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				return printJSON(cmd.OutOrStdout(), s.form)
			})
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Reset the draft",
		Long:  "Reset every field of the draft. Custom formats and favorites are kept.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				s.setForm(model.Form{})
				return printJSON(cmd.OutOrStdout(), map[string]any{"ok": true})
			})
		},
	}

	formCmd.AddCommand(setCmd, showCmd, clearCmd)
	RootCmd.AddCommand(formCmd)
}

func runFormSet(cmd *cobra.Command, args []string) error {
	fl := cmd.Flags()
	return withSession(cmd, func(s *session) error {
		f := s.form
		str := func(name string, dst *string) {
			if fl.Changed(name) {
				*dst, _ = fl.GetString(name)
			}
		}
		str("persona", &f.Persona)
		str("task", &f.Task)
		str("goal", &f.Goal)
		str("constraints", &f.Advanced.AdditionalConstraints)
		str("examples", &f.Advanced.Examples)
		if fl.Changed("require") {
			f.Advanced.RequiredPhrases, _ = fl.GetStringSlice("require")
		}
		if fl.Changed("forbid") {
			f.Advanced.ForbiddenPhrases, _ = fl.GetStringSlice("forbid")
		}
		if fl.Changed("cot") {
			f.Advanced.CoT, _ = fl.GetBool("cot")
		}
		s.setForm(f)
		return printJSON(cmd.OutOrStdout(), f)
	})
}
