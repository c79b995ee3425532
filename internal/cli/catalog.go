package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/promptmate/internal/catalog"
)

func init() {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Show output format categories",
		RunE:  runCatalog,
	}
	cmd.Flags().Bool("options", false, "Include the options of each category")

	RootCmd.AddCommand(cmd)
}

type categoryListing struct {
	ID             string   `json:"id"`
	Label          string   `json:"label"`
	CompatibleWith []string `json:"compatible_with"`
	Options        []string `json:"options,omitempty"`
}

func runCatalog(cmd *cobra.Command, args []string) error {
	withOptions, _ := cmd.Flags().GetBool("options")
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	var out []categoryListing
	for _, c := range cat.Categories() {
		l := categoryListing{ID: c.ID, Label: c.Label, CompatibleWith: nonNil(c.CompatibleWith)}
		if withOptions {
			l.Options = c.Options
		}
		out = append(out, l)
	}

	if textFormat() {
		var sb strings.Builder
		for _, l := range out {
			fmt.Fprintf(&sb, "%s  %s  -> %s\n", l.ID, l.Label, strings.Join(l.CompatibleWith, ", "))
			for _, o := range l.Options {
				fmt.Fprintf(&sb, "    %s\n", o)
			}
		}
		_, err := fmt.Fprint(cmd.OutOrStdout(), sb.String())
		return err
	}
	return printJSON(cmd.OutOrStdout(), out)
}
