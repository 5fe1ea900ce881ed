package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"market-finder/domain"
)

func statesCmd(opts *rootOptions) *cobra.Command {
	var licensedOnly bool
	cmd := &cobra.Command{
		Use:   "states",
		Short: "List states and whether they can be selected",
		RunE: func(cmd *cobra.Command, args []string) error {
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("CODE", "NAME", "LICENSED")
			states := opts.app.Reference.ListStates()
			if licensedOnly {
				states = opts.app.Reference.LicensedStates()
			}
			for _, s := range states {
				licensed := "no"
				if s.Licensed {
					licensed = "yes"
				}
				t.Row(s.Code, s.Name, licensed)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
	cmd.Flags().BoolVar(&licensedOnly, "licensed", false, "only licensed states")
	return cmd
}

func lobsCmd(opts *rootOptions) *cobra.Command {
	var businessType string
	cmd := &cobra.Command{
		Use:   "lobs",
		Short: "List lines of business for a business type",
		RunE: func(cmd *cobra.Command, args []string) error {
			types := domain.BusinessTypes
			if businessType != "" {
				bt, ok := domain.ParseBusinessType(businessType)
				if !ok {
					return fmt.Errorf("unknown business type %q (want Personal or Commercial)", businessType)
				}
				types = []domain.BusinessType{bt}
			}

			out := cmd.OutOrStdout()
			for _, bt := range types {
				fmt.Fprintf(out, "%s: %s\n", bt, bt.Description())
				for _, lob := range opts.app.Reference.LOBsFor(bt) {
					fmt.Fprintf(out, "  %s\n", lob)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&businessType, "type", "", "business type (Personal or Commercial)")
	return cmd
}
