package cli

import (
	"fmt"
	"net/url"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"market-finder/tui"
)

func browseCmd(opts *rootOptions) *cobra.Command {
	var start string
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Pick a state, business type and product interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			if start != "" {
				u, err := url.Parse(start)
				if err != nil {
					return fmt.Errorf("parse --url: %w", err)
				}
				query = u.Query()
			}

			a := opts.app
			model := tui.New(cmd.Context(), a.Selection, a.Views, query)
			if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), model.URL())
			return nil
		},
	}
	cmd.Flags().StringVar(&start, "url", "", "start from a shared URL, e.g. \"/?state=CA&type=Personal\"")
	return cmd
}
