package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"slices"

	"github.com/spf13/cobra"

	"market-finder/domain"
	"market-finder/service"
)

type lookupOutput struct {
	Selection domain.Selection      `json:"selection"`
	Stage     domain.Stage          `json:"stage"`
	URL       string                `json:"url"`
	Results   domain.CarrierResults `json:"results"`
	Total     int                   `json:"total"`
}

func lookupCmd(opts *rootOptions) *cobra.Command {
	var (
		state, businessType, lob string
		asJSON, groupByTag       bool
	)
	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "List carriers for a state, business type and line of business",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			query := url.Values{}
			if state != "" {
				query.Set(service.ParamState, state)
			}
			if businessType != "" {
				query.Set(service.ParamType, businessType)
			}
			if lob != "" {
				query.Set(service.ParamLOB, lob)
			}

			sess := a.NewSession(query, nil)
			view := a.Views.Build(cmd.Context(), sess.Selection())
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				enc.SetEscapeHTML(false)
				return enc.Encode(lookupOutput{
					Selection: view.Selection,
					Stage:     view.Stage,
					URL:       view.URL,
					Results:   view.Results,
					Total:     view.Total,
				})
			}

			if view.Stage != domain.StageResults {
				return fmt.Errorf("incomplete selection (stage %s, url %s): need a licensed --state, --type and --lob", view.Stage, view.URL)
			}

			fmt.Fprintf(out, "Found %d carriers for %s in %s (%s)\n", view.Total, view.Selection.LOB, view.StateName, view.Selection.BusinessType)
			if groupByTag {
				printGroups(out, append(slices.Clone(view.Results.Online), view.Results.OfflineOnly...))
			} else {
				printSection(out, "Online Applications", view.Results.Online)
				printSection(out, "Contact Required", view.Results.OfflineOnly)
				if view.Total == 0 {
					fmt.Fprintln(out, "\nNo carriers available")
				}
			}
			fmt.Fprintf(out, "\nURL: %s\n", view.URL)
			return nil
		},
	}
	cmd.Flags().StringVar(&state, "state", "", "state code, e.g. CA")
	cmd.Flags().StringVar(&businessType, "type", "", "business type (Personal or Commercial)")
	cmd.Flags().StringVar(&lob, "lob", "", "line of business, e.g. \"Personal Auto\"")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().BoolVar(&groupByTag, "group-by-tag", false, "group carriers by their first tag")
	return cmd
}

func printSection(out io.Writer, title string, carriers []domain.Carrier) {
	if len(carriers) == 0 {
		return
	}
	fmt.Fprintf(out, "\n%s:\n", title)
	for _, c := range carriers {
		fmt.Fprintf(out, "  [%s] %s\n", c.Initials(), c.Name)
	}
}

func printGroups(out io.Writer, carriers []domain.Carrier) {
	groups := service.GroupByTag(carriers)
	tags := make([]string, 0, len(groups))
	for tag := range groups {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	for _, tag := range tags {
		printSection(out, tag, groups[tag])
	}
}
