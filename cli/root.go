package cli

import (
	"github.com/spf13/cobra"

	"market-finder/app"
	"market-finder/config"
)

type rootOptions struct {
	configFile string
	dataPath   string
	logLevel   string

	app *app.App
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "market-finder",
		Short:         "Find insurance carriers by state, business type and line of business",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.app == nil {
				return nil
			}
			return opts.app.Close()
		},
	}

	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default ~/.config/market-finder/config.yaml)")
	root.PersistentFlags().StringVar(&opts.dataPath, "data", "", "reference dataset YAML (default embedded)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(serveCmd(opts), lookupCmd(opts), statesCmd(opts), lobsCmd(opts), browseCmd(opts))
	return root
}

func (o *rootOptions) load(cmd *cobra.Command) error {
	overrides := map[string]any{}
	if o.dataPath != "" {
		overrides["data.path"] = o.dataPath
	}
	if o.logLevel != "" {
		overrides["log.level"] = o.logLevel
	}

	cfg, err := config.Load(config.Options{ConfigFile: o.configFile, Overrides: overrides})
	if err != nil {
		return err
	}

	a, err := app.New(cmd.Context(), cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	o.app = a
	return nil
}
