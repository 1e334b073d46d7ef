package main

import (
	"github.com/spf13/cobra"

	"shelfwatch/src/cmd/shelfwatch/showcmd"
)

// newShowCmd constructs the "show" command rendering the persisted catalog.
func newShowCmd() *cobra.Command {
	var opts showcmd.Options
	c := &cobra.Command{
		Use:   "show",
		Short: "Print the current catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showcmd.Run(cmd.OutOrStdout(), opts)
		},
	}
	c.Flags().StringVarP(&opts.ConfigPath, "config", "c", "config.yaml", "path to the configuration file")
	c.Flags().BoolVar(&opts.JSON, "json", false, "emit the raw catalog document as JSON")
	return c
}
