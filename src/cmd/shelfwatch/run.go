package main

import (
	"github.com/spf13/cobra"

	"shelfwatch/src/cmd/shelfwatch/runcmd"
)

// newRunCmd constructs the "run" command executing one ingest cycle.
func newRunCmd() *cobra.Command {
	var opts runcmd.Options
	c := &cobra.Command{
		Use:   "run",
		Short: "Fetch the feed once and update the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runcmd.Run(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}
	c.Flags().StringVarP(&opts.ConfigPath, "config", "c", "config.yaml", "path to the configuration file")
	c.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")
	c.Flags().DurationVar(&opts.Timeout, "timeout", runcmd.DefaultTimeout, "overall run time budget")
	return c
}
