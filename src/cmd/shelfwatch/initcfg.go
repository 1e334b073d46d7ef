package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shelfwatch/src/internal/config"
)

// newInitCmd constructs the "init" command writing a starter configuration.
func newInitCmd() *cobra.Command {
	var path string
	var force bool
	c := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := os.WriteFile(path, []byte(config.Sample), 0o644); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	c.Flags().StringVarP(&path, "config", "c", "config.yaml", "where to write the configuration")
	c.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return c
}
