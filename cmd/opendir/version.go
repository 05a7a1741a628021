package main

import (
	"fmt"

	"github.com/containers/opendir/cmd/opendir/validate"
	"github.com/containers/opendir/version"
	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display the opendir version information",
		Args:  validate.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "Version: %s\n", version.Version)
			return nil
		},
	}
}
