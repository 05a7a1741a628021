package main

import (
	"fmt"
	"io"

	"github.com/containers/opendir/cmd/opendir/validate"
	"github.com/containers/opendir/pkg/errorhandling"
	"github.com/containers/opendir/pkg/pathnorm"
	"github.com/spf13/cobra"
)

func newNormalizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize PATH [PATH...]",
		Short: "Print the lexically normalized form of paths",
		Long: `Print the normalized form of each PATH as used by the no-follow opener.
The filesystem is not consulted.`,
		Args: validate.PathArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return normalize(cmd.OutOrStdout(), args)
		},
		Example: `opendir normalize a/./b/../c`,
	}
}

func normalize(w io.Writer, paths []string) error {
	var errs []error
	for _, path := range paths {
		clean, err := pathnorm.Clean(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		fmt.Fprintln(w, clean)
	}
	return errorhandling.JoinErrors(errs)
}
