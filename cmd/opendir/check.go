package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/containers/opendir/cmd/opendir/registry"
	"github.com/containers/opendir/cmd/opendir/validate"
	"github.com/containers/opendir/pkg/errorhandling"
	"github.com/containers/opendir/pkg/opendir"
	"github.com/spf13/cobra"
)

var checkDescription = `Verify that each PATH can be opened as a directory without traversing a
symlink. The exit code is 1 if any path fails.`

type checkReport struct {
	Path  string `json:"path"`
	OK    bool   `json:"ok"`
	Name  string `json:"name,omitempty"`
	Kind  string `json:"kind,omitempty"`
	Op    string `json:"op,omitempty"`
	Errno int    `json:"errno,omitempty"`
	Error string `json:"error,omitempty"`
}

func newCheckCommand() *cobra.Command {
	opts := &openOptions{}
	cmd := &cobra.Command{
		Use:   "check [options] PATH [PATH...]",
		Short: "Check that paths contain no symlinks",
		Long:  checkDescription,
		Args:  validate.PathArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return check(cmd.OutOrStdout(), opts, args)
		},
		Example: `opendir check /var/lib/data`,
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.root, "root", "", "Resolve paths inside this directory")
	flags.StringVar(&opts.format, "format", "", `Output format ("json")`)
	return cmd
}

func check(w io.Writer, opts *openOptions, paths []string) error {
	if err := validate.Format(opts.format, "json"); err != nil {
		return err
	}

	var errs []error
	reports := make([]checkReport, 0, len(paths))
	for _, path := range paths {
		report := checkReport{Path: path}
		d, err := opts.open(path, false)
		if err == nil {
			report.OK = true
			report.Name = d.Name()
			err = d.Close()
		}
		if err != nil {
			report.OK = false
			report.Error = err.Error()
			var e *opendir.Error
			if errors.As(err, &e) {
				report.Kind = e.Kind.String()
				report.Op = e.Op
				report.Errno = int(e.Errno)
			}
			errs = append(errs, err)
		}
		reports = append(reports, report)
	}

	if opts.format == "json" {
		out, err := registry.JSONLibrary().MarshalIndent(reports, "", "    ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(out))
		if len(errs) > 0 {
			registry.SetExitCode(1)
		}
		return nil
	}

	for _, r := range reports {
		if r.OK {
			fmt.Fprintf(w, "%s: ok\n", r.Path)
		}
	}
	return errorhandling.JoinErrors(errs)
}
