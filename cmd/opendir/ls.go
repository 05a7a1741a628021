package main

import (
	"fmt"
	"io"
	"runtime"
	"sort"

	"github.com/containers/opendir/cmd/opendir/registry"
	"github.com/containers/opendir/cmd/opendir/validate"
	"github.com/containers/opendir/pkg/errorhandling"
	"github.com/docker/go-units"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var lsDescription = `List the entries of one or more directories.

With --follow-symlinks=false a symlink anywhere in PATH makes the command fail
for that path.`

type lsOptions struct {
	openOptions
	long       bool
	maxWorkers int
}

type lsEntry struct {
	Name string `json:"name"`
	Mode string `json:"mode,omitempty"`
	Size int64  `json:"size,omitempty"`
}

type lsReport struct {
	Path    string    `json:"path"`
	Entries []lsEntry `json:"entries"`
	Error   string    `json:"error,omitempty"`
}

func newLsCommand() *cobra.Command {
	opts := &lsOptions{}
	cmd := &cobra.Command{
		Use:   "ls [options] PATH [PATH...]",
		Short: "List directory entries",
		Long:  lsDescription,
		Args:  validate.PathArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ls(cmd.OutOrStdout(), opts, args)
		},
		Example: `opendir ls --follow-symlinks=false /var/lib/data
  opendir ls -l --root /srv/chroot etc`,
	}
	flags := cmd.Flags()
	addOpenFlags(flags, &opts.openOptions)
	flags.BoolVarP(&opts.long, "long", "l", false, "Show mode and size of each entry")
	flags.IntVar(&opts.maxWorkers, "max-workers", (runtime.NumCPU()*3)+1, "The maximum number of paths listed in parallel")
	_ = flags.MarkHidden("max-workers")
	return cmd
}

func ls(w io.Writer, opts *lsOptions, paths []string) error {
	if err := validate.Format(opts.format, "json"); err != nil {
		return err
	}
	if opts.maxWorkers <= 0 {
		return fmt.Errorf("maximum workers must be set to a positive number (got %d)", opts.maxWorkers)
	}
	follow := opts.follow()

	// Every open owns its own state, so paths can be listed concurrently.
	reports := make([]lsReport, len(paths))
	pathErrs := make([]error, len(paths))
	var g errgroup.Group
	g.SetLimit(opts.maxWorkers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			report, err := listDirectory(opts, path, follow)
			if err != nil {
				logrus.Debugf("Listing %q: %v", path, err)
				report.Error = err.Error()
			}
			reports[i], pathErrs[i] = report, err
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, err := range pathErrs {
		if err != nil {
			errs = append(errs, err)
		}
	}

	if opts.format == "json" {
		out, err := registry.JSONLibrary().MarshalIndent(reports, "", "    ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(out))
		return errorhandling.JoinErrors(errs)
	}

	headers := 0
	for _, report := range reports {
		if report.Error != "" {
			continue
		}
		if len(paths) > 1 {
			if headers > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "%s:\n", report.Path)
			headers++
		}
		for _, e := range report.Entries {
			if opts.long {
				fmt.Fprintf(w, "%s %8s %s\n", e.Mode, units.HumanSize(float64(e.Size)), e.Name)
			} else {
				fmt.Fprintln(w, e.Name)
			}
		}
	}
	return errorhandling.JoinErrors(errs)
}

func listDirectory(opts *lsOptions, path string, follow bool) (lsReport, error) {
	report := lsReport{Path: path, Entries: []lsEntry{}}
	d, err := opts.open(path, follow)
	if err != nil {
		return report, err
	}
	defer errorhandling.CloseQuiet(d, path)

	names, err := d.ReadAll()
	if err != nil {
		return report, err
	}
	sort.Strings(names)
	for _, name := range names {
		entry := lsEntry{Name: name}
		if opts.long {
			st, err := d.Lstat(name)
			if err != nil {
				return report, err
			}
			entry.Mode = st.Mode.String()
			entry.Size = st.Size
		}
		report.Entries = append(report.Entries, entry)
	}
	return report, nil
}
