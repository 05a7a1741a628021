package main

import (
	"github.com/containers/opendir/cmd/opendir/registry"
	"github.com/containers/opendir/pkg/opendir"
	"github.com/spf13/pflag"
)

type openOptions struct {
	followSymlinks bool
	root           string
	format         string
	flags          *pflag.FlagSet
}

func addOpenFlags(flags *pflag.FlagSet, opts *openOptions) {
	opts.flags = flags
	flags.BoolVar(&opts.followSymlinks, "follow-symlinks", true, "Follow symlinks in the path (default from opendir.conf)")
	flags.StringVar(&opts.root, "root", "", "Resolve paths inside this directory")
	flags.StringVar(&opts.format, "format", "", `Output format ("json")`)
}

// follow returns the flag value if given, the configured default otherwise.
func (o *openOptions) follow() bool {
	if o.flags != nil && o.flags.Changed("follow-symlinks") {
		return o.followSymlinks
	}
	return registry.Config().Opendir.FollowSymlinks
}

func (o *openOptions) open(path string, follow bool) (*opendir.Dir, error) {
	opener := registry.Opener()
	if o.root != "" {
		return opener.OpenInRoot(o.root, path, follow)
	}
	return opener.Open(path, follow)
}
