package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/containers/opendir/cmd/opendir/registry"
	"github.com/containers/opendir/cmd/opendir/validate"
	"github.com/containers/opendir/pkg/config"
	"github.com/containers/opendir/version"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// UsageTemplate is the usage template for opendir commands
// This blocks the displaying of the global options. The main opendir
// command should not use this.
const usageTemplate = `Usage:{{if (and .Runnable (not .HasAvailableSubCommands))}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.UseLine}} [command]{{end}}{{if gt (len .Aliases) 0}}

Aliases:
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

Examples:
  {{.Example}}{{end}}{{if .HasAvailableSubCommands}}

Available Commands:{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

Options:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}
{{end}}
`

type globalOptions struct {
	logLevel   string
	configPath string
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}
	rootCmd := &cobra.Command{
		Use:   filepath.Base(os.Args[0]) + " [options]",
		Short: "Open directories without following symlinks",
		Long: `Open and list directories, optionally refusing to traverse any symbolic
link in the path. Every intermediate component is verified to be a real
directory before the final component is opened with O_NOFOLLOW.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRunE(cmd, opts)
		},
		RunE:                  validate.SubCommandExists,
		Version:               version.Version.String(),
		DisableFlagsInUseLine: true,
	}

	pFlags := rootCmd.PersistentFlags()
	pFlags.StringVar(&opts.logLevel, "log-level", "", fmt.Sprintf("Log messages above specified level (%s)", strings.Join(registry.LogLevels, ", ")))
	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return registry.LogLevels, cobra.ShellCompDirectiveNoFileComp
	})
	pFlags.StringVar(&opts.configPath, "config", "", fmt.Sprintf("Path to the configuration file (%s)", config.EnvConfigPath))

	rootCmd.SetUsageTemplate(usageTemplate)
	rootCmd.AddCommand(
		newLsCommand(),
		newCheckCommand(),
		newNormalizeCommand(),
		newVersionCommand(),
	)
	return rootCmd
}

func persistentPreRunE(cmd *cobra.Command, opts *globalOptions) error {
	paths := config.Paths()
	if opts.configPath != "" {
		paths = []string{opts.configPath}
	}
	cfg, err := config.Read(paths...)
	if err != nil {
		return err
	}
	registry.SetConfig(cfg)

	level := opts.logLevel
	if level == "" {
		level = cfg.Opendir.LogLevel
	}
	if err := setupLogging(level); err != nil {
		return err
	}
	logrus.Debugf("Called %s.PersistentPreRunE(%s)", cmd.Name(), strings.Join(os.Args, " "))
	return nil
}

func setupLogging(logLevel string) error {
	if !slices.Contains(registry.LogLevels, strings.ToLower(logLevel)) {
		return fmt.Errorf("log level %q is not supported, choose from: %s", logLevel, strings.Join(registry.LogLevels, ", "))
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("parsing log level %q: %w", logLevel, err)
	}
	logrus.SetLevel(level)
	if logrus.IsLevelEnabled(logrus.InfoLevel) {
		logrus.Infof("%s filtering at log level %s", os.Args[0], logrus.GetLevel())
	}
	return nil
}
