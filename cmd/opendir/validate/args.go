package validate

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NoArgs returns an error if any args are included.
func NoArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("`%s` takes no arguments", cmd.CommandPath())
	}
	return nil
}

// PathArgs returns an error unless at least one path is given.
func PathArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("`%s` requires at least one path", cmd.CommandPath())
	}
	return nil
}

// SubCommandExists returns an error if no sub command is provided
func SubCommandExists(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		if cmd.SuggestionsMinimumDistance <= 0 {
			cmd.SuggestionsMinimumDistance = 2
		}
		suggestions := cmd.SuggestionsFor(args[0])
		if len(suggestions) == 0 {
			return fmt.Errorf("unrecognized command `%[1]s %[2]s`\nTry '%[1]s --help' for more information", cmd.CommandPath(), args[0])
		}
		return fmt.Errorf("unrecognized command `%[1]s %[2]s`\n\nDid you mean this?\n\t%[3]s\n\nTry '%[1]s --help' for more information", cmd.CommandPath(), args[0], strings.Join(suggestions, "\n\t"))
	}
	cmd.Help() //nolint: errcheck
	return fmt.Errorf("missing command '%[1]s COMMAND'", cmd.CommandPath())
}

// Format returns an error unless format is empty or one of choices.
func Format(format string, choices ...string) error {
	if format == "" {
		return nil
	}
	for _, c := range choices {
		if format == c {
			return nil
		}
	}
	return fmt.Errorf("unsupported format %q, choose from: %s", format, strings.Join(choices, ", "))
}
