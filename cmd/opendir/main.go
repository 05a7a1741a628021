package main

import (
	"fmt"
	"os"

	"github.com/containers/opendir/cmd/opendir/registry"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
		registry.SetExitCode(1)
	}
	os.Exit(registry.GetExitCode())
}

func formatError(err error) string {
	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		return fmt.Sprintf("Error: %+v", err)
	}
	return fmt.Sprintf("Error: %v", err)
}
