package registry

import (
	"github.com/containers/opendir/pkg/config"
	"github.com/containers/opendir/pkg/opendir"
)

// LogLevels supported by opendir.
var LogLevels = config.LogLevels

var (
	exitCode = 0
	cfg      = config.Default()
)

// SetExitCode sets the code the process exits with when no error is
// returned from the command.
func SetExitCode(code int) {
	exitCode = code
}

// GetExitCode returns the code set by SetExitCode.
func GetExitCode() int {
	return exitCode
}

// SetConfig installs the configuration loaded by the root command.
func SetConfig(c *config.Config) {
	cfg = c
}

// Config returns the active configuration.
func Config() *config.Config {
	return cfg
}

// Opener returns an opener honouring the configured path_max.
func Opener() *opendir.Opener {
	return opendir.NewOpener(cfg.Opendir.PathMax)
}
