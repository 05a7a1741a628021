// Package config reads opendir.conf, a TOML file holding the defaults of
// the opendir command.
package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// SystemConfigPath is read first.
	SystemConfigPath = "/etc/containers/opendir.conf"
	// EnvConfigPath names the variable that replaces the search list with
	// a single file.
	EnvConfigPath = "OPENDIR_CONF"
)

const userConfigName = "containers/opendir.conf"

// DefaultLogLevel is used when log_level is unset or empty.
const DefaultLogLevel = "warn"

// LogLevels lists the accepted log_level values.
var LogLevels = []string{"trace", "debug", "info", "warn", "error", "fatal", "panic"}

// Config is the parsed opendir.conf.
type Config struct {
	Opendir OpendirConfig `toml:"opendir"`
}

// OpendirConfig holds the [opendir] table.
type OpendirConfig struct {
	// FollowSymlinks selects follow mode when no flag is given.
	FollowSymlinks bool `toml:"follow_symlinks"`
	// PathMax overrides the platform path length limit when positive.
	PathMax int `toml:"path_max"`
	// LogLevel is the logrus level used when --log-level is not set.
	LogLevel string `toml:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Opendir: OpendirConfig{
			FollowSymlinks: true,
			LogLevel:       DefaultLogLevel,
		},
	}
}

// Paths returns the configuration files to read, lowest priority first.
func Paths() []string {
	if path, ok := os.LookupEnv(EnvConfigPath); ok {
		return []string{path}
	}
	paths := []string{SystemConfigPath}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, userConfigName))
	}
	return paths
}

// New returns Default overlaid with every existing file from Paths.
func New() (*Config, error) {
	return Read(Paths()...)
}

// Read returns Default overlaid with the given files in order. Files that
// do not exist are skipped.
func Read(paths ...string) (*Config, error) {
	cfg := Default()
	for _, path := range paths {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logrus.Debugf("Config file %s not found, skipping", path)
			return nil
		}
		return errors.Wrapf(err, "reading configuration file %s", path)
	}
	meta, err := toml.Decode(string(contents), c)
	if err != nil {
		return errors.Wrapf(err, "decoding configuration file %s", path)
	}
	for _, key := range meta.Undecoded() {
		logrus.Warnf("Failed to decode the keys %q from %q", key.String(), path)
	}
	logrus.Debugf("Read configuration file %s", path)
	return nil
}

// Validate checks the configuration values. An empty log_level is reset to
// DefaultLogLevel.
func (c *Config) Validate() error {
	if c.Opendir.PathMax < 0 {
		return errors.Errorf("path_max must not be negative (got %d)", c.Opendir.PathMax)
	}
	if c.Opendir.LogLevel == "" {
		c.Opendir.LogLevel = DefaultLogLevel
	}
	if !slices.Contains(LogLevels, strings.ToLower(c.Opendir.LogLevel)) {
		return errors.Errorf("invalid log_level %q, choose from: %s", c.Opendir.LogLevel, strings.Join(LogLevels, ", "))
	}
	return nil
}
