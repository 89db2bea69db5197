package cli

import (
	"github.com/spf13/cobra"

	"github.com/sdejongh/shelfsync/pkg/config"
)

// GlobalFlags are the persistent flags shared by every command
type GlobalFlags struct {
	ConfigFile string
	Verbose    bool
	Quiet      bool

	// Logging overrides
	LogFile   string
	LogFormat string
	LogLevel  string
}

var globalFlags GlobalFlags

// AddGlobalFlags registers the persistent flags on the root command
func AddGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&globalFlags.ConfigFile, "config", "", "config file (default is $XDG_CONFIG_HOME/shelfsync/config.yaml)")
	flags.BoolVarP(&globalFlags.Verbose, "verbose", "v", false, "log at debug level, to stderr when no log file is set")
	flags.BoolVarP(&globalFlags.Quiet, "quiet", "q", false, "print nothing but errors")
	flags.StringVar(&globalFlags.LogFile, "log-file", "", "write logs to file (overrides config)")
	flags.StringVar(&globalFlags.LogFormat, "log-format", "", "log format: text, json (overrides config)")
	flags.StringVar(&globalFlags.LogLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
}

// configPath is the file the config commands read and write
func (g *GlobalFlags) configPath() string {
	if g.ConfigFile != "" {
		return g.ConfigFile
	}
	return config.DefaultConfigPath()
}

// apply overrides the logging settings of cfg. Verbose raises the level
// unless one was asked for.
func (g *GlobalFlags) apply(cfg *config.Config) {
	if g.LogFile != "" {
		cfg.Logging.File = g.LogFile
	}
	if g.LogFormat != "" {
		cfg.Logging.Format = g.LogFormat
	}

	switch {
	case g.LogLevel != "":
		cfg.Logging.Level = g.LogLevel
	case g.Verbose:
		cfg.Logging.Level = "debug"
	}
}
