package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdejongh/shelfsync/internal/platform"
	"github.com/sdejongh/shelfsync/pkg/config"
	"github.com/sdejongh/shelfsync/pkg/logging"
	"github.com/sdejongh/shelfsync/pkg/ratelimit"
)

// RootFlags select the local and foreign roots, overriding the configuration
type RootFlags struct {
	Source string
	Dest   string
}

func addRootFlags(cmd *cobra.Command, flags *RootFlags) {
	cmd.Flags().StringVarP(&flags.Source, "source", "s", "", "local directory, e.g. the book library")
	cmd.Flags().StringVarP(&flags.Dest, "dest", "d", "", "foreign directory, e.g. the e-reader folder")
}

// resolveConfig returns the configuration a command runs with. When both
// roots are given on the command line no config file is read; otherwise the
// config file must exist and name both roots.
func resolveConfig(global *GlobalFlags, roots RootFlags) (*config.Config, error) {
	if (roots.Source == "") != (roots.Dest == "") {
		return nil, fmt.Errorf("--source and --dest must be given together")
	}

	var cfg *config.Config
	if roots.Source != "" {
		cfg = config.Default()
		cfg.Source = roots.Source
		cfg.Destination = roots.Dest
	} else {
		loaded, err := config.Load(global.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	global.apply(cfg)
	return cfg, nil
}

// applyRunFlags overrides output and bandwidth settings, then validates
func applyRunFlags(cfg *config.Config, outputFormat, bandwidth string) error {
	if outputFormat != "" {
		cfg.Output.Format = outputFormat
	}

	if bandwidth != "" {
		limit, err := ratelimit.ParseBandwidth(bandwidth)
		if err != nil {
			return fmt.Errorf("invalid bandwidth limit: %w", err)
		}
		cfg.BandwidthLimit = limit
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// validateRoots checks that both roots are distinct, unrelated, existing
// directories and returns their absolute forms
func validateRoots(local, foreign string) (string, string, error) {
	if err := platform.ValidateDir(local); err != nil {
		return "", "", fmt.Errorf("source: %w", err)
	}
	if err := platform.ValidateDir(foreign); err != nil {
		return "", "", fmt.Errorf("destination: %w", err)
	}

	localAbs, err := platform.NormalizePath(local)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve source path: %w", err)
	}
	foreignAbs, err := platform.NormalizePath(foreign)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve destination path: %w", err)
	}

	if localAbs == foreignAbs {
		return "", "", fmt.Errorf("source and destination cannot be the same: %s", localAbs)
	}
	if platform.Nested(localAbs, foreignAbs) {
		return "", "", fmt.Errorf("source and destination cannot be inside one another: %s, %s", localAbs, foreignAbs)
	}

	return localAbs, foreignAbs, nil
}

// createLogger builds the logger for cfg. Without a log file, verbose mode
// logs to stderr and quiet mode logs nothing.
func createLogger(cfg *config.Config, global *GlobalFlags) (logging.Logger, error) {
	var fallback io.Writer
	if global.Verbose && !global.Quiet {
		fallback = os.Stderr
	}

	return logging.New(logging.Config{
		File:       cfg.Logging.File,
		Format:     cfg.Logging.Format,
		Level:      cfg.Logging.Level,
		MaxSize:    10 * 1024 * 1024, // 10 MB
		MaxBackups: 5,
	}, fallback)
}
