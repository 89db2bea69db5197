package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdejongh/shelfsync/pkg/config"
)

// NewConfigCommand creates the config command
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `View or create the shelfsync configuration file.`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigPathCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromFile(globalFlags.configPath())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Source:          %s\n", cfg.Source)
			fmt.Fprintf(out, "Destination:     %s\n", cfg.Destination)
			if cfg.BandwidthLimit > 0 {
				fmt.Fprintf(out, "Bandwidth Limit: %d bytes/s\n", cfg.BandwidthLimit)
			} else {
				fmt.Fprintf(out, "Bandwidth Limit: unlimited\n")
			}
			fmt.Fprintf(out, "Output Format:   %s\n", cfg.Output.Format)
			fmt.Fprintf(out, "Log File:        %s\n", cfg.Logging.File)
			fmt.Fprintf(out, "Log Format:      %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "Log Level:       %s\n", cfg.Logging.Level)

			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	var roots RootFlags
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := globalFlags.configPath()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
			}

			cfg := config.Default()
			cfg.Source = roots.Source
			cfg.Destination = roots.Dest
			if err := config.SaveToFile(cfg, path); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created at: %s\n", path)
			return nil
		},
	}

	addRootFlags(cmd, &roots)
	cmd.MarkFlagRequired("source")
	cmd.MarkFlagRequired("dest")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	return cmd
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), globalFlags.configPath())
		},
	}
}
