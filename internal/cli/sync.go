package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdejongh/shelfsync/pkg/config"
	"github.com/sdejongh/shelfsync/pkg/logging"
	"github.com/sdejongh/shelfsync/pkg/models"
	"github.com/sdejongh/shelfsync/pkg/output"
	"github.com/sdejongh/shelfsync/pkg/ratelimit"
	"github.com/sdejongh/shelfsync/pkg/sync"
)

// SyncFlags holds sync and update command flags
type SyncFlags struct {
	RootFlags
	Mode           string
	Output         string
	Bandwidth      string
	FailuresReport string
	FailuresFormat string
}

func addRunFlags(cmd *cobra.Command, flags *SyncFlags) {
	addRootFlags(cmd, &flags.RootFlags)
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "output format: human, json, progress (default from config)")
	cmd.Flags().StringVarP(&flags.Bandwidth, "bandwidth", "b", "", "bandwidth limit (e.g., \"10M\", \"1G\")")
	cmd.Flags().StringVar(&flags.FailuresReport, "failures-report", "", "write failed transfers to file")
	cmd.Flags().StringVar(&flags.FailuresFormat, "failures-format", "human", "failures report format: human, json")
}

// NewSyncCommand creates the sync command
func NewSyncCommand() *cobra.Command {
	flags := &SyncFlags{}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Synchronize the library and the reader",
		Long: `Tidy the local layout after the foreign one, then copy every file
missing on either side. Files are matched by name only.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAndExit(cmd, flags, sync.DefaultPlan)
		},
	}

	addRunFlags(cmd, flags)
	return cmd
}

// NewUpdateCommand creates the update command
func NewUpdateCommand() *cobra.Command {
	flags := &SyncFlags{}

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Run a single update mode",
		Long: `Run one update mode:
  local         copy files missing on the foreign side from local
  foreign       copy files missing on the local side from foreign
  both          copy missing files both ways
  local-sync    move foreign files to match the local layout
  foreign-sync  move local files to match the foreign layout`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := models.ParseMode(flags.Mode)
			if err != nil {
				return err
			}
			return runAndExit(cmd, flags, []models.Mode{mode})
		},
	}

	addRunFlags(cmd, flags)
	cmd.Flags().StringVarP(&flags.Mode, "mode", "m", "", "update mode: local, foreign, both, local-sync, foreign-sync (required)")
	cmd.MarkFlagRequired("mode")

	return cmd
}

func runAndExit(cmd *cobra.Command, flags *SyncFlags, modes []models.Mode) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := newSession(&globalFlags, flags)
	if err != nil {
		return err
	}

	report, err := s.run(ctx, cmd.OutOrStdout(), modes)
	s.close()
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	// Exit with appropriate code
	if code := report.Status.ExitCode(); code != 0 {
		os.Exit(code)
	}
	return nil
}

// session holds everything needed to run plans against one pair of roots
type session struct {
	cfg     *config.Config
	flags   *SyncFlags
	quiet   bool
	local   string
	foreign string
	logger  logging.Logger
	limiter *ratelimit.Limiter
}

func newSession(global *GlobalFlags, flags *SyncFlags) (*session, error) {
	cfg, err := resolveConfig(global, flags.RootFlags)
	if err != nil {
		return nil, err
	}
	if err := applyRunFlags(cfg, flags.Output, flags.Bandwidth); err != nil {
		return nil, err
	}

	local, foreign, err := validateRoots(cfg.Source, cfg.Destination)
	if err != nil {
		return nil, err
	}

	logger, err := createLogger(cfg, global)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return &session{
		cfg:     cfg,
		flags:   flags,
		quiet:   global.Quiet,
		local:   local,
		foreign: foreign,
		logger:  logger,
		limiter: ratelimit.NewLimiter(cfg.BandwidthLimit),
	}, nil
}

// run performs modes once, printing progress and the summary to w
func (s *session) run(ctx context.Context, w io.Writer, modes []models.Mode) (*models.SyncReport, error) {
	if s.quiet {
		w = io.Discard
	}

	formatter, err := output.New(s.cfg.Output.Format, w, s.local, s.foreign)
	if err != nil {
		return nil, err
	}

	syncer := sync.New(s.local, s.foreign,
		sync.WithLogger(s.logger),
		sync.WithLimiter(s.limiter),
		sync.WithObserver(formatter),
	)

	report, err := syncer.Run(ctx, modes...)
	if err != nil {
		return report, err
	}

	if err := formatter.Complete(report); err != nil {
		return report, fmt.Errorf("failed to write output: %w", err)
	}

	if s.flags.FailuresReport != "" {
		if err := output.WriteFailuresReport(report, s.flags.FailuresReport, s.flags.FailuresFormat); err != nil {
			return report, fmt.Errorf("failed to write failures report: %w", err)
		}
	}

	return report, nil
}

func (s *session) close() {
	s.logger.Close()
}
