package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sdejongh/shelfsync/pkg/logging"
	"github.com/sdejongh/shelfsync/pkg/sync"
	"github.com/sdejongh/shelfsync/pkg/watch"
)

// NewWatchCommand creates the watch command
func NewWatchCommand() *cobra.Command {
	flags := &SyncFlags{}
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Synchronize now and again whenever either side changes",
		Long: `Run a sync, then keep watching both roots and run it again after
each burst of changes. Stops on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			s, err := newSession(&globalFlags, flags)
			if err != nil {
				return err
			}
			defer s.close()

			runOnce := func(ctx context.Context) {
				if _, err := s.run(ctx, cmd.OutOrStdout(), sync.DefaultPlan); err != nil {
					s.logger.Error(ctx, "Sync failed", err, nil)
				}
			}

			w, err := watch.New(s.local, s.foreign)
			if err != nil {
				return err
			}
			w.WithLogger(s.logger)

			runOnce(ctx)

			s.logger.Info(ctx, "Watching for changes", logging.Fields{
				"local":    s.local,
				"foreign":  s.foreign,
				"debounce": debounce.String(),
			})
			if err := w.Run(ctx, debounce, runOnce); err != nil {
				return fmt.Errorf("watch stopped: %w", err)
			}
			return nil
		},
	}

	addRunFlags(cmd, flags)
	cmd.Flags().DurationVar(&debounce, "debounce", 2*time.Second, "quiet period before a change triggers a sync")

	return cmd
}
