package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sdejongh/shelfsync/internal/platform"
	"github.com/sdejongh/shelfsync/pkg/collection"
	"github.com/sdejongh/shelfsync/pkg/sync"
)

// NewCompareCommand creates the compare command
func NewCompareCommand() *cobra.Command {
	flags := &SyncFlags{}

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "List files missing on either side without copying",
		Long: `Scan both roots and report, by name, the files present on only one
side. Nothing is written.`,
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

			syncer := sync.New(s.local, s.foreign, sync.WithLogger(s.logger))
			local, foreign := syncer.Scan(ctx)
			result := comparison{
				onlyLocal:   local.Difference(foreign),
				onlyForeign: foreign.Difference(local),
			}

			if s.cfg.Output.Format == "json" {
				return result.writeJSON(cmd.OutOrStdout())
			}
			result.writeHuman(cmd.OutOrStdout())
			return nil
		},
	}

	addRootFlags(cmd, &flags.RootFlags)
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "output format: human, json")

	return cmd
}

type comparison struct {
	onlyLocal   *collection.Collection
	onlyForeign *collection.Collection
}

type comparedEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

func (c comparison) writeHuman(w io.Writer) {
	for _, side := range []struct {
		label string
		set   *collection.Collection
	}{
		{"Only in local", c.onlyLocal},
		{"Only in foreign", c.onlyForeign},
	} {
		fmt.Fprintf(w, "%s (%d files)\n", side.label, side.set.Len())
		side.set.Each(func(e collection.Entry) bool {
			fmt.Fprintf(w, "  %s\n", platform.Display(side.set.Root(), e.Path()))
			return true
		})
	}
}

func (c comparison) writeJSON(w io.Writer) error {
	listed := func(set *collection.Collection) []comparedEntry {
		out := make([]comparedEntry, 0, set.Len())
		set.Each(func(e collection.Entry) bool {
			out = append(out, comparedEntry{Name: e.Name(), Path: platform.Display(set.Root(), e.Path())})
			return true
		})
		return out
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(struct {
		OnlyLocal   []comparedEntry `json:"only_local"`
		OnlyForeign []comparedEntry `json:"only_foreign"`
	}{
		OnlyLocal:   listed(c.onlyLocal),
		OnlyForeign: listed(c.onlyForeign),
	})
}
