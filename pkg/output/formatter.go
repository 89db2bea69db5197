package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/sdejongh/shelfsync/internal/platform"
	"github.com/sdejongh/shelfsync/pkg/models"
	"github.com/sdejongh/shelfsync/pkg/sync"
)

// Formatter defines the interface for output formatting.
// It observes transfers while they run and prints the report at the end.
type Formatter interface {
	sync.Observer

	// Complete finalizes output and displays summary
	Complete(report *models.SyncReport) error

	// Name returns the formatter name
	Name() string
}

// New creates the formatter called name writing to w. Paths are shown
// relative to the local and foreign roots. A progress formatter falls back
// to human output when w is not a terminal.
func New(name string, w io.Writer, local, foreign string) (Formatter, error) {
	switch name {
	case "", "human":
		return NewHumanFormatter(w, local, foreign), nil
	case "json":
		return NewJSONFormatter(w), nil
	case "progress":
		if !isTerminal(w) {
			return NewHumanFormatter(w, local, foreign), nil
		}
		return NewProgressFormatter(w, local, foreign), nil
	default:
		return nil, &models.ValidationError{
			Field:   "output",
			Message: fmt.Sprintf("unknown format %q (use: human, json, progress)", name),
		}
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// roots resolves outcome paths for display
type roots struct {
	local   string
	foreign string
}

func (r roots) display(path string) string {
	if rel, err := platform.Rel(r.local, path); err == nil {
		return rel
	}
	return platform.Display(r.foreign, path)
}

// formatOutcome renders one outcome as
// "<name> <status> <direction> from: <rel> to: <rel>"
func formatOutcome(o models.TransferOutcome, r roots) string {
	return fmt.Sprintf("%s %s %s from: %s to: %s",
		o.Name, statusText(o), o.Direction, r.display(o.Source), r.display(o.Destination))
}

func statusText(o models.TransferOutcome) string {
	switch o.Status {
	case models.StatusCopied:
		return "Copied"
	case models.StatusMoved:
		return "Moved"
	}
	if o.Operation == models.OperationMove {
		return "Move error: " + o.Reason
	}
	return "Copy error: " + o.Reason
}

// writeSummary prints the closing block shared by the human and progress formatters
func writeSummary(w io.Writer, report *models.SyncReport) {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Sync completed in %s\n", report.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Summary:\n")
	fmt.Fprintf(w, "  Scanned:\n")
	fmt.Fprintf(w, "    Local:          %d files\n", report.Stats.LocalFilesScanned)
	fmt.Fprintf(w, "    Foreign:        %d files\n", report.Stats.ForeignFilesScanned)
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  Operations:\n")
	fmt.Fprintf(w, "    Files copied:   %d\n", report.Stats.FilesCopied)
	fmt.Fprintf(w, "    Files moved:    %d\n", report.Stats.FilesMoved)
	fmt.Fprintf(w, "    Files errored:  %d\n", report.Stats.FilesErrored)
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  Transfer:\n")
	fmt.Fprintf(w, "    Data:           %s\n", formatBytes(report.Stats.BytesCopied))

	if report.Duration.Seconds() > 0 {
		avgSpeed := float64(report.Stats.BytesCopied) / report.Duration.Seconds()
		fmt.Fprintf(w, "    Average speed:  %s/s\n", formatBytes(int64(avgSpeed)))
	}

	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Status: %s\n", report.Status)
}

// formatBytes formats bytes in human-readable format
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
