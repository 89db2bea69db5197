package output

import (
	"fmt"
	"io"

	"github.com/cheggaaa/pb/v3"

	"github.com/sdejongh/shelfsync/pkg/models"
)

// progressTemplate shows the phase, counters, the bar and the current file
const progressTemplate pb.ProgressBarTemplate = `{{string . "phase"}} {{counters . }} {{bar . "[" "=" ">" " " "]"}} {{percent . }} {{string . "file"}}`

// ProgressFormatter draws one progress bar per batch of transfers and
// prints failures once the bar is done
type ProgressFormatter struct {
	writer   io.Writer
	roots    roots
	bar      *pb.ProgressBar
	failures []models.TransferOutcome
}

// NewProgressFormatter creates a new progress bar formatter
func NewProgressFormatter(writer io.Writer, local, foreign string) *ProgressFormatter {
	if writer == nil {
		writer = io.Discard
	}
	return &ProgressFormatter{writer: writer, roots: roots{local: local, foreign: foreign}}
}

// Begin finishes the previous bar and starts a new one
func (f *ProgressFormatter) Begin(op models.Operation, dir models.Direction, total int) {
	f.finishBar()
	if total == 0 {
		return
	}

	f.bar = progressTemplate.New(total)
	f.bar.SetWriter(f.writer)
	f.bar.Set("phase", fmt.Sprintf("%s %s", phaseLabel(op), dir))
	f.bar.Start()
}

// Transferred advances the bar
func (f *ProgressFormatter) Transferred(outcome models.TransferOutcome) {
	if outcome.IsFailed() {
		f.failures = append(f.failures, outcome)
	}
	if f.bar != nil {
		f.bar.Set("file", outcome.Name)
		f.bar.Increment()
	}
}

// Complete finishes the bar, lists failures and displays the summary
func (f *ProgressFormatter) Complete(report *models.SyncReport) error {
	f.finishBar()

	if len(f.failures) > 0 {
		fmt.Fprintf(f.writer, "\nErrors:\n")
		for _, o := range f.failures {
			fmt.Fprintf(f.writer, "  %s\n", formatOutcome(o, f.roots))
		}
	}

	writeSummary(f.writer, report)
	return nil
}

// Name returns the formatter name
func (f *ProgressFormatter) Name() string {
	return "progress"
}

func (f *ProgressFormatter) finishBar() {
	if f.bar != nil {
		f.bar.Set("file", "")
		f.bar.Finish()
		f.bar = nil
	}
}

func phaseLabel(op models.Operation) string {
	if op == models.OperationMove {
		return "Moving"
	}
	return "Copying"
}
