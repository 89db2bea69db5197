package output

import (
	"fmt"
	"io"

	"github.com/sdejongh/shelfsync/pkg/models"
)

// HumanFormatter prints one line per transfer and a summary
type HumanFormatter struct {
	writer io.Writer
	roots  roots
}

// NewHumanFormatter creates a new human-readable formatter
func NewHumanFormatter(writer io.Writer, local, foreign string) *HumanFormatter {
	if writer == nil {
		writer = io.Discard
	}
	return &HumanFormatter{writer: writer, roots: roots{local: local, foreign: foreign}}
}

// Begin is silent; every transfer gets its own line
func (f *HumanFormatter) Begin(op models.Operation, dir models.Direction, total int) {}

// Transferred prints the outcome line
func (f *HumanFormatter) Transferred(outcome models.TransferOutcome) {
	fmt.Fprintln(f.writer, formatOutcome(outcome, f.roots))
}

// Complete displays the summary
func (f *HumanFormatter) Complete(report *models.SyncReport) error {
	writeSummary(f.writer, report)
	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}
