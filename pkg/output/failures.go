package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sdejongh/shelfsync/pkg/models"
)

// WriteFailuresReport writes the failed transfers of report to a file.
// Format can be "human" or "json". Nothing is written when every transfer
// succeeded.
func WriteFailuresReport(report *models.SyncReport, path string, format string) error {
	if len(report.Failures()) == 0 {
		return nil
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create failures file: %w", err)
	}
	defer file.Close()

	switch format {
	case "json":
		err = writeFailuresJSON(report, file)
	default:
		err = writeFailuresHuman(report, file)
	}
	if err != nil {
		return err
	}
	return file.Close()
}

func writeFailuresHuman(report *models.SyncReport, w io.Writer) error {
	failures := report.Failures()
	r := roots{local: report.LocalPath, foreign: report.ForeignPath}

	fmt.Fprintf(w, "Failures Report\n")
	fmt.Fprintf(w, "===============\n\n")
	fmt.Fprintf(w, "Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(w, "Run: %s\n", report.ID)
	fmt.Fprintf(w, "Local: %s\n", report.LocalPath)
	fmt.Fprintf(w, "Foreign: %s\n\n", report.ForeignPath)

	fmt.Fprintf(w, "Total Failures: %d\n\n", len(failures))

	byOperation := make(map[models.Operation][]models.TransferOutcome)
	for _, o := range failures {
		byOperation[o.Operation] = append(byOperation[o.Operation], o)
	}

	labels := map[models.Operation]string{
		models.OperationCopy: "Copy Errors",
		models.OperationMove: "Move Errors",
	}

	for _, op := range []models.Operation{models.OperationCopy, models.OperationMove} {
		outcomes := byOperation[op]
		if len(outcomes) == 0 {
			continue
		}

		label := fmt.Sprintf("%s (%d files)", labels[op], len(outcomes))
		fmt.Fprintf(w, "%s\n", label)
		fmt.Fprintf(w, "%s\n", strings.Repeat("-", len(label)))

		for _, o := range outcomes {
			fmt.Fprintf(w, "  %s %s\n", o.Name, o.Direction)
			fmt.Fprintf(w, "    From:   %s\n", r.display(o.Source))
			fmt.Fprintf(w, "    To:     %s\n", r.display(o.Destination))
			fmt.Fprintf(w, "    Reason: %s\n\n", o.Reason)
		}
	}

	return nil
}

func writeFailuresJSON(report *models.SyncReport, w io.Writer) error {
	failures := report.Failures()

	output := struct {
		Generated   string                   `json:"generated"`
		ID          string                   `json:"id"`
		LocalPath   string                   `json:"local_path"`
		ForeignPath string                   `json:"foreign_path"`
		TotalCount  int                      `json:"total_count"`
		Failures    []models.TransferOutcome `json:"failures"`
	}{
		Generated:   time.Now().Format(time.RFC3339),
		ID:          report.ID,
		LocalPath:   report.LocalPath,
		ForeignPath: report.ForeignPath,
		TotalCount:  len(failures),
		Failures:    failures,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
