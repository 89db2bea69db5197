package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/sdejongh/shelfsync/pkg/models"
)

// JSONFormatter formats output as JSON for automation and scripting.
// Nothing is written until Complete.
type JSONFormatter struct {
	writer io.Writer
	phases []JSONPhaseData
}

// JSONPhaseData describes one batch of transfers
type JSONPhaseData struct {
	Operation string `json:"operation"`
	Direction string `json:"direction"`
	Total     int    `json:"total"`
}

// JSONReportData represents the final report data
type JSONReportData struct {
	ID         string                   `json:"id"`
	Status     string                   `json:"status"`
	Local      string                   `json:"local"`
	Foreign    string                   `json:"foreign"`
	Modes      []string                 `json:"modes"`
	Duration   string                   `json:"duration"`
	DurationMs int64                    `json:"duration_ms"`
	Stats      JSONStatsData            `json:"stats"`
	Phases     []JSONPhaseData          `json:"phases,omitempty"`
	Transfers  []models.TransferOutcome `json:"transfers"`
}

// JSONStatsData represents statistics in JSON format
type JSONStatsData struct {
	Scanned    JSONScannedData    `json:"scanned"`
	Operations JSONOperationsData `json:"operations"`
	Transfer   JSONTransferData   `json:"transfer"`
}

// JSONScannedData represents scanned files statistics
type JSONScannedData struct {
	LocalFiles   int `json:"local_files"`
	ForeignFiles int `json:"foreign_files"`
}

// JSONOperationsData represents operations statistics
type JSONOperationsData struct {
	FilesCopied  int `json:"files_copied"`
	FilesMoved   int `json:"files_moved"`
	FilesErrored int `json:"files_errored"`
}

// JSONTransferData represents transfer statistics
type JSONTransferData struct {
	BytesCopied     int64  `json:"bytes_copied"`
	AverageSpeed    int64  `json:"average_speed_bytes_per_sec,omitempty"`
	AverageSpeedStr string `json:"average_speed,omitempty"`
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(writer io.Writer) *JSONFormatter {
	if writer == nil {
		writer = io.Discard
	}
	return &JSONFormatter{writer: writer}
}

// Begin records the phase
func (f *JSONFormatter) Begin(op models.Operation, dir models.Direction, total int) {
	f.phases = append(f.phases, JSONPhaseData{
		Operation: string(op),
		Direction: string(dir),
		Total:     total,
	})
}

// Transferred does nothing; outcomes are taken from the report
func (f *JSONFormatter) Transferred(outcome models.TransferOutcome) {}

// Complete writes the report as one indented JSON document
func (f *JSONFormatter) Complete(report *models.SyncReport) error {
	var avgSpeed int64
	var avgSpeedStr string
	if report.Duration.Seconds() > 0 {
		avgSpeed = int64(float64(report.Stats.BytesCopied) / report.Duration.Seconds())
		avgSpeedStr = formatBytes(avgSpeed) + "/s"
	}

	modes := make([]string, len(report.Modes))
	for i, m := range report.Modes {
		modes[i] = string(m)
	}

	transfers := report.Outcomes
	if transfers == nil {
		transfers = []models.TransferOutcome{}
	}

	reportData := JSONReportData{
		ID:         report.ID,
		Status:     string(report.Status),
		Local:      report.LocalPath,
		Foreign:    report.ForeignPath,
		Modes:      modes,
		Duration:   report.Duration.Round(time.Millisecond).String(),
		DurationMs: report.Duration.Milliseconds(),
		Stats: JSONStatsData{
			Scanned: JSONScannedData{
				LocalFiles:   report.Stats.LocalFilesScanned,
				ForeignFiles: report.Stats.ForeignFilesScanned,
			},
			Operations: JSONOperationsData{
				FilesCopied:  report.Stats.FilesCopied,
				FilesMoved:   report.Stats.FilesMoved,
				FilesErrored: report.Stats.FilesErrored,
			},
			Transfer: JSONTransferData{
				BytesCopied:     report.Stats.BytesCopied,
				AverageSpeed:    avgSpeed,
				AverageSpeedStr: avgSpeedStr,
			},
		},
		Phases:    f.phases,
		Transfers: transfers,
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(reportData)
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}
