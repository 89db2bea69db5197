package models

import (
	"time"
)

// SyncReport represents the results of one run of the synchronizer
type SyncReport struct {
	// Run details
	ID          string
	LocalPath   string
	ForeignPath string
	Modes       []Mode

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Statistics
	Stats Statistics

	// Outcomes in the order the transfers were attempted
	Outcomes []TransferOutcome

	// Overall status
	Status SyncStatus
}

// Statistics holds run counters
type Statistics struct {
	LocalFilesScanned   int
	ForeignFilesScanned int

	FilesCopied  int
	FilesMoved   int
	FilesErrored int

	BytesCopied int64
}

// SyncStatus represents the overall result
type SyncStatus string

const (
	// StatusSuccess indicates all transfers completed successfully
	StatusSuccess SyncStatus = "success"
	// StatusPartial indicates some transfers failed
	StatusPartial SyncStatus = "partial"
	// StatusRunFailed indicates the run could not be performed
	StatusRunFailed SyncStatus = "failed"
)

// Record appends outcomes and updates the counters
func (r *SyncReport) Record(outcomes ...TransferOutcome) {
	for _, o := range outcomes {
		switch o.Status {
		case StatusCopied:
			r.Stats.FilesCopied++
			r.Stats.BytesCopied += o.Bytes
		case StatusMoved:
			r.Stats.FilesMoved++
		case StatusFailed:
			r.Stats.FilesErrored++
		}
	}
	r.Outcomes = append(r.Outcomes, outcomes...)
}

// Finish stamps the end time and derives the status
func (r *SyncReport) Finish(end time.Time) {
	r.EndTime = end
	r.Duration = end.Sub(r.StartTime)
	if r.Stats.FilesErrored > 0 {
		r.Status = StatusPartial
	} else {
		r.Status = StatusSuccess
	}
}

// Failures returns the failed outcomes
func (r *SyncReport) Failures() []TransferOutcome {
	var failed []TransferOutcome
	for _, o := range r.Outcomes {
		if o.IsFailed() {
			failed = append(failed, o)
		}
	}
	return failed
}

// ExitCode returns the appropriate exit code for the sync status
func (s SyncStatus) ExitCode() int {
	switch s {
	case StatusSuccess:
		return 0
	case StatusPartial:
		return 1
	case StatusRunFailed:
		return 2
	default:
		return 2
	}
}
