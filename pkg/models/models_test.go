package models

import (
	"errors"
	"testing"
	"time"
)

// ============== Mode Tests ==============

func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expected Mode
		wantErr  bool
	}{
		{"local", ModeOnlyFromLocal, false},
		{"foreign", ModeOnlyFromForeign, false},
		{"both", ModeBidirectional, false},
		{"local-sync", ModeOnlyFromLocalSync, false},
		{"FOREIGN-SYNC", ModeOnlyFromForeignSync, false},
		{"sideways", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mode, err := ParseMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if mode != tt.expected {
				t.Errorf("ParseMode(%q) = %s, want %s", tt.input, mode, tt.expected)
			}
			if err != nil {
				var ve *ValidationError
				if !errors.As(err, &ve) || ve.Field != "mode" {
					t.Errorf("ParseMode(%q) error should be a ValidationError on mode, got %v", tt.input, err)
				}
			}
		})
	}
}

func TestModeIsMove(t *testing.T) {
	for _, m := range Modes {
		want := m == ModeOnlyFromLocalSync || m == ModeOnlyFromForeignSync
		if m.IsMove() != want {
			t.Errorf("%s.IsMove() = %v, want %v", m, m.IsMove(), want)
		}
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{
		Field:   "TestField",
		Message: "test message",
	}

	expected := "TestField: test message"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}
}

// ============== TransferOutcome Tests ==============

func TestTransferOutcome(t *testing.T) {
	t.Run("CopySucceeded", func(t *testing.T) {
		o := Succeeded(OperationCopy, ToForeign, "a.txt", "/l/a.txt", "/f/a.txt")
		if o.Status != StatusCopied {
			t.Errorf("Status = %s, want copied", o.Status)
		}
		if o.IsFailed() || o.Reason != "" {
			t.Error("successful outcome should carry no failure")
		}
	})

	t.Run("MoveSucceeded", func(t *testing.T) {
		o := Succeeded(OperationMove, ToLocal, "a.txt", "/l/x/a.txt", "/l/a.txt")
		if o.Status != StatusMoved {
			t.Errorf("Status = %s, want moved", o.Status)
		}
	})

	t.Run("Failed", func(t *testing.T) {
		o := Failed(OperationCopy, ToForeign, "a.txt", "/l/a.txt", "/f/a.txt", errors.New("permission denied"))
		if !o.IsFailed() {
			t.Error("IsFailed() should be true")
		}
		if o.Reason != "permission denied" {
			t.Errorf("Reason = %q, want permission denied", o.Reason)
		}
		if got := o.String(); got != "a.txt copy /l/a.txt -> /f/a.txt: permission denied" {
			t.Errorf("String() = %q", got)
		}
	})
}

// ============== SyncReport Tests ==============

func TestSyncReportRecord(t *testing.T) {
	start := time.Now()
	report := &SyncReport{StartTime: start}

	report.Record(
		Succeeded(OperationCopy, ToForeign, "a", "/l/a", "/f/a"),
		Succeeded(OperationMove, ToLocal, "b", "/l/x/b", "/l/b"),
	)
	report.Finish(start.Add(time.Second))

	if report.Stats.FilesCopied != 1 || report.Stats.FilesMoved != 1 || report.Stats.FilesErrored != 0 {
		t.Errorf("unexpected stats: %+v", report.Stats)
	}
	if report.Status != StatusSuccess {
		t.Errorf("Status = %s, want success", report.Status)
	}
	if report.Duration != time.Second {
		t.Errorf("Duration = %s, want 1s", report.Duration)
	}

	report.Record(Failed(OperationCopy, ToLocal, "c", "/f/c", "/l/c", errors.New("boom")))
	report.Finish(start.Add(2 * time.Second))

	if report.Status != StatusPartial {
		t.Errorf("Status = %s, want partial", report.Status)
	}
	if report.Stats.FilesErrored != 1 || report.Stats.FilesCopied != 1 {
		t.Errorf("failed transfer counted wrongly: %+v", report.Stats)
	}
	if len(report.Outcomes) != 3 {
		t.Errorf("len(Outcomes) = %d, want 3", len(report.Outcomes))
	}
	if failures := report.Failures(); len(failures) != 1 || failures[0].Name != "c" {
		t.Errorf("Failures() = %v", failures)
	}
}

func TestSyncStatusExitCode(t *testing.T) {
	tests := []struct {
		status   SyncStatus
		expected int
	}{
		{StatusSuccess, 0},
		{StatusPartial, 1},
		{StatusRunFailed, 2},
		{SyncStatus("unknown"), 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.ExitCode(); got != tt.expected {
				t.Errorf("ExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}
