package models

import (
	"fmt"
	"strings"
)

// Mode selects which transfers an update performs
type Mode string

const (
	// ModeOnlyFromLocal copies files missing on the foreign side from local
	ModeOnlyFromLocal Mode = "local"
	// ModeOnlyFromForeign copies files missing on the local side from foreign
	ModeOnlyFromForeign Mode = "foreign"
	// ModeBidirectional copies missing files both ways
	ModeBidirectional Mode = "both"
	// ModeOnlyFromLocalSync moves foreign files to match the local layout
	ModeOnlyFromLocalSync Mode = "local-sync"
	// ModeOnlyFromForeignSync moves local files to match the foreign layout
	ModeOnlyFromForeignSync Mode = "foreign-sync"
)

// Modes lists every mode in display order
var Modes = []Mode{
	ModeOnlyFromLocal,
	ModeOnlyFromForeign,
	ModeBidirectional,
	ModeOnlyFromLocalSync,
	ModeOnlyFromForeignSync,
}

// ParseMode parses a mode name as accepted on the command line
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	names := make([]string, len(Modes))
	for i, m := range Modes {
		names[i] = string(m)
	}
	return "", &ValidationError{
		Field:   "mode",
		Message: fmt.Sprintf("unknown mode %q (valid: %s)", s, strings.Join(names, ", ")),
	}
}

// IsMove reports whether the mode moves files instead of copying them
func (m Mode) IsMove() bool {
	return m == ModeOnlyFromLocalSync || m == ModeOnlyFromForeignSync
}

// Operation is the kind of filesystem transfer attempted for one file
type Operation string

const (
	// OperationCopy copies file bytes to the other side
	OperationCopy Operation = "copy"
	// OperationMove renames a file within one side
	OperationMove Operation = "move"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
