package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// NormalizePath returns an absolute, cleaned form of path
func NormalizePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &PathError{Path: path, Message: err.Error()}
	}
	return filepath.Clean(abs), nil
}

// Rebase re-roots path from the from root to the to root.
// It fails if path does not live under from.
func Rebase(path, from, to string) (string, error) {
	rel, err := Rel(from, path)
	if err != nil {
		return "", err
	}
	return filepath.Join(to, rel), nil
}

// Rel returns path relative to root, refusing paths outside of root
func Rel(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", &PathError{Path: path, Message: err.Error()}
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &PathError{Path: path, Message: "not under " + root}
	}
	return rel, nil
}

// Display returns path relative to root for output, or path itself when it
// does not live under root
func Display(root, path string) string {
	rel, err := Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}

// Nested reports whether one of the two paths lives inside the other
func Nested(a, b string) bool {
	sep := string(filepath.Separator)
	return strings.HasPrefix(a, b+sep) || strings.HasPrefix(b, a+sep)
}

// ValidateDir checks that path is a usable, existing directory
func ValidateDir(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return &PathError{Path: path, Message: "does not exist"}
	}
	if err != nil {
		return &PathError{Path: path, Message: err.Error()}
	}
	if !info.IsDir() {
		return &PathError{Path: path, Message: "not a directory"}
	}
	return nil
}

// ValidatePath checks if a path is valid for the current platform
func ValidatePath(path string) error {
	if path == "" {
		return &PathError{Path: path, Message: "path is empty"}
	}

	if runtime.GOOS == "windows" {
		// skip the drive letter colon
		rest := path
		if len(rest) >= 2 && rest[1] == ':' {
			rest = rest[2:]
		}
		for _, char := range []string{"<", ">", ":", "\"", "|", "?", "*"} {
			if strings.Contains(rest, char) {
				return &PathError{Path: path, Message: "path contains invalid character: " + char}
			}
		}
	}

	return nil
}

// PathError represents a path validation error
type PathError struct {
	Path    string
	Message string
}

func (e *PathError) Error() string {
	return "invalid path '" + e.Path + "': " + e.Message
}
