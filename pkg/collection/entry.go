package collection

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5"
)

// Entry represents one file found under a sync root.
// Identity and ordering are defined by Name only; Path is metadata.
type Entry struct {
	name string
	path string
}

// FromPath creates an entry from a full path, naming it after the last path segment.
// It panics if path has no final segment: callers only pass paths discovered by a walk.
func FromPath(path string) Entry {
	name := lastSegment(path)
	if name == "" {
		panic("collection: path has no final segment: " + strconv.Quote(path))
	}
	return Entry{name: name, path: path}
}

// FromName creates an entry whose path is the name itself
func FromName(name string) Entry {
	return Entry{name: name, path: name}
}

// Name returns the display name (the file's base name)
func (e Entry) Name() string {
	return e.name
}

// Path returns the full path the entry was discovered at
func (e Entry) Path() string {
	return e.path
}

// Exists reports whether the backing path currently exists on the host disk.
// Entries indexed from another filesystem must use ExistsIn.
func (e Entry) Exists() bool {
	_, err := os.Stat(e.path)
	return err == nil
}

// ExistsIn reports whether the backing path currently exists in fs
func (e Entry) ExistsIn(fs billy.Basic) bool {
	_, err := fs.Stat(e.path)
	return err == nil
}

// Compare orders entries lexicographically by name
func (e Entry) Compare(other Entry) int {
	return strings.Compare(e.name, other.name)
}

// Equal reports whether both entries carry the same name
func (e Entry) Equal(other Entry) bool {
	return e.name == other.name
}

func (e Entry) String() string {
	return e.name
}

// lastSegment returns the final element of path, or "" when there is none
// (empty path, filesystem root, or a trailing "." / ".." element).
func lastSegment(path string) string {
	trimmed := strings.TrimRight(path, `/`+string(filepath.Separator))
	if trimmed == "" {
		return ""
	}
	base := filepath.Base(trimmed)
	switch base {
	case ".", "..", string(filepath.Separator):
		return ""
	}
	return base
}
