package indexer

import (
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/sdejongh/shelfsync/pkg/collection"
)

// Observer is called once for every regular file found during a walk
type Observer func(path string, info os.FileInfo)

// Indexer builds collections by walking a filesystem
type Indexer struct {
	fs billy.Filesystem
}

// New creates an indexer reading from fs
func New(fs billy.Filesystem) *Indexer {
	return &Indexer{fs: fs}
}

// Default creates an indexer over the host filesystem.
// Roots given to it should be absolute.
func Default() *Indexer {
	return New(osfs.New("/"))
}

// Index walks root recursively and returns one entry per regular file.
// Directories, symlinks and anything the walk cannot reach are skipped.
func (ix *Indexer) Index(root string) *collection.Collection {
	return ix.IndexWithObserver(root, nil)
}

// IndexWithObserver is Index, calling observer for each file before it is added
func (ix *Indexer) IndexWithObserver(root string, observer Observer) *collection.Collection {
	result := collection.NewAt(root)

	// The walk function never returns an error, so Walk cannot fail: an
	// unreadable item (or the subtree whose listing failed) is left out.
	_ = util.Walk(ix.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info == nil || !info.Mode().IsRegular() {
			return nil
		}
		if observer != nil {
			observer(path, info)
		}
		result.Add(collection.FromPath(path))
		return nil
	})

	return result
}
