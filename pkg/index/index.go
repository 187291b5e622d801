// Package index records every file under the container mount point.
//
// The index is a diagnostic snapshot. Link resolution never consults it.
package index

import (
	"io/fs"
	"sort"

	"github.com/arthur-debert/vpath/pkg/errors"
	"github.com/arthur-debert/vpath/pkg/filesystem"
	"github.com/arthur-debert/vpath/pkg/logging"
)

// Index maps each discovered file path to itself
type Index map[string]string

// Build walks root and records every non-directory entry.
// Traversal errors, including a missing root, are returned.
func Build(fsys filesystem.FS, root string) (Index, error) {
	logger := logging.GetLogger("index")

	idx := make(Index)
	err := fsys.Walk(root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		idx[path] = path
		logger.Trace().Str("path", path).Msg("Indexed file")
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIndexWalk, "failed to index %s", root).
			WithDetail("root", root)
	}

	logger.Debug().Str("root", root).Int("files", len(idx)).Msg("Index built")
	return idx, nil
}

// Paths returns the indexed paths in lexical order
func (idx Index) Paths() []string {
	paths := make([]string, 0, len(idx))
	for p := range idx {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
