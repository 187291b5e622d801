// Package mapping rewrites host-side source paths to the container mount
// point and derives where each link goes.
package mapping

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/vpath/pkg/linkfile"
)

// Pair is the effective source and target of one link
type Pair struct {
	Source string
	Target string
}

// RewriteSource substitutes roots in source with mountPoint.
//
// Each root is applied to the original source and only the result for the
// last root is kept, so an earlier matching root is discarded when a later
// one does not match. With no roots the source is returned unchanged.
func RewriteSource(source string, roots []string, mountPoint string) string {
	rewritten := source
	for _, root := range roots {
		rewritten = strings.ReplaceAll(source, root, mountPoint)
	}
	return rewritten
}

// LinkPath returns <home>/<mountPoint>/<targetDir>/<basename of source>
func LinkPath(home, mountPoint, targetDir, source string) string {
	return filepath.Join(home, mountPoint, targetDir, filepath.Base(source))
}

// Resolve derives the link pair for row
func Resolve(row linkfile.Row, roots []string, mountPoint, home string) Pair {
	source := RewriteSource(row.SourcePath, roots, mountPoint)
	return Pair{
		Source: source,
		Target: LinkPath(home, mountPoint, row.TargetPath, source),
	}
}
