// Package testutil provides helpers for testing vpath components.
//
// Key components:
//   - file helpers (CreateFile, CreateDir, AssertSymlink, ...) over the real
//     filesystem, always rooted in t.TempDir()
//   - Workspace: a complete run layout with a mount point, a home directory,
//     a job descriptor and link files
package testutil
