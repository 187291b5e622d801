// Package filesystem provides filesystem implementations for vpath.
//
// This package defines the FS interface used by the indexer, the job
// descriptor loader, the link file reader and the linker, together with the
// standard OS implementation and an afero-backed one for tests.
package filesystem
