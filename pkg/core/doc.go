// Package core runs the vpath pipeline: index the mount point, load the
// manifest roots, then resolve and link every row of the link file.
package core
