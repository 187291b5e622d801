// Package linker creates the symbolic link for a resolved pair.
package linker

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/vpath/pkg/errors"
	"github.com/arthur-debert/vpath/pkg/filesystem"
	"github.com/arthur-debert/vpath/pkg/logging"
	"github.com/arthur-debert/vpath/pkg/mapping"
	"github.com/rs/zerolog"
)

// Status is the outcome of one link attempt
type Status string

const (
	StatusCreated       Status = "created"
	StatusWouldCreate   Status = "would-create"
	StatusExists        Status = "exists"
	StatusSourceMissing Status = "source-missing"
	StatusFailed        Status = "failed"
)

// Result describes what happened to a pair. Err is set for every status
// except StatusCreated and StatusWouldCreate.
type Result struct {
	Pair   mapping.Pair
	Status Status
	Err    error
}

// Options configures a Linker
type Options struct {
	DirMode fs.FileMode
	DryRun  bool
}

// Linker creates links on a filesystem
type Linker struct {
	fs     filesystem.FS
	opts   Options
	logger zerolog.Logger
}

// New creates a Linker
func New(fsys filesystem.FS, opts Options) *Linker {
	if opts.DirMode == 0 {
		opts.DirMode = 0755
	}
	return &Linker{
		fs:     fsys,
		opts:   opts,
		logger: logging.GetLogger("linker"),
	}
}

// Link creates pair.Target as a symlink to pair.Source, creating missing
// parent directories. An existing target is never replaced. Nothing is
// rolled back on failure.
func (l *Linker) Link(pair mapping.Pair) Result {
	logger := l.logger.With().Str("source", pair.Source).Str("target", pair.Target).Logger()

	if pair.Source == "" {
		return l.result(logger, pair, StatusSourceMissing,
			errors.New(errors.ErrFileNotFound, "source path is empty"))
	}

	if _, err := l.fs.Lstat(pair.Target); err == nil {
		return l.result(logger, pair, StatusExists,
			errors.Newf(errors.ErrSymlinkExists, "symlink already exists for %s", pair.Target))
	} else if !stderrors.Is(err, fs.ErrNotExist) {
		return l.result(logger, pair, StatusFailed,
			errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot inspect %s", pair.Target))
	}

	if _, err := l.fs.Stat(pair.Source); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return l.result(logger, pair, StatusSourceMissing,
				errors.Wrapf(err, errors.ErrFileNotFound, "source %s does not exist", pair.Source))
		}
		return l.result(logger, pair, StatusFailed,
			errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot inspect %s", pair.Source))
	}

	if l.opts.DryRun {
		return l.result(logger, pair, StatusWouldCreate, nil)
	}

	dir := filepath.Dir(pair.Target)
	if err := l.fs.MkdirAll(dir, l.opts.DirMode); err != nil {
		return l.result(logger, pair, StatusFailed,
			errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir))
	}

	if err := l.fs.Symlink(pair.Source, pair.Target); err != nil {
		switch {
		case stderrors.Is(err, fs.ErrExist):
			return l.result(logger, pair, StatusExists,
				errors.Wrapf(err, errors.ErrSymlinkExists, "symlink already exists for %s", pair.Target))
		case stderrors.Is(err, fs.ErrNotExist):
			return l.result(logger, pair, StatusSourceMissing,
				errors.Wrapf(err, errors.ErrFileNotFound, "failed to link %s", pair.Target))
		default:
			return l.result(logger, pair, StatusFailed,
				errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to link %s", pair.Target))
		}
	}

	return l.result(logger, pair, StatusCreated, nil)
}

func (l *Linker) result(logger zerolog.Logger, pair mapping.Pair, status Status, err error) Result {
	event := logger.Debug()
	if status == StatusFailed {
		event = logger.Warn()
	}
	event.Err(err).Str("status", string(status)).Msg("Link attempt finished")

	return Result{Pair: pair, Status: status, Err: err}
}
