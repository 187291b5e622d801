package core

import (
	stderrors "errors"
	"io"

	"github.com/arthur-debert/vpath/pkg/config"
	"github.com/arthur-debert/vpath/pkg/errors"
	"github.com/arthur-debert/vpath/pkg/filesystem"
	"github.com/arthur-debert/vpath/pkg/index"
	"github.com/arthur-debert/vpath/pkg/job"
	"github.com/arthur-debert/vpath/pkg/linker"
	"github.com/arthur-debert/vpath/pkg/linkfile"
	"github.com/arthur-debert/vpath/pkg/logging"
	"github.com/arthur-debert/vpath/pkg/mapping"
	"github.com/arthur-debert/vpath/pkg/output"
)

// RunOptions holds the per-invocation inputs
type RunOptions struct {
	CSVPath string
	DryRun  bool
}

// Runner executes one vpath run
type Runner struct {
	cfg      *config.Config
	fs       filesystem.FS
	reporter *output.Reporter
}

// NewRunner creates a Runner
func NewRunner(cfg *config.Config, fsys filesystem.FS, reporter *output.Reporter) *Runner {
	return &Runner{cfg: cfg, fs: fsys, reporter: reporter}
}

// Run indexes the mount point, loads the manifest roots and links every row
// of the link file.
//
// Index, job descriptor and link file read errors are returned. A link file
// without the required headers is reported and yields a nil error with
// Summary.HeadersMissing set. Per-row failures are reported and counted but
// never stop the run.
func (r *Runner) Run(opts RunOptions) (*linker.Summary, error) {
	logger := logging.GetLogger("core.run")
	logger.Info().
		Str("csv", opts.CSVPath).
		Str("mountPoint", r.cfg.MountPoint).
		Bool("dryRun", opts.DryRun).
		Msg("Starting run")

	done := logging.LogOperationStart(logger, "index")
	idx, err := index.Build(r.fs, r.cfg.MountPoint)
	if err != nil {
		return nil, err
	}
	done()
	logger.Info().Int("files", len(idx)).Msg("Mount point indexed")
	r.reporter.Index(r.cfg.MountPoint, idx.Paths(), r.cfg.PrintIndex)

	roots, err := job.LoadManifestRoots(r.fs, r.cfg.JobDescriptorPath, r.cfg.ManifestRootsKey)
	if err != nil {
		return nil, err
	}

	summary, err := r.linkAll(opts, roots)
	if err != nil {
		return nil, err
	}

	if !summary.HeadersMissing {
		if err := r.reporter.Summary(*summary); err != nil {
			logger.Warn().Err(err).Msg("Failed to render summary")
		}
	}

	logger.Info().
		Int("rows", summary.Rows).
		Int("created", summary.Created).
		Int("existing", summary.Existing).
		Int("sourceMissing", summary.SourceMissing).
		Int("failed", summary.Failed).
		Msg("Run completed")
	return summary, nil
}

func (r *Runner) linkAll(opts RunOptions, roots []string) (*linker.Summary, error) {
	logger := logging.GetLogger("core.link")
	summary := &linker.Summary{}

	f, err := r.fs.Open(opts.CSVPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrCSVOpen, "failed to open link file %s", opts.CSVPath).
			WithDetail("path", opts.CSVPath)
	}
	defer func() { _ = f.Close() }()

	rd, err := linkfile.NewReader(f)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrMissingHeaders) {
			logger.Warn().Err(err).Str("csv", opts.CSVPath).Msg("Link file lacks required headers")
			r.reporter.MissingHeaders(err)
			summary.HeadersMissing = true
			return summary, nil
		}
		return nil, err
	}

	l := linker.New(r.fs, linker.Options{
		DirMode: r.cfg.DirMode(),
		DryRun:  opts.DryRun,
	})

	for {
		row, err := rd.Next()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		pair := mapping.Resolve(row, roots, r.cfg.MountPoint, r.cfg.HomeDir)
		logger.Debug().
			Int("line", row.Line).
			Str("sourcePath", row.SourcePath).
			Str("source", pair.Source).
			Str("target", pair.Target).
			Msg("Resolved row")

		res := l.Link(pair)
		summary.Record(res)
		r.reporter.Link(res)
	}

	return summary, nil
}
