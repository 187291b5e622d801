package output

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/arthur-debert/vpath/pkg/linker"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// Messages printed for each outcome
const (
	MsgCreated        = "Created symlink from %s to %s"
	MsgWouldCreate    = "Would create symlink from %s to %s"
	MsgExists         = "Symlink already exists for %s"
	MsgFileError      = "File Error"
	MsgUnexpected     = "Unexpected Error"
	MsgMissingHeaders = "Required headers not found in CSV file."
	MsgIndexed        = "Indexed %d files under %s"
)

// Options configures a Reporter
type Options struct {
	NoColor bool

	// Styles replaces the embedded style set when non-nil
	Styles *StyleSet
}

// Reporter writes run diagnostics to a writer
type Reporter struct {
	w      io.Writer
	color  bool
	styles map[string]lipgloss.Style
}

// NewReporter creates a Reporter writing to w
func NewReporter(w io.Writer, opts Options) *Reporter {
	color := !opts.NoColor && ColorEnabled(w)

	renderer := lipgloss.NewRenderer(w)
	if !color {
		renderer.SetColorProfile(termenv.Ascii)
	}

	set := opts.Styles
	if set == nil {
		defaults := DefaultStyles()
		set = &defaults
	}

	return &Reporter{
		w:      w,
		color:  color,
		styles: set.build(renderer),
	}
}

// ColorEnabled reports whether styled output should be written to w.
// Only terminals get color, and NO_COLOR always disables it.
func ColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Index reports the files found under the mount point. The individual paths
// are listed only when full is set.
func (r *Reporter) Index(root string, paths []string, full bool) {
	r.println(r.render(StyleMuted, fmt.Sprintf(MsgIndexed, len(paths), root)))
	if !full {
		return
	}
	for _, p := range paths {
		r.println("  " + p)
	}
}

// MissingHeaders reports a link file without the required columns
func (r *Reporter) MissingHeaders(err error) {
	r.println(r.render(StyleError, MsgMissingHeaders))
	if err != nil {
		r.println(r.render(StyleDetail, err.Error()))
	}
}

// Link reports the outcome of one link attempt
func (r *Reporter) Link(res linker.Result) {
	switch res.Status {
	case linker.StatusCreated:
		r.println(r.render(StyleSuccess, fmt.Sprintf(MsgCreated, res.Pair.Source, res.Pair.Target)))
	case linker.StatusWouldCreate:
		r.println(r.render(StyleSuccess, fmt.Sprintf(MsgWouldCreate, res.Pair.Source, res.Pair.Target)))
	case linker.StatusExists:
		r.println(r.render(StyleWarning, fmt.Sprintf(MsgExists, res.Pair.Target)))
	case linker.StatusSourceMissing:
		r.println(r.render(StyleError, MsgFileError))
		r.println(r.render(StyleDetail, errText(res.Err)))
	default:
		r.println(r.render(StyleError, MsgUnexpected))
		r.println(r.render(StyleDetail, errText(res.Err)))
	}
}

// Summary renders the per-outcome counts as a table
func (r *Reporter) Summary(s linker.Summary) error {
	if r.color {
		pterm.EnableColor()
	} else {
		pterm.DisableColor()
	}

	data := pterm.TableData{
		{"Outcome", "Rows"},
		{"created", strconv.Itoa(s.Created)},
	}
	if s.WouldCreate > 0 {
		data = append(data, []string{"would create", strconv.Itoa(s.WouldCreate)})
	}
	data = append(data,
		[]string{"already existed", strconv.Itoa(s.Existing)},
		[]string{"source missing", strconv.Itoa(s.SourceMissing)},
		[]string{"failed", strconv.Itoa(s.Failed)},
		[]string{"total", strconv.Itoa(s.Rows)},
	)

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	r.println("")
	r.println(table)
	return nil
}

func (r *Reporter) render(style, s string) string {
	if st, ok := r.styles[style]; ok {
		return st.Render(s)
	}
	return s
}

func (r *Reporter) println(s string) {
	_, _ = fmt.Fprintln(r.w, s)
}

func errText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
