package cli

import (
	stderrors "errors"
	"fmt"
	"io"

	"github.com/arthur-debert/vpath/internal/version"
	"github.com/arthur-debert/vpath/pkg/config"
	"github.com/arthur-debert/vpath/pkg/core"
	"github.com/arthur-debert/vpath/pkg/filesystem"
	"github.com/arthur-debert/vpath/pkg/logging"
	"github.com/arthur-debert/vpath/pkg/output"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// UsageError marks invalid invocations; the usage text is printed for them
type UsageError struct {
	err error
}

func (e *UsageError) Error() string { return e.err.Error() }
func (e *UsageError) Unwrap() error { return e.err }

type flags struct {
	verbosity     int
	configFile    string
	mountPoint    string
	jobDescriptor string
	home          string
	stylesFile    string
	printIndex    bool
	dryRun        bool
	noColor       bool
}

// flagKeys maps flag names to the configuration keys they override
var flagKeys = map[string]string{
	"mount-point":    "mount_point",
	"job-descriptor": "job_descriptor_path",
	"home":           "home_dir",
	"print-index":    "print_index",
	"styles":         "styles_file",
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	f := &flags{}

	rootCmd := &cobra.Command{
		Use:     "vpath [flags] <csv_file>",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		Args:    exactlyOneCSV,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(f.verbosity)
			log.Debug().Str("command", cmd.Name()).Strs("args", args).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}

			outOpts := output.Options{NoColor: f.noColor}
			if cfg.StylesFile != "" {
				set, err := output.LoadStyles(cfg.StylesFile)
				if err != nil {
					return err
				}
				outOpts.Styles = &set
			}

			reporter := output.NewReporter(cmd.OutOrStdout(), outOpts)
			runner := core.NewRunner(cfg, filesystem.NewOS(), reporter)
			_, err = runner.Run(core.RunOptions{CSVPath: args[0], DryRun: f.dryRun})
			return err
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&f.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.StringVar(&f.configFile, "config", "", MsgFlagConfig)
	pf.StringVar(&f.mountPoint, "mount-point", "", MsgFlagMountPoint)
	pf.StringVar(&f.jobDescriptor, "job-descriptor", "", MsgFlagJobDescriptor)
	pf.StringVar(&f.home, "home", "", MsgFlagHome)
	pf.BoolVar(&f.printIndex, "print-index", false, MsgFlagPrintIndex)
	pf.StringVar(&f.stylesFile, "styles", "", MsgFlagStyles)
	pf.BoolVar(&f.noColor, "no-color", false, MsgFlagNoColor)
	rootCmd.Flags().BoolVar(&f.dryRun, "dry-run", false, MsgFlagDryRun)

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &UsageError{err: err}
	})

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenConfigCmd(f))

	return rootCmd
}

// Execute runs the root command with args and returns the process exit code
func Execute(args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	cmd, err := rootCmd.ExecuteC()
	if err == nil {
		return 0
	}

	renderer := lipgloss.NewRenderer(stderr)
	if !output.ColorEnabled(stderr) {
		renderer.SetColorProfile(termenv.Ascii)
	}
	errorStyle := renderer.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	_, _ = fmt.Fprintln(stderr, errorStyle.Render(fmt.Sprintf(MsgErrorFormat, err)))

	var usageErr *UsageError
	if stderrors.As(err, &usageErr) {
		_, _ = fmt.Fprintln(stderr)
		_, _ = fmt.Fprint(stderr, cmd.UsageString())
	}
	return 1
}

func exactlyOneCSV(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return &UsageError{err: err}
	}
	return nil
}

// loadConfig layers the flags the user actually set over the other sources
func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	overrides := make(map[string]interface{})
	for name, key := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}
		switch name {
		case "print-index":
			overrides[key] = f.printIndex
		case "mount-point":
			overrides[key] = f.mountPoint
		case "job-descriptor":
			overrides[key] = f.jobDescriptor
		case "home":
			overrides[key] = f.home
		case "styles":
			overrides[key] = f.stylesFile
		}
	}

	return config.Load(config.LoadOptions{
		ConfigFile: f.configFile,
		Overrides:  overrides,
	})
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newGenConfigCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "genconfig",
		Short: MsgGenConfigShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			out, err := config.GenerateTOML(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
