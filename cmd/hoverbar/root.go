package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/hoverbar/hoverbar/internal/config"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// usageError marks argument and configuration problems; they exit with
// code 2 and print the command usage.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func newUsageError(err error) error {
	return &usageError{err: err}
}

// globalOptions are shared by every subcommand.
type globalOptions struct {
	verbose     bool
	profile     string
	pidFile     string
	journalPath string
}

// hoverOptions mirror the root command's flags. They only override the
// loaded configuration when set explicitly on the command line.
type hoverOptions struct {
	barConfig   string
	barStyle    string
	barCommand  string
	yThreshold  int
	pollMs      int
	hideDelayMs int
	showDelayMs int
	journal     bool
}

// app holds state for one invocation of the command tree.
type app struct {
	global globalOptions
	hover  hoverOptions
	logger *slog.Logger
}

func newRootCmd(a *app) *cobra.Command {
	def := config.Default()

	rootCmd := &cobra.Command{
		Use:   "hoverbar [flags] [-- extra bar args]",
		Short: "Show a status bar while the pointer rests at the top screen edge",
		Long: `hoverbar watches the pointer position and starts the status bar when the
pointer touches the top edge of the screen. The bar is stopped again once the
pointer has moved below the configured threshold for the hide delay.

The pointer is read from Hyprland (hyprctl), then Sway (swaymsg), then X11.

Examples:
  hoverbar -c ~/.config/waybar/config -s ~/.config/waybar/style.css
  hoverbar -c bar.json -s bar.css -y 10 -d 500 -e 150
  hoverbar -c bar.json -s bar.css -- --log-level warning`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          extraBarArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.setupLogger(cmd.ErrOrStderr())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHover(cmd, a, args)
		},
	}

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return newUsageError(err)
	})

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&a.global.verbose, "verbose", "v", false,
		"Enable verbose logging")
	pf.StringVar(&a.global.profile, "profile", "",
		"Path to TOML profile (default: ~/.config/hoverbar/hoverbar.toml)")
	pf.StringVar(&a.global.pidFile, "pid-file", "",
		fmt.Sprintf("Path to PID file (default: %s)", def.Daemon.PIDFile))
	pf.StringVar(&a.global.journalPath, "journal-path", "",
		"Path to transition journal (default: ~/.local/state/hoverbar/journal.db)")

	f := rootCmd.Flags()
	f.StringVarP(&a.hover.barConfig, "config", "c", "",
		"Bar configuration file, passed to the bar as -c (required)")
	f.StringVarP(&a.hover.barStyle, "style", "s", "",
		"Bar stylesheet, passed to the bar as -s (required)")
	f.IntVarP(&a.hover.yThreshold, "y-threshold", "y", def.Hover.YThreshold,
		"Hide the bar once the pointer is below this Y coordinate")
	f.IntVarP(&a.hover.pollMs, "poll-ms", "p", int(def.Hover.PollInterval.Milliseconds()),
		"Pointer poll interval in milliseconds")
	f.IntVarP(&a.hover.hideDelayMs, "hide-delay-ms", "d", int(def.Hover.HideDelay.Milliseconds()),
		"Milliseconds the pointer must stay away before the bar hides")
	f.IntVarP(&a.hover.showDelayMs, "show-delay-ms", "e", int(def.Hover.ShowDelay.Milliseconds()),
		"Milliseconds the pointer must rest at the top before the bar shows")
	f.StringVar(&a.hover.barCommand, "bar-command", def.Bar.Command,
		"Bar executable to run")
	f.BoolVar(&a.hover.journal, "journal", false,
		"Record bar transitions in the journal")
	f.SortFlags = false

	rootCmd.AddCommand(
		newStopCmd(a),
		newStatusCmd(a),
		newHistoryCmd(a),
		newVersionCmd(),
	)

	return rootCmd
}

// extraBarArgs accepts positional arguments only after "--".
func extraBarArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	if dash := cmd.ArgsLenAtDash(); dash != 0 {
		return newUsageError(errors.Errorf("unexpected argument %q (pass bar arguments after --)", args[0]))
	}
	return nil
}

// setupLogger configures the global slog logger.
func (a *app) setupLogger(w io.Writer) {
	level := slog.LevelInfo
	if a.global.verbose {
		level = slog.LevelDebug
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	a.logger = slog.New(handler)
	slog.SetDefault(a.logger)
}

// loadConfig layers defaults, profile, environment and flags. Problems with
// the resulting configuration are usage errors. Subcommands skip validation
// since they never start the bar.
func (a *app) loadConfig(flags *pflag.FlagSet, validate bool) (*config.Config, error) {
	cfg, err := config.Load(a.global.profile)
	if err != nil {
		return nil, newUsageError(errors.Wrap(err, "failed to load profile"))
	}

	if flags.Changed("pid-file") {
		cfg.Daemon.PIDFile = a.global.pidFile
	}
	if flags.Changed("journal-path") {
		cfg.Journal.Path = a.global.journalPath
	}

	if flags.Lookup("config") != nil {
		if err := a.applyHoverFlags(cfg, flags); err != nil {
			return nil, newUsageError(err)
		}
	}

	if validate {
		if err := cfg.Validate(); err != nil {
			return nil, newUsageError(err)
		}
	}
	return cfg, nil
}

func (a *app) applyHoverFlags(cfg *config.Config, flags *pflag.FlagSet) error {
	if flags.Changed("config") {
		cfg.Bar.ConfigPath = a.hover.barConfig
	}
	if flags.Changed("style") {
		cfg.Bar.StylePath = a.hover.barStyle
	}
	if flags.Changed("bar-command") {
		cfg.Bar.Command = a.hover.barCommand
	}
	if flags.Changed("y-threshold") {
		cfg.Hover.YThreshold = a.hover.yThreshold
	}
	if flags.Changed("poll-ms") {
		if err := cfg.SetPollMillis(a.hover.pollMs); err != nil {
			return err
		}
	}
	if flags.Changed("hide-delay-ms") {
		cfg.Hover.HideDelay = millis(a.hover.hideDelayMs)
	}
	if flags.Changed("show-delay-ms") {
		cfg.Hover.ShowDelay = millis(a.hover.showDelayMs)
	}
	if flags.Changed("journal") {
		cfg.Journal.Enabled = a.hover.journal
	}
	return nil
}

// execute runs the command tree and maps the outcome to an exit code.
func execute(args []string) int {
	return executeWith(args, os.Stdout, os.Stderr)
}

func executeWith(args []string, stdout, stderr io.Writer) int {
	a := &app{}
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	cmd, err := rootCmd.ExecuteC()
	if err == nil {
		return exitOK
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)

	var uerr *usageError
	if errors.As(err, &uerr) {
		fmt.Fprint(stderr, cmd.UsageString())
		return exitUsage
	}
	return exitFailure
}
