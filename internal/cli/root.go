package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spark-tools/viewport/internal/branding"
	"github.com/spark-tools/viewport/internal/config"
	"github.com/spark-tools/viewport/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	verbose bool
	rcFile  string
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&rcFile, "rc-file", "", "Path to the dev settings file (default: ~/"+branding.RCFile()+", env "+branding.EnvVar(config.KeyRCFile)+")")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds Scroll Viewport theme projects from template
repositories and keeps the credentials of your local Confluence instance.

Run '` + branding.CLIName() + ` init' once to store the DEV settings, then
'` + branding.CLIName() + ` create' for every new theme.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		if rcFile != "" {
			viper.Set(config.KeyRCFile, rcFile)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cmd.Help(); err != nil {
			return err
		}
		return errNoCommand
	},
}

// errNoCommand makes a bare invocation exit non-zero after printing help.
var errNoCommand = errors.New("no command given")

// newLogger returns the stderr logger. Debug output is enabled by --verbose
// or the verbose setting.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose || config.GetBool(config.KeyVerbose) {
		level = slog.LevelDebug
	}
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !term.IsTerminal(int(f.Fd()))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}))
}

// signalContext returns ctx cancelled on SIGINT or SIGTERM.
func signalContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

// Execute runs the root command with build info injected via ldflags.
// Cancellation prints "Aborted." and other failures a single error line,
// both on stderr; either way the returned error is non-nil.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	reportError(rootCmd.ErrOrStderr(), err)
	return err
}

func reportError(w io.Writer, err error) {
	switch {
	case err == nil, errors.Is(err, errNoCommand):
	case pipeline.IsCancelled(err):
		fmt.Fprintln(w, "Aborted.")
	default:
		var stepErr *pipeline.StepError
		if errors.As(err, &stepErr) {
			err = stepErr.Err
		}
		fmt.Fprintf(w, "Error: %v\n", err)
	}
}
