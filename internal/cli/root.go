package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/roach88/hosei/internal/config"
)

// tracer names spans for every pipeline stage run by the CLI. Without a
// registered provider the global noop tracer is used.
var tracer = otel.Tracer("github.com/roach88/hosei/internal/cli")

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	// Config seeds flag defaults from the environment.
	Config config.Config

	configErr error
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the hosei CLI, with flag
// defaults read from HOSEI_* environment variables.
func NewRootCommand() *cobra.Command {
	cfg, err := config.Load()
	if err != nil {
		return newRootCommand(config.Default(), err)
	}
	return newRootCommand(cfg, nil)
}

// NewRootCommandWithConfig creates the root command using cfg for flag
// defaults instead of the environment.
func NewRootCommandWithConfig(cfg config.Config) *cobra.Command {
	return newRootCommand(cfg, nil)
}

func newRootCommand(cfg config.Config, configErr error) *cobra.Command {
	opts := &RootOptions{Config: cfg, configErr: configErr}

	cmd := &cobra.Command{
		Use:   "hosei",
		Short: "hosei - combo correction-factor inference",
		Long: `Infer the shared damage correction factor of a fighting-game moveset
from recorded combos.

Each two-hit combo contributes its damage growth ratio; the co-factor that
explains the most ratios becomes the base correction (hosei) of every
combo starter.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.configErr != nil {
				return WrapExitError(ExitCommandError, "invalid environment", opts.configErr)
			}
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", cfg.Verbose, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", cfg.Format, "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewInferCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewWatchCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// newFormatter builds the formatter every command writes through.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}

// newLogger returns a text logger on w at Info, or Debug when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

// commandContext returns the command's context, or Background when the
// command was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// traceID returns the hex trace id of the span in ctx, or "" when the span
// is not recording a real trace.
func traceID(ctx context.Context) string {
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		return sc.TraceID().String()
	}
	return ""
}
