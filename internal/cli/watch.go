package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// defaultDebounce batches the burst of events an editor save produces.
const defaultDebounce = 200 * time.Millisecond

// WatchOptions holds flags for the watch command.
type WatchOptions struct {
	InferOptions
	Debounce time.Duration
}

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WatchOptions{InferOptions: InferOptions{RootOptions: rootOpts}}

	cmd := &cobra.Command{
		Use:   "watch <combo.yaml>",
		Short: "Re-run inference whenever the dataset changes",
		Long: `Run inference on a dataset, then again every time the file is saved.

Errors in an edited dataset are reported and watching continues. Stop with
Ctrl-C.

Example:
  hosei watch combo.yaml
  hosei watch --db ./hosei.db combo.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", rootOpts.Config.Database, "path to SQLite database for run history (optional)")
	cmd.Flags().IntVar(&opts.Top, "top", rootOpts.Config.Top, "number of ranked votes to show (0 = all)")
	cmd.Flags().DurationVar(&opts.Debounce, "debounce", defaultDebounce, "quiet period before re-running after a change")

	return cmd
}

func runWatch(opts *WatchOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	log := newLogger(cmd.ErrOrStderr(), opts.Verbose)

	// Setup signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan) // Prevent signal handler leak

	go func() {
		select {
		case sig := <-sigChan:
			log.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
			// Parent context cancelled (e.g., from test)
		}
	}()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to start watcher", err)
	}
	defer watcher.Close()

	// Watch the directory so editors that replace the file on save are seen.
	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return WrapExitError(ExitCommandError, "failed to watch dataset directory", err)
	}

	rerun := func() {
		inferOnce(ctx, &opts.InferOptions, target, formatter, log)
	}

	fmt.Fprintf(formatter.GetErrWriter(), "Watching %s. Press Ctrl-C to stop.\n", target)
	rerun()

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	watchLoop(ctx, watcher, target, debounce, log, rerun)

	log.Info("watch stopped")
	return nil
}

// inferOnce runs one inference and prints either the report or the error.
// Errors never stop the watch.
func inferOnce(ctx context.Context, opts *InferOptions, path string, formatter *OutputFormatter, log *slog.Logger) {
	ctx, span := tracer.Start(ctx, "hosei.watch.infer")
	defer span.End()

	report, err := inferDataset(ctx, path, opts, log)
	if err != nil {
		span.RecordError(err)
		f := classify(err)
		_ = formatter.Error(f.Code, f.Message, f.Details)
		return
	}
	if err := outputInferReport(formatter, report); err != nil {
		log.Error("failed to write report", "error", err)
	}
}

// watchLoop calls onChange once per burst of changes to target until ctx is
// done or the watcher closes.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, target string, debounce time.Duration, log *slog.Logger, onChange func()) {
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !isDatasetChange(event, target) {
				continue
			}
			log.Debug("dataset changed", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Warn("watch error", "error", err)

		case <-fire:
			fire = nil
			onChange()
		}
	}
}

// isDatasetChange reports whether event may have changed target's content.
func isDatasetChange(event fsnotify.Event, target string) bool {
	if filepath.Clean(event.Name) != target {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}
