package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/roach88/hosei/internal/combo"
	"github.com/roach88/hosei/internal/digest"
	"github.com/roach88/hosei/internal/infer"
	"github.com/roach88/hosei/internal/store"
)

// InferOptions holds flags for the infer command.
type InferOptions struct {
	*RootOptions
	Database string
	Top      int

	// RunIDs allows overriding the run id generator (for testing).
	// If nil, defaults to store.UUIDv7Generator.
	RunIDs store.RunIDGenerator
}

// InferReport is the outcome of one infer invocation.
type InferReport struct {
	Dataset      string              `json:"dataset"`
	Digest       string              `json:"digest"`
	Factor       uint64              `json:"factor"`
	Votes        int                 `json:"votes"`
	Base         float64             `json:"base"`
	Entries      []combo.Waza        `json:"entries"`
	Ranking      []infer.Vote        `json:"ranking"`
	Observations []infer.Observation `json:"observations"`
	RunID        string              `json:"run_id,omitempty"`
	Seq          int64               `json:"seq,omitempty"`

	// Previous is the latest earlier run stored for the same digest.
	Previous *PreviousRun `json:"previous,omitempty"`

	// FactorChanged reports that Previous selected a different factor for
	// an identical dataset.
	FactorChanged bool `json:"factor_changed,omitempty"`
}

// PreviousRun identifies an earlier stored run of the same dataset.
type PreviousRun struct {
	RunID  string `json:"run_id"`
	Seq    int64  `json:"seq"`
	Factor uint64 `json:"factor"`
}

// NewInferCommand creates the infer command.
func NewInferCommand(rootOpts *RootOptions) *cobra.Command {
	return newInferCommand(&InferOptions{RootOptions: rootOpts})
}

func newInferCommand(opts *InferOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "infer <combo.yaml>",
		Short: "Infer the base correction factor of a combo dataset",
		Long: `Infer the base correction factor shared by every combo in a dataset.

The dataset is a YAML list of combos, each a list of {id, dm} waza. Every
combo with at least two waza votes for the co-factors of its scaled damage
ratio; the winning co-factor divided by 100 becomes base_hs of every combo
starter.

With --db the run is stored in a SQLite database for later review with
'hosei history'.

Example:
  hosei infer combo.yaml
  hosei infer --db ./hosei.db --top 10 combo.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfer(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", opts.Config.Database, "path to SQLite database for run history (optional)")
	cmd.Flags().IntVar(&opts.Top, "top", opts.Config.Top, "number of ranked votes to show (0 = all)")

	return cmd
}

func runInfer(opts *InferOptions, path string, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	formatter := newFormatter(opts.RootOptions, cmd)
	log := newLogger(cmd.ErrOrStderr(), opts.Verbose)

	ctx, span := tracer.Start(ctx, "hosei.infer", trace.WithAttributes(
		attribute.String("hosei.dataset", path),
	))
	defer span.End()
	formatter.TraceID = traceID(ctx)

	report, err := inferDataset(ctx, path, opts, log)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "inference failed")
		return reportFailure(formatter, err)
	}
	return outputInferReport(formatter, report)
}

// inferDataset runs load, digest, inference and optional persistence.
func inferDataset(ctx context.Context, path string, opts *InferOptions, log *slog.Logger) (*InferReport, error) {
	combos, err := loadDataset(ctx, path)
	if err != nil {
		return nil, err
	}
	log.Debug("dataset loaded", "path", path, "combos", len(combos))

	sum, err := digest.Dataset(combos)
	if err != nil {
		return nil, err
	}

	_, span := tracer.Start(ctx, "hosei.vote")
	result, err := infer.Run(combos, infer.Options{Logger: log})
	if err != nil {
		span.End()
		return nil, err
	}
	span.SetAttributes(
		attribute.Int64("hosei.factor", int64(result.Winner.Factor)),
		attribute.Int("hosei.votes", result.Winner.Count),
		attribute.Int("hosei.observations", len(result.Observations)),
	)
	span.End()

	report := &InferReport{
		Dataset:      path,
		Digest:       sum,
		Factor:       result.Winner.Factor,
		Votes:        result.Winner.Count,
		Base:         result.Base,
		Entries:      result.Entries.Sorted(),
		Ranking:      result.Tally.Ranking(opts.Top),
		Observations: result.Observations,
	}

	if opts.Database != "" {
		if err := persistRun(ctx, opts, report, log); err != nil {
			return nil, err
		}
	}

	return report, nil
}

// loadDataset reads and validates the dataset file under a trace span.
func loadDataset(ctx context.Context, path string) ([]combo.Combo, error) {
	_, span := tracer.Start(ctx, "hosei.load")
	defer span.End()

	combos, err := combo.Load(path)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("hosei.combos", len(combos)))
	return combos, nil
}

// persistRun compares report against the latest run stored for the same
// digest, then writes it. The run id, seq and previous run are set on report.
func persistRun(ctx context.Context, opts *InferOptions, report *InferReport, log *slog.Logger) error {
	ctx, span := tracer.Start(ctx, "hosei.persist")
	defer span.End()

	st, err := store.Open(opts.Database)
	if err != nil {
		return &databaseError{Op: "open database", Err: err}
	}
	defer st.Close()

	prev, found, err := st.LatestRunForDigest(ctx, report.Digest)
	if err != nil {
		return &databaseError{Op: "read previous run", Err: err}
	}
	if found {
		report.Previous = &PreviousRun{RunID: prev.ID, Seq: prev.Seq, Factor: prev.Factor}
		report.FactorChanged = prev.Factor != report.Factor
		if report.FactorChanged {
			log.Warn("factor differs from previous run of identical dataset",
				"digest", report.Digest,
				"previous_run", prev.ID,
				"previous_factor", prev.Factor,
				"factor", report.Factor)
			span.SetAttributes(attribute.Bool("hosei.factor_changed", true))
		}
	}

	ids := opts.RunIDs
	if ids == nil {
		ids = store.UUIDv7Generator{}
	}

	run := store.Run{
		ID:            ids.Generate(),
		DatasetPath:   report.Dataset,
		DatasetDigest: report.Digest,
		Factor:        report.Factor,
		Votes:         report.Votes,
		Observations:  len(report.Observations),
	}
	for _, w := range report.Entries {
		run.Entries = append(run.Entries, store.Entry{WazaID: w.ID, DM: w.DM})
	}

	written, err := st.WriteRun(ctx, run)
	if err != nil {
		return &databaseError{Op: "store run", Err: err}
	}
	span.SetAttributes(attribute.String("hosei.run_id", written.ID))
	log.Info("run stored", "id", written.ID, "seq", written.Seq, "db", opts.Database)

	report.RunID = written.ID
	report.Seq = written.Seq
	return nil
}
