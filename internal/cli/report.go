package cli

import (
	"fmt"
	"io"

	"github.com/roach88/hosei/internal/store"
)

// outputInferReport prints an infer result.
func outputInferReport(formatter *OutputFormatter, report *InferReport) error {
	if formatter.Format == "json" {
		return formatter.Success(report)
	}

	w := formatter.Writer
	for _, e := range report.Entries {
		base := report.Base
		if e.HS != nil {
			base = e.HS.Base
		}
		writeEntryLine(w, e.ID, e.DM, base)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "factor %d selected with %d votes over %d combos\n",
		report.Factor, report.Votes, len(report.Observations))

	if len(report.Ranking) > 0 {
		fmt.Fprintf(w, "top %d votes:\n", len(report.Ranking))
		for _, v := range report.Ranking {
			fmt.Fprintf(w, "  %d: %d\n", v.Factor, v.Count)
		}
	}

	if formatter.Verbose {
		fmt.Fprintln(w, "observations:")
		for _, o := range report.Observations {
			fmt.Fprintf(w, "  [%d] %s -> %s: scaled %d, factors %v, %d pairs\n",
				o.Combo, o.BaseID, o.FollowUpID, o.Scaled, o.Factors, len(o.Pairs))
		}
	}

	if report.RunID != "" {
		fmt.Fprintf(w, "stored as run %s (seq %d)\n", report.RunID, report.Seq)
	}
	if prev := report.Previous; prev != nil {
		fmt.Fprintf(w, "previous run %s (seq %d) selected factor %d\n", prev.RunID, prev.Seq, prev.Factor)
		if report.FactorChanged {
			fmt.Fprintf(w, "warning: factor changed from %d to %d for an identical dataset\n",
				prev.Factor, report.Factor)
		}
	}
	return nil
}

// writeEntryLine prints one combo starter with its base correction.
func writeEntryLine(w io.Writer, id string, dm uint64, base float64) {
	fmt.Fprintf(w, "%s - dm: %d, base_hs: %g\n", id, dm, base)
}

// writeRunSummary prints one stored run on a single line.
func writeRunSummary(w io.Writer, run store.Run) {
	fmt.Fprintf(w, "%4d  %s  factor %d (base_hs %g, %d votes, %d combos)  %s\n",
		run.Seq, run.ID, run.Factor, run.Base(), run.Votes, run.Observations, run.DatasetPath)
}
