package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/hosei/internal/combo"
	"github.com/roach88/hosei/internal/infer"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid     bool     `json:"valid"`
	Combos    int      `json:"combos"`
	MultiStep int      `json:"multi_step"`
	Starters  []string `json:"starters"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <combo.yaml>",
		Short: "Validate a combo dataset without inferring",
		Long: `Validate a combo dataset without running inference.

Checks YAML syntax, the dataset schema (every waza needs a non-blank id and
a non-negative integer dm) and closure: every waza that follows another in
a combo must also start a combo of its own.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	formatter := newFormatter(opts, cmd)

	combos, err := loadDataset(ctx, path)
	if err != nil {
		return reportFailure(formatter, err)
	}
	formatter.VerboseLog("Loaded %d combo(s) from %s", len(combos), path)

	entries, err := infer.BuildResultMap(combos)
	if err != nil {
		return reportFailure(formatter, err)
	}

	result := ValidationResult{
		Valid:     true,
		Combos:    len(combos),
		MultiStep: countMultiStep(combos),
		Starters:  entries.IDs(),
	}
	return outputValidateSuccess(formatter, result)
}

func countMultiStep(combos []combo.Combo) int {
	n := 0
	for _, c := range combos {
		if c.IsMultiStep() {
			n++
		}
	}
	return n
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ Dataset valid: %d combos (%d multi-step), %d starters\n",
		result.Combos, result.MultiStep, len(result.Starters))
	return nil
}
