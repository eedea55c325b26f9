package cli

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hosei/internal/testutil"
)

func TestValidateValidDataset(t *testing.T) {
	cmd := NewValidateCommand(testRootOptions("text"))

	out, _, err := execute(cmd, comboFixture)
	require.NoError(t, err)
	assert.Equal(t, "✓ Dataset valid: 6 combos (5 multi-step), 4 starters\n", out)
}

func TestValidateValidDatasetJSON(t *testing.T) {
	cmd := NewValidateCommand(testRootOptions("json"))

	out, _, err := execute(cmd, comboFixture)
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, ValidationResult{
		Valid:     true,
		Combos:    6,
		MultiStep: 5,
		Starters:  []string{"2B", "5A", "5C", "6C"},
	}, resp.Data)
}

func TestValidateDoesNotInfer(t *testing.T) {
	// Closed but degenerate: validation passes, inference would fail.
	path := testutil.WriteDataset(t, "- - {id: A, dm: 0}\n  - {id: A, dm: 5}\n")
	cmd := NewValidateCommand(testRootOptions("text"))

	out, _, err := execute(cmd, path)
	require.NoError(t, err)
	assert.Contains(t, out, "Dataset valid")
}

func TestValidateClosureViolation(t *testing.T) {
	path := testutil.WriteDataset(t, testutil.OpenYAML)
	cmd := NewValidateCommand(testRootOptions("text"))

	out, _, err := execute(cmd, path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E010]")
}

func TestValidateNonExistentFile(t *testing.T) {
	cmd := NewValidateCommand(testRootOptions("text"))

	out, _, err := execute(cmd, "/nonexistent/directory/combo.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "E005")
	assert.Contains(t, out, "LOAD_NOT_FOUND")
}

func TestValidateVerboseLogsToErrWriter(t *testing.T) {
	opts := testRootOptions("json")
	opts.Verbose = true
	cmd := NewValidateCommand(opts)

	out, errOut, err := execute(cmd, comboFixture)
	require.NoError(t, err)
	assert.Contains(t, errOut, "Loaded 6 combo(s)")
	assert.NotContains(t, out, "Loaded")
}
