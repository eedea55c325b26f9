package cli

import (
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/sebdah/goldie/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hosei/internal/store"
	"github.com/roach88/hosei/internal/testutil"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestInferText_Golden(t *testing.T) {
	cmd := NewInferCommand(testRootOptions("text"))

	out, _, err := execute(cmd, comboFixture)
	require.NoError(t, err)

	newGoldie(t).Assert(t, "infer_text", []byte(out))
}

func TestInferTextVerbose_Golden(t *testing.T) {
	opts := testRootOptions("text")
	opts.Verbose = true
	cmd := NewInferCommand(opts)

	out, logs, err := execute(cmd, "--top", "2", comboFixture)
	require.NoError(t, err)

	newGoldie(t).Assert(t, "infer_verbose", []byte(out))
	assert.Contains(t, logs, "combo observed")
	assert.Contains(t, logs, "correction factor selected")
}

func TestInferJSON(t *testing.T) {
	cmd := NewInferCommand(testRootOptions("json"))

	out, _, err := execute(cmd, comboFixture)
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   InferReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))

	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, uint64(150), resp.Data.Factor)
	assert.Equal(t, 6, resp.Data.Votes)
	assert.Equal(t, 1.5, resp.Data.Base)
	assert.Equal(t, comboDigest, resp.Data.Digest)
	assert.Len(t, resp.Data.Ranking, 5)
	assert.Len(t, resp.Data.Observations, 5)
	assert.Empty(t, resp.Data.RunID)

	require.Len(t, resp.Data.Entries, 4)
	for _, e := range resp.Data.Entries {
		require.NotNil(t, e.HS, "entry %s has no hs", e.ID)
		assert.Equal(t, 1.5, e.HS.Base)
		assert.Equal(t, 1.0, e.HS.First)
		assert.Equal(t, 1.0, e.HS.Multi)
		assert.Equal(t, 1.0, e.HS.Bonus)
		assert.Equal(t, 1.0, e.HS.Repeat)
	}
}

func TestInferTopZeroShowsAllVotes(t *testing.T) {
	cmd := NewInferCommand(testRootOptions("json"))

	out, _, err := execute(cmd, "--top", "0", comboFixture)
	require.NoError(t, err)

	var resp struct {
		Data InferReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Greater(t, len(resp.Data.Ranking), 5)
	assert.Equal(t, uint64(150), resp.Data.Ranking[0].Factor)
}

// newTestInferCommand returns an infer command with sequential run ids.
func newTestInferCommand(format string) *cobra.Command {
	return newInferCommand(&InferOptions{
		RootOptions: testRootOptions(format),
		RunIDs:      testutil.NewSequentialRunIDs(""),
	})
}

func TestInferPersistsRun(t *testing.T) {
	dbPath := tempDB(t)

	out, _, err := execute(newTestInferCommand("text"), "--db", dbPath, comboFixture)
	require.NoError(t, err)
	assert.Contains(t, out, "stored as run run-0001 (seq 1)")

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	run, err := st.ReadRun(context.Background(), "run-0001")
	require.NoError(t, err)
	assert.Equal(t, int64(1), run.Seq)
	assert.Equal(t, uint64(150), run.Factor)
	assert.Equal(t, 6, run.Votes)
	assert.Equal(t, 5, run.Observations)
	assert.Equal(t, comboFixture, run.DatasetPath)
	assert.Equal(t, comboDigest, run.DatasetDigest)
	assert.Equal(t, []store.Entry{
		{WazaID: "2B", DM: 400},
		{WazaID: "5A", DM: 300},
		{WazaID: "5C", DM: 800},
		{WazaID: "6C", DM: 1000},
	}, run.Entries)
}

func TestInferIdempotentAcrossRuns(t *testing.T) {
	dbPath := tempDB(t)
	cmd := newTestInferCommand("json")

	first, _, err := execute(cmd, "--db", dbPath, comboFixture)
	require.NoError(t, err)
	second, _, err := execute(cmd, "--db", dbPath, comboFixture)
	require.NoError(t, err)

	var a, b struct {
		Data InferReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(first), &a))
	require.NoError(t, json.Unmarshal([]byte(second), &b))

	assert.Equal(t, "run-0001", a.Data.RunID)
	assert.Equal(t, "run-0002", b.Data.RunID)
	assert.Equal(t, int64(2), b.Data.Seq)

	assert.Nil(t, a.Data.Previous)
	assert.Equal(t, &PreviousRun{RunID: "run-0001", Seq: 1, Factor: 150}, b.Data.Previous)
	assert.False(t, b.Data.FactorChanged)

	// Everything but the run identity is identical
	a.Data.RunID, a.Data.Seq = "", 0
	b.Data.RunID, b.Data.Seq, b.Data.Previous = "", 0, nil
	assert.Equal(t, a.Data, b.Data)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	latest, ok, err := st.LatestRunForDigest(context.Background(), comboDigest)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "run-0002", latest.ID)
}

func TestInferFlagsFactorChange(t *testing.T) {
	dbPath := tempDB(t)

	// A stored run of the same dataset that selected another factor.
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	_, err = st.WriteRun(context.Background(), store.Run{
		ID:            "stale",
		DatasetPath:   comboFixture,
		DatasetDigest: comboDigest,
		Factor:        2,
		Votes:         3,
		Observations:  5,
	})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	cmd := newTestInferCommand("text")
	out, logs, err := execute(cmd, "--db", dbPath, comboFixture)
	require.NoError(t, err)
	assert.Contains(t, out, "stored as run run-0001 (seq 2)")
	assert.Contains(t, out, "previous run stale (seq 1) selected factor 2")
	assert.Contains(t, out, "warning: factor changed from 2 to 150 for an identical dataset")
	assert.Contains(t, logs, "factor differs from previous run")

	out, _, err = execute(cmd, "--db", dbPath, comboFixture)
	require.NoError(t, err)
	assert.Contains(t, out, "previous run run-0001 (seq 2) selected factor 150")
	assert.NotContains(t, out, "warning")
}

func TestInferFullRangeDamage(t *testing.T) {
	dbPath := tempDB(t)
	path := testutil.WriteDataset(t, `
- - {id: A, dm: 10000000000000000000}
  - {id: B, dm: 15000000000000000000}
- - {id: B, dm: 10000000000000000000}
  - {id: A, dm: 15000000000000000000}
`)

	out, _, err := execute(newTestInferCommand("json"), "--db", dbPath, path)
	require.NoError(t, err)

	var resp struct {
		Data InferReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, "run-0001", resp.Data.RunID)
	assert.Equal(t, uint64(5000), resp.Data.Observations[0].Scaled)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	run, err := st.ReadRun(context.Background(), "run-0001")
	require.NoError(t, err)
	assert.Equal(t, []store.Entry{
		{WazaID: "A", DM: 10000000000000000000},
		{WazaID: "B", DM: 10000000000000000000},
	}, run.Entries)
}

func TestInferClosureViolation(t *testing.T) {
	path := testutil.WriteDataset(t, testutil.OpenYAML)
	cmd := NewInferCommand(testRootOptions("text"))

	out, _, err := execute(cmd, path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeClosure)
	assert.Contains(t, out, "Error [E010]")
	assert.Contains(t, out, "CLOSURE_VIOLATION")
	assert.True(t, ErrorReported(err), "main must not print the error again")
}

func TestInferClosureViolationJSON(t *testing.T) {
	path := testutil.WriteDataset(t, testutil.OpenYAML)
	cmd := NewInferCommand(testRootOptions("json"))

	out, _, err := execute(cmd, path)
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeClosure, resp.Error.Code)
	assert.Equal(t, []interface{}{"B"}, resp.Error.Details)
}

func TestInferDoesNotPersistFailedRun(t *testing.T) {
	dbPath := tempDB(t)
	path := testutil.WriteDataset(t, testutil.OpenYAML)

	_, _, err := execute(newTestInferCommand("text"), "--db", dbPath, path)
	require.Error(t, err)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	runs, err := st.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestInferErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		code     string
		exitCode int
	}{
		{
			name:     "degenerate zero damage",
			content:  "- - {id: A, dm: 0}\n  - {id: A, dm: 5}\n",
			code:     ErrCodeDegenerate,
			exitCode: ExitFailure,
		},
		{
			name:     "degenerate damage drop",
			content:  "- - {id: A, dm: 500}\n  - {id: A, dm: 100}\n",
			code:     ErrCodeDegenerate,
			exitCode: ExitFailure,
		},
		{
			name:     "no multi-step combos",
			content:  "- - {id: A, dm: 100}\n- - {id: B, dm: 200}\n",
			code:     ErrCodeNoInference,
			exitCode: ExitFailure,
		},
		{
			name:     "negative damage",
			content:  "- - {id: A, dm: -5}\n  - {id: A, dm: 5}\n",
			code:     ErrCodeSchema,
			exitCode: ExitCommandError,
		},
		{
			name:     "unknown field",
			content:  "- - {id: A, dm: 100, hit: 2}\n",
			code:     ErrCodeSchema,
			exitCode: ExitCommandError,
		},
		{
			name:     "malformed yaml",
			content:  "- - {id: A, dm: [\n",
			code:     ErrCodeParse,
			exitCode: ExitCommandError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.WriteDataset(t, tt.content)
			cmd := NewInferCommand(testRootOptions("text"))

			out, _, err := execute(cmd, path)
			require.Error(t, err)
			assert.Equal(t, tt.exitCode, GetExitCode(err))
			assert.Contains(t, out, "Error ["+tt.code+"]")
		})
	}
}

func TestInferFileNotFound(t *testing.T) {
	cmd := NewInferCommand(testRootOptions("text"))

	out, _, err := execute(cmd, "/nonexistent/combo.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E005]")
}

func TestInferRequiresOneArg(t *testing.T) {
	cmd := NewInferCommand(testRootOptions("text"))

	_, _, err := execute(cmd)
	require.Error(t, err)
}
