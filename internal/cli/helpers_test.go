package cli

import (
	"bytes"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/cobra"

	"github.com/roach88/hosei/internal/config"
)

// comboFixture is the shared dataset; its winning factor is 150 with 6 votes.
const comboFixture = "testdata/combo.yaml"

// comboDigest is the dataset digest of comboFixture.
const comboDigest = "046d1761024761d8305cc1f3afd25f1b57696e82e00e17bf797400a5fdeaf743"

// testRootOptions returns root options with default config.
func testRootOptions(format string) *RootOptions {
	return &RootOptions{Format: format, Config: config.Default()}
}

// execute runs cmd with args and returns stdout, stderr and the error.
func execute(cmd *cobra.Command, args ...string) (string, string, error) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// tempDB returns a database path inside a fresh temp directory.
func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "hosei.db")
}

// syncBuffer is a bytes.Buffer safe for one writer and concurrent readers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
