package store

import (
	"context"
	"path/filepath"
	"testing"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRun creates a run with two entries and the given digest.
func createTestRun(id, digest string) Run {
	return Run{
		ID:            id,
		DatasetPath:   "combo.yaml",
		DatasetDigest: digest,
		Factor:        150,
		Votes:         6,
		Observations:  5,
		Entries: []Entry{
			{WazaID: "5A", DM: 300},
			{WazaID: "2B", DM: 400},
		},
	}
}

// mustWriteRun writes a run and fails the test on error.
func mustWriteRun(t *testing.T, s *Store, run Run) Run {
	t.Helper()
	written, err := s.WriteRun(context.Background(), run)
	if err != nil {
		t.Fatalf("WriteRun(%q) failed: %v", run.ID, err)
	}
	return written
}
